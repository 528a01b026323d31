package models

import (
	"regexp"
	"sync"
	"testing"
	"time"
)

func TestParseOrderStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "CONFIRMED", "PREPARING", "DELIVERING", "COMPLETED", "CANCELLED"} {
		status, err := ParseOrderStatus(raw)
		if err != nil {
			t.Errorf("ParseOrderStatus(%q) returned error: %v", raw, err)
		}
		if string(status) != raw {
			t.Errorf("ParseOrderStatus(%q) = %q", raw, status)
		}
	}

	for _, raw := range []string{"", "pending", "SHIPPED", "DONE"} {
		if _, err := ParseOrderStatus(raw); err == nil {
			t.Errorf("ParseOrderStatus(%q) should fail", raw)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusPreparing, StatusCancelled},
		StatusPreparing:  {StatusDelivering, StatusCancelled},
		StatusDelivering: {StatusCompleted, StatusCancelled},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}
	all := []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusDelivering, StatusCompleted, StatusCancelled}

	for from, targets := range allowed {
		ok := make(map[OrderStatus]bool, len(targets))
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			if got := from.CanTransitionTo(to); got != ok[to] {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, ok[to])
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	for status, want := range map[OrderStatus]bool{
		StatusPending:    false,
		StatusConfirmed:  false,
		StatusPreparing:  false,
		StatusDelivering: false,
		StatusCompleted:  true,
		StatusCancelled:  true,
	} {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	number := NewOrderNumber(now)

	pattern := regexp.MustCompile(`^ORD-20240315-093045-[0-9A-F]{8}$`)
	if !pattern.MatchString(number) {
		t.Errorf("order number %q does not match expected format", number)
	}
}

func TestNewOrderNumber_Unique(t *testing.T) {
	const n = 200

	var mu sync.Mutex
	seen := make(map[string]bool, n)

	var wg sync.WaitGroup
	now := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number := NewOrderNumber(now)
			mu.Lock()
			seen[number] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("expected %d distinct numbers, got %d", n, len(seen))
	}
}
