package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(E(NotFound, "gone")); got != NotFound {
		t.Errorf("KindOf typed error = %v, want NotFound", got)
	}
	if got := KindOf(errors.New("boom")); got != Internal {
		t.Errorf("KindOf untyped error = %v, want Internal", got)
	}
	wrapped := fmt.Errorf("outer: %w", E(Conflict, "dup"))
	if got := KindOf(wrapped); got != Conflict {
		t.Errorf("KindOf wrapped error = %v, want Conflict", got)
	}
}

func TestMessage_HidesInternalDetails(t *testing.T) {
	cause := errors.New("pq: connection refused")
	if got := Message(cause); got != "internal server error" {
		t.Errorf("untyped message leaked: %q", got)
	}
	if got := Message(Wrap(Internal, "failed to load order", cause)); got != "failed to load order" {
		t.Errorf("typed message = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		InvalidInput: http.StatusBadRequest,
		BusinessRule: http.StatusBadRequest,
		NotFound:     http.StatusNotFound,
		Conflict:     http.StatusConflict,
		TxConflict:   http.StatusConflict,
		Unauthorized: http.StatusUnauthorized,
		Forbidden:    http.StatusForbidden,
		Internal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(E(kind, "x")); got != want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", kind, got, want)
		}
	}
	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus untyped = %d, want 500", got)
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(E(TxConflict, "retry me")) {
		t.Error("TxConflict should be retryable")
	}
	if Retryable(E(Conflict, "dup")) {
		t.Error("Conflict should not be retryable")
	}
	if Retryable(errors.New("boom")) {
		t.Error("untyped errors should not be retryable")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(NotFound, "missing", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
