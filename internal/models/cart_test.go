package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildCartView(t *testing.T) {
	lines := []CartLine{
		{ID: 1, CartID: 3, MenuID: 10, Quantity: 2, Price: decimal.NewFromInt(25000), MenuName: "Burger"},
		{ID: 2, CartID: 3, MenuID: 11, Quantity: 1, Price: decimal.NewFromInt(10000), MenuName: "Fries"},
	}

	view := BuildCartView(3, 7, lines)

	if view.ID != 3 || view.UserID != 7 {
		t.Errorf("unexpected cart identity: id=%d user=%d", view.ID, view.UserID)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Items))
	}
	if !view.Items[0].Subtotal.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected first subtotal 50000, got %s", view.Items[0].Subtotal)
	}
	if view.Items[0].Menu.Name != "Burger" {
		t.Errorf("expected menu name Burger, got %s", view.Items[0].Menu.Name)
	}
	if !view.TotalPrice.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("expected total 60000, got %s", view.TotalPrice)
	}
	if view.TotalQuantity != 3 {
		t.Errorf("expected total quantity 3, got %d", view.TotalQuantity)
	}
}

func TestBuildCartView_Empty(t *testing.T) {
	view := BuildCartView(3, 7, nil)

	if len(view.Items) != 0 {
		t.Errorf("expected no lines, got %d", len(view.Items))
	}
	if !view.TotalPrice.Equal(decimal.Zero) {
		t.Errorf("expected zero total, got %s", view.TotalPrice)
	}
	if view.TotalQuantity != 0 {
		t.Errorf("expected zero quantity, got %d", view.TotalQuantity)
	}
}
