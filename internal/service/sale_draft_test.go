package service_test

import (
	"errors"
	"testing"

	"github.com/medixpharma/pharmadmin/internal/service"
)

func TestSaleDraft_AddRejectsDuplicates(t *testing.T) {
	var d service.SaleDraft
	if err := d.AddItem(1, "Aspirin", 2, 4.50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := d.AddItem(1, "Aspirin", 1, 4.50)
	if !errors.Is(err, service.ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
	if len(d.Items) != 1 {
		t.Fatalf("duplicate add must not change the draft, has %d items", len(d.Items))
	}
}

func TestSaleDraft_AddRejectsNonPositiveQuantity(t *testing.T) {
	var d service.SaleDraft
	for _, qty := range []int{0, -3} {
		if err := d.AddItem(1, "Aspirin", qty, 4.50); !errors.Is(err, service.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestSaleDraft_TotalRecomputed(t *testing.T) {
	var d service.SaleDraft
	_ = d.AddItem(1, "Aspirin", 2, 4.50)  // 9.00
	_ = d.AddItem(2, "Panadol", 3, 3.00)  // 9.00
	_ = d.AddItem(3, "Brufen", 1, 6.25)   // 6.25
	if got := d.Total(); got != 24.25 {
		t.Fatalf("total = %v; want 24.25", got)
	}

	if err := d.RemoveItem(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Total(); got != 15.25 {
		t.Fatalf("total after removal = %v; want 15.25", got)
	}
}

func TestSaleDraft_RemoveReindexes(t *testing.T) {
	var d service.SaleDraft
	_ = d.AddItem(1, "A", 1, 1)
	_ = d.AddItem(2, "B", 1, 1)
	_ = d.AddItem(3, "C", 1, 1)

	if err := d.RemoveItem(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Items) != 2 || d.Items[0].ProductID != 2 || d.Items[1].ProductID != 3 {
		t.Fatalf("unexpected items after removal: %+v", d.Items)
	}

	if err := d.RemoveItem(5); !errors.Is(err, service.ErrBadItemIndex) {
		t.Fatalf("expected ErrBadItemIndex, got %v", err)
	}
	if err := d.RemoveItem(-1); !errors.Is(err, service.ErrBadItemIndex) {
		t.Fatalf("expected ErrBadItemIndex, got %v", err)
	}
}
