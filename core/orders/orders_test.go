package orders

import (
	"testing"
)

func TestFinalizeComputesFrozenTotals(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(Item{ID: "a", Name: "Coffee", FinalPrice: 2.50})
	ledger.AddItem(Item{ID: "b", Name: "Donut", FinalPrice: 3.25})

	completed := ledger.Finalize()
	if completed == nil {
		t.Fatalf("expected a completed order")
	}

	if got := completed.Subtotal; got != 5.75 {
		t.Fatalf("expected subtotal 5.75, got %v", got)
	}
	if got := completed.Tax; got != 5.75*TaxRate {
		t.Fatalf("expected tax %v, got %v", 5.75*TaxRate, got)
	}
	if got := completed.Total; got != 5.75+5.75*TaxRate {
		t.Fatalf("expected total %v, got %v", 5.75+5.75*TaxRate, got)
	}
	if got := FormatAmount(completed.Total); got != "6.50" {
		t.Fatalf("expected rendered total %q, got %q", "6.50", got)
	}

	if !ledger.IsCartEmpty() {
		t.Fatalf("expected cart to be emptied by finalize")
	}
	if got := len(ledger.History()); got != 1 {
		t.Fatalf("expected one completed order in history, got %d", got)
	}
}

func TestFinalizeOnEmptyCartIsNil(t *testing.T) {
	ledger := NewLedger()

	if completed := ledger.Finalize(); completed != nil {
		t.Fatalf("expected nil completed order for empty cart, got %+v", completed)
	}
	if got := len(ledger.History()); got != 0 {
		t.Fatalf("expected empty history, got %d entries", got)
	}
}

func TestSecondFinalizeIsNoop(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(Item{ID: "a", FinalPrice: 1.00})

	if completed := ledger.Finalize(); completed == nil {
		t.Fatalf("expected first finalize to produce an order")
	}
	if completed := ledger.Finalize(); completed != nil {
		t.Fatalf("expected second finalize to be a no-op, got %+v", completed)
	}
	if got := len(ledger.History()); got != 1 {
		t.Fatalf("expected exactly one completed order, got %d", got)
	}
}

func TestAddItemReplacesDuplicateID(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(Item{ID: "a", Name: "Coffee", FinalPrice: 2.50})
	ledger.AddItem(Item{ID: "a", Name: "Coffee", Modifiers: []string{"Oat Milk"}, FinalPrice: 3.00})

	cart := ledger.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected one cart item, got %d", len(cart))
	}
	if got := cart[0].FinalPrice; got != 3.00 {
		t.Fatalf("expected replacing item to win, got final price %v", got)
	}
}

func TestRemoveItemFiltersByID(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(Item{ID: "a", FinalPrice: 1.00})
	ledger.AddItem(Item{ID: "b", FinalPrice: 2.00})

	ledger.RemoveItem("a")

	cart := ledger.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected one remaining item, got %d", len(cart))
	}
	if cart[0].ID != "b" {
		t.Fatalf("expected item %q to remain, got %q", "b", cart[0].ID)
	}

	ledger.RemoveItem("missing")
	if got := len(ledger.Cart()); got != 1 {
		t.Fatalf("expected removing an unknown id to be a no-op, got %d items", got)
	}
}

func TestCartReturnsDeepCopy(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(Item{ID: "a", Modifiers: []string{"Extra Shot"}, FinalPrice: 1.00})

	snapshot := ledger.Cart()
	snapshot[0].FinalPrice = 99
	snapshot[0].Modifiers[0] = "mutated"

	cart := ledger.Cart()
	if got := cart[0].FinalPrice; got != 1.00 {
		t.Fatalf("expected ledger cart to be unaffected by snapshot mutation, got %v", got)
	}
	if got := cart[0].Modifiers[0]; got != "Extra Shot" {
		t.Fatalf("expected modifiers to be deep copied, got %q", got)
	}
}

func TestRestoreHistoryReplacesExisting(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(Item{ID: "a", FinalPrice: 1.00})
	ledger.Finalize()

	restored := []CompletedOrder{{ID: "persisted-1"}, {ID: "persisted-2"}}
	ledger.RestoreHistory(restored)

	history := ledger.History()
	if len(history) != 2 {
		t.Fatalf("expected two restored orders, got %d", len(history))
	}
	if history[0].ID != "persisted-1" || history[1].ID != "persisted-2" {
		t.Fatalf("expected restored order ids, got %+v", history)
	}
}
