package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// TaxRate is the HST rate applied when an order is finalized.
const TaxRate = 0.13

type Item struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	BasePrice float64  `json:"basePrice"`
	Modifiers []string `json:"modifiers"`
	// FinalPrice is authoritative for totals; it is never recomputed from
	// BasePrice and Modifiers.
	FinalPrice float64 `json:"finalPrice"`
}

// CompletedOrder is an immutable snapshot of the cart at finalization time.
// Its totals are computed once and frozen.
type CompletedOrder struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	Subtotal  float64   `json:"subtotal"`
	Tax       float64   `json:"tax"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// Ledger owns the live cart and the append-only order history.
//
// It is not safe for concurrent use on its own; the kiosk state machine
// serializes every mutation.
type Ledger struct {
	cart    []Item
	history []CompletedOrder
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem appends an item to the cart. An item whose id is already present
// replaces the existing entry, so the cart never holds duplicate ids.
func (l *Ledger) AddItem(item Item) {
	for i := range l.cart {
		if l.cart[i].ID == item.ID {
			l.cart[i] = item
			return
		}
	}
	l.cart = append(l.cart, item)
}

func (l *Ledger) RemoveItem(id string) {
	filtered := l.cart[:0]
	for _, item := range l.cart {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	l.cart = filtered
}

func (l *Ledger) ClearCart() {
	l.cart = nil
}

func (l *Ledger) IsCartEmpty() bool {
	return len(l.cart) == 0
}

// Cart returns a deep copy of the live cart.
func (l *Ledger) Cart() []Item {
	items := make([]Item, 0, len(l.cart))
	// copier cannot fail copying a slice onto its own element type.
	_ = copier.Copy(&items, l.cart)
	return items
}

func (l *Ledger) Subtotal() float64 {
	subtotal := 0.0
	for _, item := range l.cart {
		subtotal += item.FinalPrice
	}
	return subtotal
}

// Finalize snapshots the current cart into a CompletedOrder, appends it to
// the history and empties the cart. It returns nil when the cart is empty.
//
// Finalize is the only producer of CompletedOrder and is not idempotent on a
// non-empty cart; emptying the cart here is what gives the caller single-call
// semantics.
func (l *Ledger) Finalize() *CompletedOrder {
	if len(l.cart) == 0 {
		return nil
	}

	subtotal := l.Subtotal()
	tax := subtotal * TaxRate
	completed := CompletedOrder{
		ID:        uuid.NewString(),
		Items:     l.Cart(),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal + tax,
		Timestamp: time.Now(),
	}

	l.history = append(l.history, completed)
	l.cart = nil

	return &completed
}

// History returns a copy of the completed-order history, oldest first.
func (l *Ledger) History() []CompletedOrder {
	history := make([]CompletedOrder, 0, len(l.history))
	_ = copier.Copy(&history, l.history)
	return history
}

// RestoreHistory replaces the history with a previously persisted one. It is
// meant for startup only; the cart is untouched.
func (l *Ledger) RestoreHistory(history []CompletedOrder) {
	l.history = append([]CompletedOrder(nil), history...)
}

// FormatAmount renders a monetary amount as a 2-decimal string, the format
// used for spoken totals and payment notifications.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
