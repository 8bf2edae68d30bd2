package events

import "github.com/hypeclust/kiosk-core/core/orders"

const (
	// KindCartItemAdded identifies a remote add or update of a cart item.
	KindCartItemAdded Kind = "cart.item_added"
	// KindCartItemRemoved identifies a remote removal of a cart item.
	KindCartItemRemoved Kind = "cart.item_removed"
	// KindCartCleared identifies a remote cart reset.
	KindCartCleared Kind = "cart.cleared"
)

// CartItemAdded carries an item the backend added to the order.
type CartItemAdded struct {
	Base
	Item orders.Item
}

// NewCartItemAdded creates a cart item added event.
func NewCartItemAdded(item orders.Item) CartItemAdded {
	return CartItemAdded{Base: NewBase(KindCartItemAdded), Item: item}
}

// CartItemRemoved carries the id of an item the backend removed.
type CartItemRemoved struct {
	Base
	ItemID string
}

// NewCartItemRemoved creates a cart item removed event.
func NewCartItemRemoved(itemID string) CartItemRemoved {
	return CartItemRemoved{Base: NewBase(KindCartItemRemoved), ItemID: itemID}
}

// CartCleared marks a remote cart reset.
type CartCleared struct{ Base }

// NewCartCleared creates a cart cleared event.
func NewCartCleared() CartCleared {
	return CartCleared{Base: NewBase(KindCartCleared)}
}
