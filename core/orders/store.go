package orders

import "context"

// HistoryStore persists the completed-order history across process restarts.
// The history is the only entity the kiosk persists; the live cart and the
// conversation are always rebuilt from scratch on wake.
type HistoryStore interface {
	Load(ctx context.Context) ([]CompletedOrder, error)
	Save(ctx context.Context, history []CompletedOrder) error
}
