package conversation

import "github.com/hypeclust/kiosk-core/core/orders"

const (
	messageTypeAIResponse    = "ai_response"
	messageTypeCartUpdate    = "cart_update"
	messageTypeClearCart     = "clear_cart"
	messageTypeRemoveItem    = "remove_item"
	messageTypeFinalizeOrder = "finalize_order"
	messageTypeUserSpeech    = "user_speech"
)

type envelope struct {
	Type string `json:"type"`
}

type aiResponseMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type cartUpdateMessage struct {
	Type string      `json:"type"`
	Item orders.Item `json:"item"`
}

type removeItemMessage struct {
	Type   string `json:"type"`
	ItemID string `json:"item_id"`
}

type userSpeechMessage struct {
	Type string        `json:"type"`
	Text string        `json:"text"`
	Cart []orders.Item `json:"cart"`
}

// Callbacks receives the backend's inbound messages. Nil callbacks are
// skipped.
type Callbacks struct {
	OnAssistantResponse func(text string)
	OnCartItemAdded     func(item orders.Item)
	OnCartItemRemoved   func(itemID string)
	OnCartCleared       func()
	OnOrderFinalize     func()
}
