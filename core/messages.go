package kiosk

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type MessageKind string

const (
	MessageKindNormal     MessageKind = "normal"
	MessageKindError      MessageKind = "error"
	MessageKindSuggestion MessageKind = "suggestion"
)

// Message is one entry of the conversation log shown to the customer. The
// log is append-only and cleared on wake and on order completion.
type Message struct {
	Role MessageRole
	Text string
	Kind MessageKind
}
