package events

const (
	// KindAssistantReply identifies reply text from the conversation backend.
	KindAssistantReply Kind = "assistant_response.received"
	// KindAssistantSpeechEnded identifies a finished synthesis utterance.
	KindAssistantSpeechEnded Kind = "assistant_speech.ended"
	// KindProcessingTimedOut identifies an expired conversation round trip.
	KindProcessingTimedOut Kind = "turn_state.processing_timed_out"
)

// AssistantReply carries the backend's reply text.
type AssistantReply struct {
	Base
	Text string
}

// NewAssistantReply creates an assistant reply event.
func NewAssistantReply(text string) AssistantReply {
	return AssistantReply{Base: NewBase(KindAssistantReply), Text: text}
}

// AssistantSpeechEnded marks the completion of one synthesis utterance.
// Generation identifies the utterance; completions from superseded utterances
// carry an older generation and are discarded by the state machine.
type AssistantSpeechEnded struct {
	Base
	Generation int64
}

// NewAssistantSpeechEnded creates a speech ended event for an utterance generation.
func NewAssistantSpeechEnded(generation int64) AssistantSpeechEnded {
	return AssistantSpeechEnded{Base: NewBase(KindAssistantSpeechEnded), Generation: generation}
}

// ProcessingTimedOut marks the expiry of the bounded wait for a backend reply.
// Generation identifies the round trip; a reply that arrived in the meantime
// bumps the generation and the timeout is discarded.
type ProcessingTimedOut struct {
	Base
	Generation int64
}

// NewProcessingTimedOut creates a processing timed out event for a round-trip generation.
func NewProcessingTimedOut(generation int64) ProcessingTimedOut {
	return ProcessingTimedOut{Base: NewBase(KindProcessingTimedOut), Generation: generation}
}
