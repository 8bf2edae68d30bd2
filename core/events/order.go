package events

const (
	// KindOrderFinalizeRequested identifies an order completion request.
	KindOrderFinalizeRequested Kind = "order.finalize_requested"
	// KindStandbyElapsed identifies an expired post-order standby delay.
	KindStandbyElapsed Kind = "order.standby_elapsed"
)

// OrderFinalizeRequested asks the kiosk to finalize the current order.
// Manual distinguishes the UI button from backend-detected completion; the
// resulting behavior is the same.
type OrderFinalizeRequested struct {
	Base
	Manual bool
}

// NewOrderFinalizeRequested creates an order finalize request event.
func NewOrderFinalizeRequested(manual bool) OrderFinalizeRequested {
	return OrderFinalizeRequested{Base: NewBase(KindOrderFinalizeRequested), Manual: manual}
}

// StandbyElapsed marks the end of the post-order standby delay that follows
// the spoken total. Generation ties it to the total utterance so a newer
// utterance cancels the pending standby.
type StandbyElapsed struct {
	Base
	Generation int64
}

// NewStandbyElapsed creates a standby elapsed event for an utterance generation.
func NewStandbyElapsed(generation int64) StandbyElapsed {
	return StandbyElapsed{Base: NewBase(KindStandbyElapsed), Generation: generation}
}
