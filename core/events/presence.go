package events

const (
	// KindPresenceDetected identifies a customer approaching the kiosk.
	KindPresenceDetected Kind = "presence.detected"
	// KindPresenceLost identifies a customer leaving the kiosk.
	KindPresenceLost Kind = "presence.lost"
)

// PresenceDetected requests a wake of the kiosk session.
type PresenceDetected struct{ Base }

// NewPresenceDetected creates a presence detected event.
func NewPresenceDetected() PresenceDetected {
	return PresenceDetected{Base: NewBase(KindPresenceDetected)}
}

// PresenceLost requests the kiosk session go to sleep.
type PresenceLost struct{ Base }

// NewPresenceLost creates a presence lost event.
func NewPresenceLost() PresenceLost {
	return PresenceLost{Base: NewBase(KindPresenceLost)}
}
