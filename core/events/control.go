package events

const (
	// KindConsentGranted identifies the one-time audio-unlock user gesture.
	KindConsentGranted Kind = "control.consent_granted"
	// KindMicToggled identifies a manual microphone toggle.
	KindMicToggled Kind = "control.mic_toggled"
	// KindWatchdogTick identifies a periodic idle-recovery check.
	KindWatchdogTick Kind = "control.watchdog_tick"
)

// ConsentGranted records the mandatory first user tap that unlocks audio.
type ConsentGranted struct{ Base }

// NewConsentGranted creates a consent granted event.
func NewConsentGranted() ConsentGranted {
	return ConsentGranted{Base: NewBase(KindConsentGranted)}
}

// MicToggled carries a manual microphone toggle request from the UI.
type MicToggled struct{ Base }

// NewMicToggled creates a mic toggled event.
func NewMicToggled() MicToggled {
	return MicToggled{Base: NewBase(KindMicToggled)}
}

// WatchdogTick marks one period of the idle-recovery watchdog.
type WatchdogTick struct{ Base }

// NewWatchdogTick creates a watchdog tick event.
func NewWatchdogTick() WatchdogTick {
	return WatchdogTick{Base: NewBase(KindWatchdogTick)}
}
