package kiosk

// VoiceActivity is the mutually exclusive voice dimension layered on top of
// awake/asleep. Exactly one value holds at any instant.
type VoiceActivity string

const (
	VoiceActivityIdle       VoiceActivity = "idle"
	VoiceActivityListening  VoiceActivity = "listening"
	VoiceActivityProcessing VoiceActivity = "processing"
	VoiceActivitySpeaking   VoiceActivity = "speaking"
)

// State is the combined session state derived from awake and voice activity.
type State string

const (
	StateAsleep          State = "asleep"
	StateAwakeIdle       State = "awake_idle"
	StateAwakeListening  State = "awake_listening"
	StateAwakeProcessing State = "awake_processing"
	StateAwakeSpeaking   State = "awake_speaking"
)

// Session is the kiosk's only mutable shared state. It is mutated exclusively
// by the state machine's event handlers; adapters only emit events and the
// view layer only issues commands.
type Session struct {
	// ConsentGiven reports whether the mandatory first user tap has unlocked
	// audio capture. Listening is unreachable without it.
	ConsentGiven bool
	Awake        bool
	// VoiceActivity is forced back to idle whenever Awake is false.
	VoiceActivity VoiceActivity
	// Transcript is the in-progress recognition snapshot shown to the
	// customer while they speak.
	Transcript string
}

func (s Session) State() State {
	if !s.Awake {
		return StateAsleep
	}

	switch s.VoiceActivity {
	case VoiceActivityListening:
		return StateAwakeListening
	case VoiceActivityProcessing:
		return StateAwakeProcessing
	case VoiceActivitySpeaking:
		return StateAwakeSpeaking
	}

	return StateAwakeIdle
}
