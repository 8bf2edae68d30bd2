package kiosk

import "testing"

func TestSessionStateDerivation(t *testing.T) {
	cases := []struct {
		session Session
		want    State
	}{
		{Session{}, StateAsleep},
		{Session{Awake: false, VoiceActivity: VoiceActivityListening}, StateAsleep},
		{Session{Awake: true, VoiceActivity: VoiceActivityIdle}, StateAwakeIdle},
		{Session{Awake: true, VoiceActivity: VoiceActivityListening}, StateAwakeListening},
		{Session{Awake: true, VoiceActivity: VoiceActivityProcessing}, StateAwakeProcessing},
		{Session{Awake: true, VoiceActivity: VoiceActivitySpeaking}, StateAwakeSpeaking},
	}

	for _, testCase := range cases {
		if got := testCase.session.State(); got != testCase.want {
			t.Fatalf("expected %q for %+v, got %q", testCase.want, testCase.session, got)
		}
	}
}
