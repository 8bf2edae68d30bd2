package events

import (
	"testing"

	"github.com/hypeclust/kiosk-core/core/orders"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "presence detected", event: NewPresenceDetected(), expected: KindPresenceDetected},
		{name: "presence lost", event: NewPresenceLost(), expected: KindPresenceLost},
		{name: "consent granted", event: NewConsentGranted(), expected: KindConsentGranted},
		{name: "mic toggled", event: NewMicToggled(), expected: KindMicToggled},
		{name: "watchdog tick", event: NewWatchdogTick(), expected: KindWatchdogTick},
		{name: "user transcript interim", event: NewUserTranscriptInterim("text"), expected: KindUserTranscriptInterim},
		{name: "user transcript final", event: NewUserTranscriptFinal("text"), expected: KindUserTranscriptFinal},
		{name: "assistant reply", event: NewAssistantReply("text"), expected: KindAssistantReply},
		{name: "assistant speech ended", event: NewAssistantSpeechEnded(1), expected: KindAssistantSpeechEnded},
		{name: "processing timed out", event: NewProcessingTimedOut(1), expected: KindProcessingTimedOut},
		{name: "cart item added", event: NewCartItemAdded(orders.Item{ID: "id"}), expected: KindCartItemAdded},
		{name: "cart cleared", event: NewCartCleared(), expected: KindCartCleared},
		{name: "cart item removed", event: NewCartItemRemoved("id"), expected: KindCartItemRemoved},
		{name: "order finalize requested", event: NewOrderFinalizeRequested(true), expected: KindOrderFinalizeRequested},
		{name: "standby elapsed", event: NewStandbyElapsed(1), expected: KindStandbyElapsed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
			if testCase.event.Timestamp().IsZero() {
				t.Fatalf("expected constructor to stamp the event")
			}
		})
	}
}

func TestPresenceKindsAreDistinct(t *testing.T) {
	detected := NewPresenceDetected()
	lost := NewPresenceLost()

	if detected.Kind() == lost.Kind() {
		t.Fatalf("expected presence detected and lost kinds to differ, both were %q", detected.Kind())
	}
}
