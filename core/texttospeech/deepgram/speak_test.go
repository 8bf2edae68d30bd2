package deepgram

import (
	"context"
	"errors"
	"testing"

	"github.com/hypeclust/kiosk-core/core/texttospeech"
)

func TestUtteranceResolvesExactlyOnce(t *testing.T) {
	ended := 0
	failed := 0
	current := &utterance{options: texttospeech.SpeechOptions{
		SpeechEndedCallback: func() { ended++ },
		ErrorCallback:       func(error) { failed++ },
	}}

	current.resolve(nil)
	current.resolve(errors.New("late cancellation"))
	current.resolve(nil)

	if ended != 1 || failed != 0 {
		t.Fatalf("expected a single ended resolution, got ended=%d failed=%d", ended, failed)
	}
}

func TestUtteranceErrorWinsWhenFirst(t *testing.T) {
	ended := 0
	var errs []error
	current := &utterance{options: texttospeech.SpeechOptions{
		SpeechEndedCallback: func() { ended++ },
		ErrorCallback:       func(err error) { errs = append(errs, err) },
	}}

	current.resolve(errors.New("stream torn down"))
	current.resolve(nil)

	if ended != 0 || len(errs) != 1 {
		t.Fatalf("expected a single error resolution, got ended=%d errs=%v", ended, errs)
	}
}

func TestSpeakerRequiresAPIKey(t *testing.T) {
	speaker := NewSpeaker("", "")

	if err := speaker.Speak(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestSpeakerEmptyTextCompletesImmediately(t *testing.T) {
	speaker := NewSpeaker("key", "")

	ended := 0
	err := speaker.Speak(context.Background(), "",
		texttospeech.WithSpeechEndedCallback(func() { ended++ }))
	if err != nil {
		t.Fatalf("expected empty text to be a no-op, got %v", err)
	}
	if ended != 1 {
		t.Fatalf("expected immediate completion, got %d", ended)
	}
}
