package kiosk

import (
	"context"
	"sync"

	events "github.com/hypeclust/kiosk-core/core/events"
	"github.com/hypeclust/kiosk-core/core/texttospeech"
)

// textToSpeech is the synthesizer facade. It guarantees that every utterance
// produces exactly one AssistantSpeechEnded event carrying its generation:
// on normal completion, on engine error, and immediately when no engine is
// configured or the Speak call itself fails. At most one utterance is in
// flight; starting a new one supersedes the previous.
type textToSpeech struct {
	client TextToSpeech
	output AudioOutput

	emitEvent eventEmitter
}

func newTextToSpeech(client TextToSpeech, emitEvent eventEmitter) *textToSpeech {
	if emitEvent == nil {
		emitEvent = noopEventEmitter
	}
	return &textToSpeech{
		client:    client,
		emitEvent: emitEvent,
	}
}

func (t *textToSpeech) set(client TextToSpeech) {
	if t != nil {
		t.client = client
	}
}

func (t *textToSpeech) setOutput(output AudioOutput) {
	if t != nil {
		t.output = output
	}
}

func (t *textToSpeech) isConfigured() bool {
	return t != nil && t.client != nil
}

func (t *textToSpeech) speak(ctx context.Context, text string, generation int64) {
	complete := t.completionFor(generation)

	if !t.isConfigured() {
		// Engine unavailable: synchronous immediate completion.
		complete()
		return
	}

	t.stop()

	opts := []texttospeech.SpeechOption{
		texttospeech.WithSpeechEndedCallback(complete),
		texttospeech.WithErrorCallback(func(err error) {
			logger.Debug("speech synthesis ended with error", "error", err)
			complete()
		}),
	}
	if t.output != nil {
		opts = append(opts, texttospeech.WithSpeechAudioCallback(t.output.Play))
	}

	if err := t.client.Speak(ctx, text, opts...); err != nil {
		logger.Warn("failed to start speech synthesis", "error", err)
		complete()
	}
}

// stop cancels any in-flight utterance. The cancelled utterance's error
// callback still resolves it, so the exactly-once completion contract holds.
func (t *textToSpeech) stop() {
	if !t.isConfigured() {
		return
	}

	if err := t.client.Stop(); err != nil {
		logger.Debug("speech synthesizer stop reported an error", "error", err)
	}

	// Audio already queued on the device belongs to the cancelled utterance.
	if t.output != nil {
		t.output.Clear()
	}
}

func (t *textToSpeech) completionFor(generation int64) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			t.emitEvent(events.NewAssistantSpeechEnded(generation))
		})
	}
}
