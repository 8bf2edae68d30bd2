package kiosk

import (
	"context"

	events "github.com/hypeclust/kiosk-core/core/events"
	"github.com/hypeclust/kiosk-core/core/speechtotext"
)

// speechToText is the recognizer facade used to handle optional client
// wiring. With no client configured every call degrades to a no-op; the
// session still transitions so the rest of the machine keeps its shape.
type speechToText struct {
	client SpeechToText
	input  AudioInput

	emitEvent eventEmitter
}

// audioReceiver is the capability a recognizer exposes to accept raw audio
// pushed from a local capture device.
type audioReceiver interface {
	SendAudio(audio []byte) error
}

func newSpeechToText(client SpeechToText, emitEvent eventEmitter) *speechToText {
	if emitEvent == nil {
		emitEvent = noopEventEmitter
	}
	return &speechToText{
		client:    client,
		emitEvent: emitEvent,
	}
}

func (s *speechToText) set(client SpeechToText) {
	if s != nil {
		s.client = client
	}
}

func (s *speechToText) setInput(input AudioInput) {
	if s != nil {
		s.input = input
	}
}

func (s *speechToText) isConfigured() bool {
	return s != nil && s.client != nil
}

func (s *speechToText) start(ctx context.Context) {
	if !s.isConfigured() {
		return
	}

	if err := s.client.Start(
		ctx,
		speechtotext.WithInterimTranscriptionCallback(s.invokeInterimTranscription),
		speechtotext.WithTranscriptionCallback(s.invokeTranscription),
	); err != nil {
		logger.Warn("failed to start speech recognizer", "error", err)
		return
	}

	s.startCapture()
}

// startCapture opens the microphone for the listening session and forwards
// its audio to the recognizer.
func (s *speechToText) startCapture() {
	if s.input == nil {
		return
	}

	receiver, ok := s.client.(audioReceiver)
	if !ok {
		logger.Warn("audio input configured but recognizer cannot accept pushed audio")
		return
	}

	if err := s.input.Start(func(chunk []byte) {
		if err := receiver.SendAudio(chunk); err != nil {
			logger.Debug("failed to forward captured audio", "error", err)
		}
	}); err != nil {
		logger.Warn("failed to start audio capture", "error", err)
	}
}

// stop ends the current listening session. Abort-style engine errors are a
// normal consequence of stopping and are not surfaced.
func (s *speechToText) stop() {
	if !s.isConfigured() {
		return
	}

	if s.input != nil {
		if err := s.input.Stop(); err != nil {
			logger.Debug("audio capture stop reported an error", "error", err)
		}
	}

	if err := s.client.Stop(); err != nil {
		logger.Debug("speech recognizer stop reported an error", "error", err)
	}
}

func (s *speechToText) invokeInterimTranscription(transcript string) {
	s.emitEvent(events.NewUserTranscriptInterim(transcript))
}

func (s *speechToText) invokeTranscription(transcript string) {
	s.emitEvent(events.NewUserTranscriptFinal(transcript))
}
