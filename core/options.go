package kiosk

import (
	"context"
	"time"

	"github.com/hypeclust/kiosk-core/core/orders"
	"github.com/hypeclust/kiosk-core/core/speechtotext"
	"github.com/hypeclust/kiosk-core/core/texttospeech"
)

type Option func(*Kiosk)

// SpeechToText is the capability contract for a speech recognizer. Start
// begins a listening session whose callbacks deliver interim updates and
// exactly one final transcript per utterance segment; Stop must be tolerated
// as a normal no-op, including when no session is running.
type SpeechToText interface {
	Start(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	Stop() error
}

func WithSpeechToTextClient(client SpeechToText) Option {
	return func(k *Kiosk) {
		k.speechToText.set(client)
	}
}

// TextToSpeech is the capability contract for a speech synthesizer. Speak
// renders one utterance; the engine reports the outcome through the ended or
// error callback. Stop cancels whatever is in flight.
type TextToSpeech interface {
	Speak(ctx context.Context, text string, opts ...texttospeech.SpeechOption) error
	Stop() error
}

func WithTextToSpeechClient(client TextToSpeech) Option {
	return func(k *Kiosk) {
		k.textToSpeech.set(client)
	}
}

// AudioInput is a local capture device. Start begins delivering microphone
// audio to onAudio; Stop silences it. The kiosk starts it with every
// listening session and stops it with the session.
type AudioInput interface {
	Start(onAudio func(audio []byte)) error
	Stop() error
}

// WithAudioInput wires a capture device whose audio is forwarded to the
// recognizer while the kiosk listens. The recognizer must accept pushed
// audio for the input to have any effect.
func WithAudioInput(input AudioInput) Option {
	return func(k *Kiosk) {
		k.speechToText.setInput(input)
	}
}

// AudioOutput is a local playback device. Play queues synthesized audio;
// Clear drops whatever is queued but not yet played.
type AudioOutput interface {
	Play(audio []byte)
	Clear()
}

// WithAudioOutput wires a playback device that receives the synthesizer's
// audio as it is produced.
func WithAudioOutput(output AudioOutput) Option {
	return func(k *Kiosk) {
		k.textToSpeech.setOutput(output)
	}
}

// ConversationChannel is the outbound half of the duplex backend transport.
// Inbound messages reach the kiosk through its Handle* ingestion methods.
type ConversationChannel interface {
	// SendUserSpeech relays a final transcript together with the current cart
	// snapshot as dialogue context.
	SendUserSpeech(ctx context.Context, text string, cart []orders.Item) error
	// Reset discards the backend's dialogue context. Fired on wake,
	// fire-and-forget.
	Reset(ctx context.Context) error
}

func WithConversationChannel(channel ConversationChannel) Option {
	return func(k *Kiosk) {
		k.channel = channel
	}
}

// PaymentNotifier publishes the payment amount when an order completes.
// Delivery is advisory and at-most-once; failures never block completion.
type PaymentNotifier interface {
	NotifyPayment(ctx context.Context, amount string) error
}

func WithPaymentNotifier(notifier PaymentNotifier) Option {
	return func(k *Kiosk) {
		k.payments = notifier
	}
}

func WithHistoryStore(store orders.HistoryStore) Option {
	return func(k *Kiosk) {
		k.historyStore = store
	}
}

// WithGreeting overrides the greeting spoken when the kiosk wakes.
func WithGreeting(text string) Option {
	return func(k *Kiosk) {
		if text != "" {
			k.greeting = text
		}
	}
}

// WithWatchdogPeriod overrides the idle-recovery check period.
func WithWatchdogPeriod(period time.Duration) Option {
	return func(k *Kiosk) {
		if period > 0 {
			k.watchdogPeriod = period
		}
	}
}

// WithStandbyDelay overrides the delay between the spoken total and the
// forced return to standby.
func WithStandbyDelay(delay time.Duration) Option {
	return func(k *Kiosk) {
		if delay > 0 {
			k.standbyDelay = delay
		}
	}
}

// WithProcessingTimeout overrides the bounded wait for a backend reply.
// Zero disables the timeout.
func WithProcessingTimeout(timeout time.Duration) Option {
	return func(k *Kiosk) {
		k.processingTimeout = timeout
	}
}

// ObserveOptions are the view-layer callbacks. They are invoked from the
// event loop after a transition is fully applied; implementations must not
// block.
type ObserveOptions struct {
	onSessionChanged    func(Session)
	onMessage           func(Message)
	onMessagesCleared   func()
	onCartChanged       func([]orders.Item)
	onOrderCompleted    func(orders.CompletedOrder)
	onInterimTranscript func(string)
}

type ObserveOption func(*ObserveOptions)

func WithSessionCallback(callback func(Session)) ObserveOption {
	return func(o *ObserveOptions) { o.onSessionChanged = callback }
}

func WithMessageCallback(callback func(Message)) ObserveOption {
	return func(o *ObserveOptions) { o.onMessage = callback }
}

func WithMessagesClearedCallback(callback func()) ObserveOption {
	return func(o *ObserveOptions) { o.onMessagesCleared = callback }
}

func WithCartCallback(callback func([]orders.Item)) ObserveOption {
	return func(o *ObserveOptions) { o.onCartChanged = callback }
}

func WithOrderCompletedCallback(callback func(orders.CompletedOrder)) ObserveOption {
	return func(o *ObserveOptions) { o.onOrderCompleted = callback }
}

func WithInterimTranscriptCallback(callback func(string)) ObserveOption {
	return func(o *ObserveOptions) { o.onInterimTranscript = callback }
}
