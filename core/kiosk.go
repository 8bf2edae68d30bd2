package kiosk

import (
	"context"
	"sync"
	"time"

	events "github.com/hypeclust/kiosk-core/core/events"
	"github.com/hypeclust/kiosk-core/core/orders"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultGreeting          = "Welcome! How can I help you today?"
	DefaultWatchdogPeriod    = 1000 * time.Millisecond
	DefaultStandbyDelay      = 3000 * time.Millisecond
	DefaultProcessingTimeout = 15 * time.Second
)

// processingFallback is spoken when the conversation backend does not reply
// within the processing timeout.
const processingFallback = "Sorry, I'm having trouble right now. Could you say that again?"

// Kiosk is the interaction state machine driving an unattended voice-ordering
// kiosk. It owns the Session and the order ledger; adapters feed it events
// and it issues commands back to them. All transitions run on a single event
// loop, so the tie-break rules between presence, speech, playback, the
// conversation channel and manual input hold without locks.
type Kiosk struct {
	mu       sync.RWMutex
	session  Session
	messages []Message
	ledger   *orders.Ledger

	runtime      *kioskRuntime
	speechToText speechToText
	textToSpeech textToSpeech
	channel      ConversationChannel
	payments     PaymentNotifier
	historyStore orders.HistoryStore

	greeting          string
	watchdogPeriod    time.Duration
	standbyDelay      time.Duration
	processingTimeout time.Duration

	observeOptions ObserveOptions
	baseContext    context.Context
	closeOnce      sync.Once

	// The fields below are touched exclusively by the event loop.

	// speakGeneration identifies the current synthesis utterance; completion
	// events from superseded utterances carry an older generation.
	speakGeneration int64
	speakPurpose    speakPurpose
	// processingGeneration identifies the current conversation round trip so
	// a late timeout cannot cancel the turn a reply already resolved.
	processingGeneration int64
}

type speakPurpose string

const (
	speakPurposeGreeting speakPurpose = "greeting"
	speakPurposeReply    speakPurpose = "reply"
	speakPurposeTotal    speakPurpose = "total"
)

func New(opts ...Option) *Kiosk {
	k := &Kiosk{
		session:           Session{VoiceActivity: VoiceActivityIdle},
		ledger:            orders.NewLedger(),
		runtime:           newKioskRuntime(),
		greeting:          DefaultGreeting,
		watchdogPeriod:    DefaultWatchdogPeriod,
		standbyDelay:      DefaultStandbyDelay,
		processingTimeout: DefaultProcessingTimeout,
		baseContext:       context.Background(),
	}

	k.speechToText = *newSpeechToText(nil, k.enqueue)
	k.textToSpeech = *newTextToSpeech(nil, k.enqueue)

	for _, opt := range opts {
		opt(k)
	}

	return k
}

// Start begins consuming events. ctx is the base context for adapter and
// collaborator calls; cancelling it closes the kiosk.
//
// Contract: call Start at most once per kiosk instance.
func (k *Kiosk) Start(ctx context.Context, opts ...ObserveOption) {
	if k.runtime.isClosed() {
		logger.Warn("kiosk already closed, skipping Start")
		return
	}

	k.observeOptions = ObserveOptions{}
	for _, opt := range opts {
		opt(&k.observeOptions)
	}

	k.baseContext = ctx
	k.loadHistory(ctx)

	if started := k.runtime.start(k.processQueuedEvent); started {
		go k.runWatchdog()
		go func() {
			<-ctx.Done()
			k.Close()
		}()
	}
}

// processQueuedEvent applies one transition and records how long the event
// waited behind earlier ones, so queue backlog shows up in traces.
func (k *Kiosk) processQueuedEvent(item queuedEvent) {
	_, span := tracer.Start(k.baseContext, "handle "+string(item.event.Kind()))
	defer span.End()

	span.SetAttributes(attribute.Float64("kiosk_event.queued_time", time.Since(item.queuedAt).Seconds()))

	k.handleEvent(item.event)
}

func (k *Kiosk) Close() {
	k.closeOnce.Do(func() {
		k.runtime.end()
		k.textToSpeech.stop()
		k.speechToText.stop()
		k.runtime.waitUntilEnded()
	})
}

// RecordConsent records the mandatory first user tap that unlocks audio
// capture. Idempotent; a hard precondition for any wake to reach listening.
func (k *Kiosk) RecordConsent() { k.enqueue(events.NewConsentGranted()) }

// PresenceDetected requests a wake of the session.
func (k *Kiosk) PresenceDetected() { k.enqueue(events.NewPresenceDetected()) }

// PresenceLost requests the session go to sleep. A non-empty cart keeps the
// session awake regardless.
func (k *Kiosk) PresenceLost() { k.enqueue(events.NewPresenceLost()) }

// ToggleMic toggles listening from the UI. Inert while processing or
// speaking.
func (k *Kiosk) ToggleMic() { k.enqueue(events.NewMicToggled()) }

// CompleteOrder finalizes the current order manually. No-op on an empty
// cart.
func (k *Kiosk) CompleteOrder() { k.enqueue(events.NewOrderFinalizeRequested(true)) }

// HandleAssistantReply ingests reply text from the conversation channel.
func (k *Kiosk) HandleAssistantReply(text string) { k.enqueue(events.NewAssistantReply(text)) }

// HandleCartItemAdded ingests a remote cart addition.
func (k *Kiosk) HandleCartItemAdded(item orders.Item) { k.enqueue(events.NewCartItemAdded(item)) }

// HandleCartItemRemoved ingests a remote cart removal.
func (k *Kiosk) HandleCartItemRemoved(itemID string) { k.enqueue(events.NewCartItemRemoved(itemID)) }

// HandleCartCleared ingests a remote cart reset.
func (k *Kiosk) HandleCartCleared() { k.enqueue(events.NewCartCleared()) }

// HandleOrderFinalize ingests backend-detected order completion.
func (k *Kiosk) HandleOrderFinalize() { k.enqueue(events.NewOrderFinalizeRequested(false)) }

// Handle ingests an arbitrary event, mainly useful for testing and manual
// simulation.
func (k *Kiosk) Handle(event events.Event) { k.enqueue(event) }

// Session returns a point-in-time snapshot of the session state.
func (k *Kiosk) Session() Session {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.session
}

// Messages returns a copy of the conversation log.
func (k *Kiosk) Messages() []Message {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return append([]Message(nil), k.messages...)
}

// Cart returns a deep copy of the live cart.
func (k *Kiosk) Cart() []orders.Item {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.ledger.Cart()
}

// History returns a copy of the completed-order history.
func (k *Kiosk) History() []orders.CompletedOrder {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.ledger.History()
}

func (k *Kiosk) enqueue(event events.Event) {
	if !k.runtime.enqueue(event) {
		logger.Debug("event dropped, kiosk closed", "kind", string(event.Kind()))
	}
}

func (k *Kiosk) loadHistory(ctx context.Context) {
	if k.historyStore == nil {
		return
	}

	history, err := k.historyStore.Load(ctx)
	if err != nil {
		logger.Warn("failed to load order history, starting empty", "error", err)
		return
	}

	k.mu.Lock()
	k.ledger.RestoreHistory(history)
	k.mu.Unlock()
}
