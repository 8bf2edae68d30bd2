package kiosk

import (
	"fmt"
	"strings"
	"time"

	events "github.com/hypeclust/kiosk-core/core/events"
	"github.com/hypeclust/kiosk-core/core/orders"
	"go.opentelemetry.io/otel/attribute"
)

func (k *Kiosk) handleEvent(event events.Event) {
	switch typedEvent := event.(type) {
	case events.ConsentGranted:
		k.handleConsentGranted()
	case events.PresenceDetected:
		k.handlePresenceDetected()
	case events.PresenceLost:
		k.handlePresenceLost()
	case events.MicToggled:
		k.handleMicToggled()
	case events.UserTranscriptInterim:
		k.handleInterimTranscript(typedEvent.Transcript)
	case events.UserTranscriptFinal:
		k.handleFinalTranscript(typedEvent.Transcript)
	case events.AssistantReply:
		k.handleAssistantReply(typedEvent.Text)
	case events.AssistantSpeechEnded:
		k.handleSpeechEnded(typedEvent.Generation)
	case events.ProcessingTimedOut:
		k.handleProcessingTimedOut(typedEvent.Generation)
	case events.CartItemAdded:
		k.applyCartMutation(func(ledger *orders.Ledger) { ledger.AddItem(typedEvent.Item) })
	case events.CartItemRemoved:
		k.applyCartMutation(func(ledger *orders.Ledger) { ledger.RemoveItem(typedEvent.ItemID) })
	case events.CartCleared:
		k.applyCartMutation(func(ledger *orders.Ledger) { ledger.ClearCart() })
	case events.OrderFinalizeRequested:
		k.handleFinalizeOrder(typedEvent.Manual)
	case events.StandbyElapsed:
		k.handleStandbyElapsed(typedEvent.Generation)
	case events.WatchdogTick:
		k.handleWatchdogTick()
	default:
		logger.Debug("unhandled event", "kind", string(event.Kind()))
	}
}

// setSession applies a session mutation and clamps the awake/voice-activity
// invariant: an asleep session is always idle, whatever the mutation did.
func (k *Kiosk) setSession(mutate func(*Session)) Session {
	k.mu.Lock()
	mutate(&k.session)
	if !k.session.Awake {
		k.session.VoiceActivity = VoiceActivityIdle
	}
	session := k.session
	k.mu.Unlock()

	if callback := k.observeOptions.onSessionChanged; callback != nil {
		callback(session)
	}
	return session
}

func (k *Kiosk) appendMessage(message Message) {
	k.mu.Lock()
	k.messages = append(k.messages, message)
	k.mu.Unlock()

	if callback := k.observeOptions.onMessage; callback != nil {
		callback(message)
	}
}

func (k *Kiosk) clearMessages() {
	k.mu.Lock()
	k.messages = nil
	k.mu.Unlock()

	if callback := k.observeOptions.onMessagesCleared; callback != nil {
		callback()
	}
}

func (k *Kiosk) applyCartMutation(mutate func(*orders.Ledger)) {
	// Cart mutations are never gated by the speaking/listening exclusion;
	// they apply whatever the current voice activity is.
	k.mu.Lock()
	mutate(k.ledger)
	cart := k.ledger.Cart()
	k.mu.Unlock()

	if callback := k.observeOptions.onCartChanged; callback != nil {
		callback(cart)
	}
}

func (k *Kiosk) handleConsentGranted() {
	session := k.Session()
	if session.ConsentGiven {
		return
	}

	k.setSession(func(s *Session) { s.ConsentGiven = true })
	logger.Info("audio consent recorded")
}

func (k *Kiosk) handlePresenceDetected() {
	session := k.Session()
	if !session.ConsentGiven {
		logger.Warn("ignoring presence trigger, audio consent not given yet")
		return
	}
	if session.Awake {
		return
	}

	ctx, span := tracer.Start(k.baseContext, "wake kiosk")
	defer span.End()

	// Fresh session: previous cart, conversation log and transcript are
	// discarded before greeting the new customer.
	k.applyCartMutation(func(ledger *orders.Ledger) { ledger.ClearCart() })
	k.clearMessages()
	k.setSession(func(s *Session) {
		s.Awake = true
		s.VoiceActivity = VoiceActivityIdle
		s.Transcript = ""
	})

	if k.channel != nil {
		go func() {
			if err := k.channel.Reset(ctx); err != nil {
				logger.Warn("failed to reset conversation context", "error", err)
			}
		}()
	}

	k.appendMessage(Message{Role: MessageRoleAssistant, Text: k.greeting, Kind: MessageKindNormal})
	k.speak(k.greeting, speakPurposeGreeting)
}

func (k *Kiosk) handlePresenceLost() {
	k.mu.RLock()
	cartEmpty := k.ledger.IsCartEmpty()
	awake := k.session.Awake
	k.mu.RUnlock()

	if !awake {
		return
	}
	if !cartEmpty {
		// An active order keeps the session awake regardless of presence.
		logger.Info("ignoring presence lost, order in progress")
		return
	}

	k.sleep()
}

func (k *Kiosk) sleep() {
	k.speechToText.stop()
	k.textToSpeech.stop()
	k.setSession(func(s *Session) {
		s.Awake = false
		s.Transcript = ""
	})
}

func (k *Kiosk) handleMicToggled() {
	session := k.Session()
	if !session.Awake || !session.ConsentGiven {
		return
	}

	switch session.VoiceActivity {
	case VoiceActivityProcessing, VoiceActivitySpeaking:
		// The UI must not be able to interrupt a turn in flight.
		return
	case VoiceActivityListening:
		k.stopListening()
	default:
		k.startListening()
	}
}

func (k *Kiosk) startListening() {
	k.setSession(func(s *Session) { s.VoiceActivity = VoiceActivityListening })
	k.speechToText.start(k.baseContext)
}

func (k *Kiosk) stopListening() {
	k.speechToText.stop()
	k.setSession(func(s *Session) { s.VoiceActivity = VoiceActivityIdle })
}

func (k *Kiosk) handleInterimTranscript(transcript string) {
	session := k.Session()
	if !session.Awake || session.VoiceActivity != VoiceActivityListening {
		return
	}

	k.setSession(func(s *Session) { s.Transcript = transcript })
	if callback := k.observeOptions.onInterimTranscript; callback != nil {
		callback(transcript)
	}
}

func (k *Kiosk) handleFinalTranscript(transcript string) {
	session := k.Session()
	if !session.Awake {
		// Race guard: a recognizer started just before sleep may still
		// deliver. Speech that completes after sleep never reaches the
		// backend.
		logger.Warn("discarding transcript, kiosk is asleep", "transcript", transcript)
		return
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return
	}

	k.appendMessage(Message{Role: MessageRoleUser, Text: transcript, Kind: MessageKindNormal})
	k.setSession(func(s *Session) {
		s.VoiceActivity = VoiceActivityProcessing
		s.Transcript = ""
	})
	k.speechToText.stop()

	if k.channel == nil {
		logger.Warn("no conversation channel configured, dropping transcript")
		k.setSession(func(s *Session) { s.VoiceActivity = VoiceActivityIdle })
		return
	}

	k.processingGeneration++
	generation := k.processingGeneration

	k.mu.RLock()
	cart := k.ledger.Cart()
	k.mu.RUnlock()

	go func() {
		if err := k.channel.SendUserSpeech(k.baseContext, transcript, cart); err != nil {
			logger.Warn("failed to send user speech", "error", err)
		}
	}()

	if k.processingTimeout > 0 {
		time.AfterFunc(k.processingTimeout, func() {
			k.enqueue(events.NewProcessingTimedOut(generation))
		})
	}
}

func (k *Kiosk) handleAssistantReply(text string) {
	session := k.Session()
	if !session.Awake {
		logger.Warn("discarding assistant reply, kiosk is asleep")
		return
	}

	k.processingGeneration++
	k.setSession(func(s *Session) { s.VoiceActivity = VoiceActivityIdle })
	k.appendMessage(Message{Role: MessageRoleAssistant, Text: text, Kind: MessageKindNormal})
	k.speak(text, speakPurposeReply)
}

func (k *Kiosk) handleProcessingTimedOut(generation int64) {
	if generation != k.processingGeneration {
		return
	}

	session := k.Session()
	if !session.Awake || session.VoiceActivity != VoiceActivityProcessing {
		return
	}

	logger.Warn("conversation round trip timed out")
	k.processingGeneration++
	k.appendMessage(Message{Role: MessageRoleAssistant, Text: processingFallback, Kind: MessageKindError})
	k.speak(processingFallback, speakPurposeReply)
}

// speak starts a new synthesis utterance, superseding any previous one, and
// moves the session to speaking. The recognizer never runs while speaking.
func (k *Kiosk) speak(text string, purpose speakPurpose) {
	k.speakGeneration++
	k.speakPurpose = purpose

	k.speechToText.stop()
	k.setSession(func(s *Session) { s.VoiceActivity = VoiceActivitySpeaking })
	k.textToSpeech.speak(k.baseContext, text, k.speakGeneration)
}

func (k *Kiosk) handleSpeechEnded(generation int64) {
	if generation != k.speakGeneration {
		// Completion of a superseded utterance.
		return
	}

	purpose := k.speakPurpose
	session := k.setSession(func(s *Session) { s.VoiceActivity = VoiceActivityIdle })

	switch {
	case purpose == speakPurposeTotal:
		time.AfterFunc(k.standbyDelay, func() {
			k.enqueue(events.NewStandbyElapsed(generation))
		})
	case session.Awake:
		k.startListening()
	}
}

func (k *Kiosk) handleStandbyElapsed(generation int64) {
	if generation != k.speakGeneration {
		return
	}

	// Designed override of the non-empty-cart rule: the order was just
	// completed and the cart drained, so the kiosk returns to standby
	// regardless of presence.
	logger.Info("post-order standby")
	k.sleep()
}

func (k *Kiosk) handleFinalizeOrder(manual bool) {
	_, span := tracer.Start(k.baseContext, "finalize order")
	defer span.End()

	k.mu.Lock()
	completed := k.ledger.Finalize()
	history := k.ledger.History()
	k.mu.Unlock()

	if completed == nil {
		logger.Debug("finalize requested with empty cart", "manual", manual)
		return
	}

	span.SetAttributes(
		attribute.String("order.id", completed.ID),
		attribute.Float64("order.total", completed.Total),
	)

	k.clearMessages()
	if callback := k.observeOptions.onCartChanged; callback != nil {
		callback(nil)
	}
	if callback := k.observeOptions.onOrderCompleted; callback != nil {
		callback(*completed)
	}

	amount := orders.FormatAmount(completed.Total)

	// Payment notification is advisory: failures are logged and never block
	// or roll back the completed order.
	if k.payments != nil {
		go func() {
			if err := k.payments.NotifyPayment(k.baseContext, amount); err != nil {
				logger.Error("payment notification failed", "error", err, "amount", amount)
			}
		}()
	}

	if k.historyStore != nil {
		go func() {
			if err := k.historyStore.Save(k.baseContext, history); err != nil {
				logger.Warn("failed to persist order history", "error", err)
			}
		}()
	}

	k.speak(fmt.Sprintf("Your total comes to $%s. Please tap your card to pay.", amount), speakPurposeTotal)
}

func (k *Kiosk) handleWatchdogTick() {
	session := k.Session()
	if !session.ConsentGiven || !session.Awake {
		return
	}
	if session.VoiceActivity != VoiceActivityIdle {
		// Never recover over an active listening, processing or speaking
		// phase.
		return
	}

	logger.Info("watchdog restarting listening from idle")
	k.startListening()
}
