// Package events defines the typed kiosk event contract.
//
// Every external stimulus the kiosk reacts to becomes one of these events and
// is consumed by the state machine one at a time, which is what makes the
// session's tie-break rules enforceable. Event kinds are grouped by
// source-facing namespaces:
//
//   - presence.*
//   - control.*
//   - user_input.*
//   - assistant_response.*
//   - assistant_speech.*
//   - cart.*
//   - order.*
//   - turn_state.*
//
// presence events
//
//   - PresenceDetected (presence.detected): a customer approached the kiosk.
//   - PresenceLost (presence.lost): the customer walked away.
//
// control events
//
//   - ConsentGranted (control.consent_granted): the mandatory first user tap
//     unlocked audio capture.
//   - MicToggled (control.mic_toggled): manual microphone toggle from the UI.
//   - WatchdogTick (control.watchdog_tick): periodic idle-recovery check.
//
// user_input events
//
//   - UserTranscriptInterim (user_input.transcript_interim_updated): mutable
//     in-progress transcript snapshot.
//   - UserTranscriptFinal (user_input.transcript_final): terminal transcript
//     for the utterance, as detected by recognizer endpointing.
//
// assistant_response events
//
//   - AssistantReply (assistant_response.received): reply text from the
//     conversation backend.
//
// assistant_speech events
//
//   - AssistantSpeechEnded (assistant_speech.ended): synthesis finished,
//     errored, or was superseded; carries the utterance generation so stale
//     completions can be discarded.
//
// cart events
//
//   - CartItemAdded (cart.item_added): remote add/update of a cart item.
//   - CartItemRemoved (cart.item_removed): remote removal by item id.
//   - CartCleared (cart.cleared): remote cart reset.
//
// order events
//
//   - OrderFinalizeRequested (order.finalize_requested): order completion
//     detected by the backend or requested manually from the UI.
//   - StandbyElapsed (order.standby_elapsed): the post-order standby delay
//     after the spoken total ran out.
//
// turn_state events
//
//   - ProcessingTimedOut (turn_state.processing_timed_out): the conversation
//     backend did not reply within the bounded processing window.
package events
