package kiosk

import events "github.com/hypeclust/kiosk-core/core/events"

// eventEmitter is how adapters hand events to the state machine. Facades are
// constructed with the kiosk's enqueue so adapter callbacks never touch the
// session directly.
type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}
