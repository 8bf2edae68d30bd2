package kiosk

import (
	"time"

	events "github.com/hypeclust/kiosk-core/core/events"
)

// runWatchdog periodically enqueues a tick so the event loop can recover a
// session that ended up awake but idle. Runs until the runtime is closed.
func (k *Kiosk) runWatchdog() {
	ticker := time.NewTicker(k.watchdogPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-k.runtime.closeCh:
			return
		case <-ticker.C:
			k.enqueue(events.NewWatchdogTick())
		}
	}
}
