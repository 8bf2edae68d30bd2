package kiosk

import (
	"sync"
	"sync/atomic"
	"time"

	events "github.com/hypeclust/kiosk-core/core/events"
)

const eventQueueCapacity = 32

type queuedEvent struct {
	event    events.Event
	queuedAt time.Time
}

// kioskRuntime serializes event handling: five independent sources enqueue
// concurrently, a single goroutine applies one transition at a time. This is
// the only serialization point; no handler can observe another's
// half-applied transition.
type kioskRuntime struct {
	queue   chan queuedEvent
	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	endOnce   sync.Once

	started atomic.Bool
}

func newKioskRuntime() *kioskRuntime {
	return &kioskRuntime{
		queue:   make(chan queuedEvent, eventQueueCapacity),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (runtime *kioskRuntime) isClosed() bool {
	select {
	case <-runtime.closeCh:
		return true
	default:
		return false
	}
}

func (runtime *kioskRuntime) start(process func(queuedEvent)) (started bool) {
	if runtime.isClosed() {
		return false
	}

	runtime.startOnce.Do(func() {
		if runtime.isClosed() {
			return
		}

		started = true
		runtime.started.Store(true)
		go func() {
			defer close(runtime.done)

			for {
				select {
				case <-runtime.closeCh:
					return
				case queuedEvent := <-runtime.queue:
					if runtime.isClosed() {
						return
					}
					process(queuedEvent)
				}
			}
		}()
	})

	return started
}

func (runtime *kioskRuntime) end() {
	runtime.endOnce.Do(func() {
		close(runtime.closeCh)
	})
}

func (runtime *kioskRuntime) waitUntilEnded() {
	if runtime.started.Load() {
		<-runtime.done
	}
}

func (runtime *kioskRuntime) enqueue(event events.Event) bool {
	if runtime.isClosed() {
		return false
	}

	select {
	case <-runtime.closeCh:
		return false
	case runtime.queue <- queuedEvent{event: event, queuedAt: time.Now()}:
		return true
	}
}
