package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hypeclust/kiosk-core/pkg/log"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTriggerChannel carries the proximity sensor's on/off triggers.
	DefaultTriggerChannel = "distane_trigger_channel"
)

// Callbacks receives parsed presence triggers.
type Callbacks struct {
	OnPresenceDetected func()
	OnPresenceLost     func()
}

// Listener subscribes to the presence trigger channel and converts its
// messages into presence callbacks.
type Listener struct {
	client  *redis.Client
	channel string
}

func NewListener(client *redis.Client, channel string) *Listener {
	if channel == "" {
		channel = DefaultTriggerChannel
	}
	return &Listener{client: client, channel: channel}
}

// Listen consumes trigger messages until ctx is cancelled. Malformed
// messages are logged and skipped.
func (l *Listener) Listen(ctx context.Context, callbacks Callbacks) error {
	subscription := l.client.Subscribe(ctx, l.channel)
	defer subscription.Close()

	log.Info(log.Fields{"channel": l.channel}, "Listening for presence triggers")

	messages := subscription.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return fmt.Errorf("presence subscription closed")
			}

			on, err := parseTrigger([]byte(message.Payload))
			if err != nil {
				log.Warn(log.Fields{"error": err}, "Dropping malformed presence trigger")
				continue
			}

			if on {
				if callbacks.OnPresenceDetected != nil {
					callbacks.OnPresenceDetected()
				}
			} else {
				if callbacks.OnPresenceLost != nil {
					callbacks.OnPresenceLost()
				}
			}
		}
	}
}

type triggerMessage struct {
	Trigger string `json:"Trigger"`
}

func parseTrigger(payload []byte) (bool, error) {
	var message triggerMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return false, fmt.Errorf("failed to unmarshal trigger: %w", err)
	}

	switch strings.ToUpper(message.Trigger) {
	case "ON":
		return true, nil
	case "OFF":
		return false, nil
	default:
		return false, fmt.Errorf("unknown trigger %q", message.Trigger)
	}
}
