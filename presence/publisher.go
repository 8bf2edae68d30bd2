package presence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hypeclust/kiosk-core/pkg/log"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPaymentChannel carries order completion notifications to the
	// payment terminal.
	DefaultPaymentChannel = "order_payment_confirmation_channel"
)

type paymentMessage struct {
	OrderCompleted bool   `json:"ORDER_COMPLETED"`
	PaymentAmount  string `json:"PAYMENT_AMOUNT"`
}

// PaymentPublisher announces completed orders on the payment channel.
type PaymentPublisher struct {
	client  *redis.Client
	channel string
}

func NewPaymentPublisher(client *redis.Client, channel string) *PaymentPublisher {
	if channel == "" {
		channel = DefaultPaymentChannel
	}
	return &PaymentPublisher{client: client, channel: channel}
}

// NotifyPayment publishes the amount the customer owes, formatted with two
// decimals.
func (p *PaymentPublisher) NotifyPayment(ctx context.Context, amount string) error {
	payload, err := json.Marshal(paymentMessage{OrderCompleted: true, PaymentAmount: amount})
	if err != nil {
		return fmt.Errorf("failed to marshal payment notification: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish payment notification: %w", err)
	}

	log.Debug(log.Fields{"amount": amount, "channel": p.channel}, "Published payment notification")
	return nil
}
