package conversation

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hypeclust/kiosk-core/core/orders"
	"github.com/hypeclust/kiosk-core/pkg/log"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is the duplex transport to the conversational backend: user speech
// goes out over a websocket, assistant replies and cart commands come back
// over the same socket, and context resets go out as plain HTTP.
type Client struct {
	wsURL      string
	baseURL    string
	httpClient *http.Client

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewClient(wsURL, baseURL string) *Client {
	return &Client{
		wsURL:   wsURL,
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}
}

func (c *Client) Dial(ctx context.Context) error {
	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to conversation backend at %s: %w", c.wsURL, err)
	}

	c.writeMu.Lock()
	c.conn = conn
	c.writeMu.Unlock()

	log.Info(log.Fields{"url": c.wsURL}, "Connected to conversation backend")
	return nil
}

// Listen reads inbound messages and dispatches them to callbacks until the
// socket closes or ctx is cancelled. Malformed messages are logged and
// skipped.
func (c *Client) Listen(ctx context.Context, callbacks Callbacks) error {
	c.writeMu.Lock()
	conn := c.conn
	c.writeMu.Unlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	// The watcher must not outlive this call: when the peer closes the
	// socket the read loop returns on its own and ctx may never fire.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("conversation socket closed: %w", err)
		}

		dispatch(payload, callbacks)
	}
}

func dispatch(payload []byte, callbacks Callbacks) {
	var message envelope
	if err := json.Unmarshal(payload, &message); err != nil {
		log.Warn(log.Fields{"error": err}, "Dropping malformed backend message")
		return
	}

	switch message.Type {
	case messageTypeAIResponse:
		var response aiResponseMessage
		if err := json.Unmarshal(payload, &response); err != nil {
			log.Warn(log.Fields{"error": err}, "Dropping malformed ai_response message")
			return
		}
		if callbacks.OnAssistantResponse != nil {
			callbacks.OnAssistantResponse(response.Text)
		}

	case messageTypeCartUpdate:
		var update cartUpdateMessage
		if err := json.Unmarshal(payload, &update); err != nil {
			log.Warn(log.Fields{"error": err}, "Dropping malformed cart_update message")
			return
		}
		if callbacks.OnCartItemAdded != nil {
			callbacks.OnCartItemAdded(update.Item)
		}

	case messageTypeRemoveItem:
		var removal removeItemMessage
		if err := json.Unmarshal(payload, &removal); err != nil {
			log.Warn(log.Fields{"error": err}, "Dropping malformed remove_item message")
			return
		}
		if callbacks.OnCartItemRemoved != nil {
			callbacks.OnCartItemRemoved(removal.ItemID)
		}

	case messageTypeClearCart:
		if callbacks.OnCartCleared != nil {
			callbacks.OnCartCleared()
		}

	case messageTypeFinalizeOrder:
		if callbacks.OnOrderFinalize != nil {
			callbacks.OnOrderFinalize()
		}

	default:
		log.Debug(log.Fields{"type": message.Type}, "Ignoring backend message of unknown type")
	}
}

// SendUserSpeech relays a final transcript with the current cart snapshot.
func (c *Client) SendUserSpeech(_ context.Context, text string, cart []orders.Item) error {
	payload, err := json.Marshal(userSpeechMessage{
		Type: messageTypeUserSpeech,
		Text: text,
		Cart: cart,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal user speech: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to send user speech: %w", err)
	}
	return nil
}

// Reset discards the backend's dialogue context.
func (c *Client) Reset(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reset_conversation", nil)
	if err != nil {
		return fmt.Errorf("failed to build reset request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to reset conversation: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("reset conversation returned status %d", response.StatusCode)
	}
	return nil
}

func (c *Client) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	if closeErr := c.conn.Close(); err == nil {
		err = closeErr
	}
	c.conn = nil
	return err
}
