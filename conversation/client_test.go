package conversation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hypeclust/kiosk-core/core/orders"
)

func TestDispatchAssistantResponse(t *testing.T) {
	var texts []string
	dispatch([]byte(`{"type":"ai_response","text":"Added one espresso."}`), Callbacks{
		OnAssistantResponse: func(text string) { texts = append(texts, text) },
	})

	if len(texts) != 1 || texts[0] != "Added one espresso." {
		t.Fatalf("expected assistant response dispatched, got %v", texts)
	}
}

func TestDispatchCartMessages(t *testing.T) {
	var added []orders.Item
	var removed []string
	cleared := 0
	finalized := 0

	callbacks := Callbacks{
		OnCartItemAdded:   func(item orders.Item) { added = append(added, item) },
		OnCartItemRemoved: func(itemID string) { removed = append(removed, itemID) },
		OnCartCleared:     func() { cleared++ },
		OnOrderFinalize:   func() { finalized++ },
	}

	dispatch([]byte(`{"type":"cart_update","item":{"id":"latte","name":"Latte","basePrice":5.75,"finalPrice":5.75}}`), callbacks)
	dispatch([]byte(`{"type":"remove_item","item_id":"latte"}`), callbacks)
	dispatch([]byte(`{"type":"clear_cart"}`), callbacks)
	dispatch([]byte(`{"type":"finalize_order"}`), callbacks)

	if len(added) != 1 || added[0].ID != "latte" || added[0].FinalPrice != 5.75 {
		t.Fatalf("expected cart item dispatched, got %+v", added)
	}
	if len(removed) != 1 || removed[0] != "latte" {
		t.Fatalf("expected removal dispatched, got %v", removed)
	}
	if cleared != 1 || finalized != 1 {
		t.Fatalf("expected clear and finalize dispatched, got cleared=%d finalized=%d", cleared, finalized)
	}
}

func TestDispatchDropsMalformedAndUnknownMessages(t *testing.T) {
	callbacks := Callbacks{
		OnAssistantResponse: func(text string) {
			t.Fatalf("unexpected dispatch from malformed payload: %q", text)
		},
	}

	dispatch([]byte(`not json`), callbacks)
	dispatch([]byte(`{"type":"ai_response","text":42}`), callbacks)
	dispatch([]byte(`{"type":"telemetry"}`), callbacks)
}

func TestResetPostsToBackend(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer server.Close()

	client := NewClient("ws://unused", server.URL)
	if err := client.Reset(context.Background()); err != nil {
		t.Fatalf("expected reset to succeed, got %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/reset_conversation" {
		t.Fatalf("expected POST /reset_conversation, got %s %s", gotMethod, gotPath)
	}
}

func TestResetReportsBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("ws://unused", server.URL)
	err := client.Reset(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected a status error, got %v", err)
	}
}

func TestListenReturnsWhenPeerCloses(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade: %v", err)
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ai_response","text":"Hi."}`))
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}))
	defer server.Close()

	client := NewClient("ws"+strings.TrimPrefix(server.URL, "http"), server.URL)
	if err := client.Dial(context.Background()); err != nil {
		t.Fatalf("failed to dial test server: %v", err)
	}
	defer client.Close()

	var texts []string
	returned := make(chan error, 1)
	go func() {
		returned <- client.Listen(context.Background(), Callbacks{
			OnAssistantResponse: func(text string) { texts = append(texts, text) },
		})
	}()

	select {
	case err := <-returned:
		if err == nil {
			t.Fatal("expected a socket-closed error from Listen")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after the peer closed the socket")
	}

	if len(texts) != 1 || texts[0] != "Hi." {
		t.Fatalf("expected the message dispatched before close, got %v", texts)
	}
}

func TestSendUserSpeechRequiresConnection(t *testing.T) {
	client := NewClient("ws://unused", "http://unused")

	if err := client.SendUserSpeech(context.Background(), "hello", nil); err == nil {
		t.Fatal("expected an error when not connected")
	}
}

func TestUserSpeechPayloadShape(t *testing.T) {
	payload, err := json.Marshal(userSpeechMessage{
		Type: messageTypeUserSpeech,
		Text: "two espressos",
		Cart: []orders.Item{{ID: "espresso", Name: "Espresso", BasePrice: 2.50, FinalPrice: 2.50}},
	})
	if err != nil {
		t.Fatalf("failed to marshal user speech: %v", err)
	}

	for _, fragment := range []string{`"type":"user_speech"`, `"text":"two espressos"`, `"id":"espresso"`} {
		if !strings.Contains(string(payload), fragment) {
			t.Fatalf("expected payload to contain %s, got %s", fragment, payload)
		}
	}
}
