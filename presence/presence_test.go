package presence

import (
	"encoding/json"
	"testing"
)

func TestParseTrigger(t *testing.T) {
	on, err := parseTrigger([]byte(`{"Trigger":"ON"}`))
	if err != nil || !on {
		t.Fatalf("expected ON trigger, got on=%v err=%v", on, err)
	}

	on, err = parseTrigger([]byte(`{"Trigger":"OFF"}`))
	if err != nil || on {
		t.Fatalf("expected OFF trigger, got on=%v err=%v", on, err)
	}

	// Trigger casing from the sensor firmware is not guaranteed.
	on, err = parseTrigger([]byte(`{"Trigger":"on"}`))
	if err != nil || !on {
		t.Fatalf("expected lowercase trigger accepted, got on=%v err=%v", on, err)
	}
}

func TestParseTriggerRejectsGarbage(t *testing.T) {
	if _, err := parseTrigger([]byte(`not json`)); err == nil {
		t.Fatal("expected malformed payload to be rejected")
	}
	if _, err := parseTrigger([]byte(`{"Trigger":"MAYBE"}`)); err == nil {
		t.Fatal("expected unknown trigger to be rejected")
	}
	if _, err := parseTrigger([]byte(`{}`)); err == nil {
		t.Fatal("expected missing trigger to be rejected")
	}
}

func TestPaymentMessageShape(t *testing.T) {
	payload, err := json.Marshal(paymentMessage{OrderCompleted: true, PaymentAmount: "6.50"})
	if err != nil {
		t.Fatalf("failed to marshal payment message: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("failed to unmarshal payment message: %v", err)
	}
	if decoded["ORDER_COMPLETED"] != true {
		t.Fatalf("expected ORDER_COMPLETED true, got %v", decoded)
	}
	if decoded["PAYMENT_AMOUNT"] != "6.50" {
		t.Fatalf("expected PAYMENT_AMOUNT 6.50, got %v", decoded)
	}
}
