package amqp

import (
	"testing"
	"time"
)

func TestLedgerChangeMessageJSON(t *testing.T) {
	msg := NewLedgerChangeMessage("replaced", 42)
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp should be stamped")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := LedgerChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Operation != "replaced" || back.Records != 42 {
		t.Fatalf("unexpected message %+v", back)
	}
	if !back.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Fatalf("timestamp mismatch: %v != %v", back.Timestamp, msg.Timestamp)
	}
}

func TestLedgerChangeMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerChangeMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
