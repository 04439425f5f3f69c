package amqp

import (
	"encoding/json"
	"time"
)

// LedgerChangeMessage announces that a mutation committed. It carries
// only the operation and the affected record count; the consumer reads
// the authoritative ledger from its backing store.
type LedgerChangeMessage struct {
	Operation string    `json:"operation"` // added, removed, replaced
	Records   int       `json:"records"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangeMessage creates a change message stamped with the
// current time.
func NewLedgerChangeMessage(operation string, records int) *LedgerChangeMessage {
	return &LedgerChangeMessage{
		Operation: operation,
		Records:   records,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangeMessageFromJSON decodes a message from JSON bytes.
func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
