package amqp

import (
	"encoding/json"
	"time"
)

// ChangeMessage notifies consumers that the ledger mutated. It carries only
// the change kind and transaction id; the worker reloads the full collection
// from storage, matching the store's full-snapshot persistence model.
type ChangeMessage struct {
	Kind          string    `json:"kind"`
	TransactionID string    `json:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewChangeMessage(kind, transactionID string) *ChangeMessage {
	return &ChangeMessage{
		Kind:          kind,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
