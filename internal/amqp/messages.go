package amqp

import (
	"encoding/json"
	"time"
)

// EstimateSyncMessage asks the worker to mirror a saved snapshot. It carries
// only the version; the worker reads the snapshot itself from storage.
type EstimateSyncMessage struct {
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEstimateSyncMessage(version int64) *EstimateSyncMessage {
	return &EstimateSyncMessage{
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *EstimateSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EstimateSyncMessageFromJSON(data []byte) (*EstimateSyncMessage, error) {
	var msg EstimateSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
