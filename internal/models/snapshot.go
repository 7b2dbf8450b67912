package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is the full set of tracked symbols' quotes as of one refresh
// cycle. It is replaced wholesale at the end of each cycle and is the unit
// of persistence.
type Snapshot struct {
	Quotes      []Quote    `json:"quotes"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// FindQuote returns the quote for symbol, or false if the snapshot does not
// contain one.
func (s Snapshot) FindQuote(symbol string) (Quote, bool) {
	for _, q := range s.Quotes {
		if q.Symbol == symbol {
			return q, true
		}
	}
	return Quote{}, false
}

// EncodeSnapshot serializes a snapshot for storage. Absent fields are
// omitted so that decoding reproduces them as absent.
func EncodeSnapshot(s Snapshot) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot parses a snapshot previously produced by EncodeSnapshot.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s, nil
}
