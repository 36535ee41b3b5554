package kafka

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type EventType string

const (
	EventBorrow      EventType = "BORROW"
	EventReturn      EventType = "RETURN"
	EventForceReturn EventType = "FORCE_RETURN"
)

// LoanEvent describes a committed loan lifecycle operation.
type LoanEvent struct {
	Timestamp      time.Time  `json:"timestamp"`
	EventType      EventType  `json:"eventType"`
	ActivityUid    string     `json:"activityUid"`
	UserUid        string     `json:"userUid"`
	BookUid        string     `json:"bookUid"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Fine           float64    `json:"fine"`
	ComputedFine   float64    `json:"computedFine"`
	FineOverridden bool       `json:"fineOverridden"`
	Notes          string     `json:"notes,omitempty"`
}

func (e LoanEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeLoanEvent rejects payloads without an event type.
func DecodeLoanEvent(data []byte) (LoanEvent, error) {
	var ev LoanEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return LoanEvent{}, err
	}
	if ev.EventType == "" {
		return LoanEvent{}, errors.New("loan event without type")
	}
	return ev, nil
}
