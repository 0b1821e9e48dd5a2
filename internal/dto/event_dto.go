package dto

import "time"

// EventEnvelope is the payload shape carried on the internal event bus.
type EventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
