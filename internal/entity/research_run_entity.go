package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResearchRun is a persisted multi-agent pipeline run
type ResearchRun struct {
	Id            uuid.UUID
	Topic         string
	SubQuestions  []string
	OutputFormat  string
	SearchResults map[string]string
	FinalSummary  string
	CreatedAt     time.Time
}
