package dto

import (
	"time"

	"github.com/google/uuid"
)

type RunResearchRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type ResearchRunResponse struct {
	Id            uuid.UUID         `json:"id"`
	Topic         string            `json:"topic"`
	SubQuestions  []string          `json:"sub_questions"`
	OutputFormat  string            `json:"output_format"`
	SearchResults map[string]string `json:"search_results,omitempty"`
	FinalSummary  string            `json:"final_summary"`
	CreatedAt     time.Time         `json:"created_at"`
}
