package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ResearchRun struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Topic         string         `gorm:"type:text;not null"`
	SubQuestions  datatypes.JSON `gorm:"type:jsonb;not null"`
	OutputFormat  string         `gorm:"type:text;not null"`
	SearchResults datatypes.JSON `gorm:"type:jsonb;not null"`
	FinalSummary  string         `gorm:"type:text;not null"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (ResearchRun) TableName() string {
	return "research_runs"
}
