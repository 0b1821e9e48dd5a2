package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId        uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat                 string    `json:"chat" validate:"required"`
	AttachedDocumentText string    `json:"attached_document_text,omitempty"`
	Mode                 string    `json:"mode,omitempty" validate:"omitempty,oneof='Research Assistant' 'General Assistant'"`
	SummaryLength        string    `json:"summary_length,omitempty" validate:"omitempty,oneof=Short Long"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle string                `json:"title"`
	Sent             *SendChatResponseChat `json:"sent"`
	Reply            *SendChatResponseChat `json:"reply"`
	Intent           string                `json:"intent"`
	SourceType       string                `json:"source_type,omitempty"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
}

type ExtractResponse struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}
