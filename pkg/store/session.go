package store

// Session represents the active conversation state in memory.
// The research context is the grounding material produced by the last
// successful summarization; follow-up answers are restricted to it.
type Session struct {
	ID            string `json:"id"` // ChatSessionID
	Mode          string `json:"mode"` // "Research Assistant" | "General Assistant"
	SummaryLength string `json:"summary_length"` // "Short" | "Long"

	// Grounding material from the last successful summarization
	ResearchContext string `json:"research_context"`
	SourceType      string `json:"source_type"` // "" | "document" | "url" | "topic"

	// Metadata for last interaction
	LastQuery string `json:"last_query"`
}

const (
	// Assistant modes
	ModeResearch = "Research Assistant"
	ModeGeneral  = "General Assistant"

	// Summary lengths
	LengthShort = "Short"
	LengthLong  = "Long"

	// Source types
	SourceDocument = "document"
	SourceURL      = "url"
	SourceTopic    = "topic"
)
