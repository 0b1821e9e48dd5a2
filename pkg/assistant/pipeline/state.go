package pipeline

// Plan is the decomposition produced by the Plan stage. Immutable
// once parsed.
type Plan struct {
	SubQuestions []string `json:"sub_questions"`
	OutputFormat string   `json:"output_format"`
}

// State is the record threaded through Plan → Search → Write. Each
// stage appends its own fields; nothing is removed or overwritten
// within a run.
type State struct {
	Topic         string
	Plan          *Plan
	SearchResults map[string]string // keyed by sub-question, order follows the plan
	FinalSummary  string
}
