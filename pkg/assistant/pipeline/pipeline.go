package pipeline

import (
	"context"
	"log"

	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/websearch"
)

// Executor runs the linear Plan → Search → Write state machine. No
// branching, no retries, no parallel stage execution.
type Executor struct {
	planner  *Planner
	searcher *Searcher
	writer   *Writer
	logger   *log.Logger
}

func NewExecutor(llmProvider llm.LLMProvider, searchProvider websearch.SearchProvider, maxResults int, logger *log.Logger) *Executor {
	return &Executor{
		planner:  NewPlanner(llmProvider, logger),
		searcher: NewSearcher(searchProvider, maxResults, logger),
		writer:   NewWriter(llmProvider, logger),
		logger:   logger,
	}
}

// Run executes a full research run for a topic. Any stage failure
// aborts the run; no partial state is returned.
func (e *Executor) Run(ctx context.Context, topic string) (*State, error) {
	e.logger.Printf("[PIPELINE] Starting run for topic: %s", truncate(topic, 50))

	state := &State{Topic: topic}

	plan, err := e.planner.Plan(ctx, topic)
	if err != nil {
		return nil, err
	}
	state.Plan = plan

	searchResults, err := e.searcher.Search(ctx, plan.SubQuestions)
	if err != nil {
		return nil, err
	}
	state.SearchResults = searchResults

	summary, err := e.writer.Write(ctx, topic, plan, searchResults)
	if err != nil {
		return nil, err
	}
	state.FinalSummary = summary

	e.logger.Printf("[PIPELINE] Run complete")
	return state, nil
}
