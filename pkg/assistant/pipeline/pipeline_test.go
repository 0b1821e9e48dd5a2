package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/websearch"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) > 0 {
		f.prompts = append(f.prompts, history[len(history)-1].Content)
	}
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeSearch struct {
	results map[string][]websearch.Result
	err     error
	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query string, maxResults int) ([]websearch.Result, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestPlannerExtractsEmbeddedJSON(t *testing.T) {
	provider := &fakeLLM{
		response: "Sure, here is the plan:\n" +
			`{"sub_questions": ["What is X?", "Why X?", "How X?"], "output_format": "bullet list"}` +
			"\nLet me know if you need anything else.",
	}
	planner := NewPlanner(provider, testLogger())

	plan, err := planner.Plan(context.Background(), "X")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.SubQuestions) != 3 {
		t.Fatalf("got %d sub-questions, want 3", len(plan.SubQuestions))
	}
	if plan.SubQuestions[0] != "What is X?" {
		t.Errorf("sub_questions[0] = %q", plan.SubQuestions[0])
	}
	if plan.OutputFormat != "bullet list" {
		t.Errorf("output_format = %q", plan.OutputFormat)
	}
}

func TestPlannerFailsWithoutJSON(t *testing.T) {
	provider := &fakeLLM{response: "I cannot produce a plan right now."}
	planner := NewPlanner(provider, testLogger())

	_, err := planner.Plan(context.Background(), "X")
	var planErr *PlanValidationError
	if !errors.As(err, &planErr) {
		t.Fatalf("Plan() error = %v, want *PlanValidationError", err)
	}
}

func TestPlannerRejectsWrongQuestionCount(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"two questions", `{"sub_questions": ["a", "b"], "output_format": "text"}`},
		{"four questions", `{"sub_questions": ["a", "b", "c", "d"], "output_format": "text"}`},
		{"missing output format", `{"sub_questions": ["a", "b", "c"]}`},
		{"malformed json", `{"sub_questions": ["a", "b", "c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := NewPlanner(&fakeLLM{response: tt.response}, testLogger())
			_, err := planner.Plan(context.Background(), "X")
			var planErr *PlanValidationError
			if !errors.As(err, &planErr) {
				t.Fatalf("Plan() error = %v, want *PlanValidationError", err)
			}
		})
	}
}

func TestSearcherJoinsSnippetsAndRecordsSentinel(t *testing.T) {
	questions := []string{"q1", "q2", "q3"}
	provider := &fakeSearch{
		results: map[string][]websearch.Result{
			"q1": {{Content: "alpha"}, {Content: "beta"}},
			"q2": {},
			"q3": {{Content: "gamma"}},
		},
	}
	searcher := NewSearcher(provider, 0, testLogger())

	results, err := searcher.Search(context.Background(), questions)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if results["q1"] != "alpha beta" {
		t.Errorf("q1 = %q, want %q", results["q1"], "alpha beta")
	}
	if results["q2"] != NoResultsSentinel {
		t.Errorf("q2 = %q, want sentinel", results["q2"])
	}
	if results["q3"] != "gamma" {
		t.Errorf("q3 = %q, want %q", results["q3"], "gamma")
	}

	// Serial, in plan order
	for i, q := range questions {
		if provider.queries[i] != q {
			t.Errorf("query %d = %q, want %q", i, provider.queries[i], q)
		}
	}
}

func TestSearcherPropagatesProviderFailure(t *testing.T) {
	provider := &fakeSearch{err: &websearch.ServiceError{Provider: "tavily", Message: "down"}}
	searcher := NewSearcher(provider, 0, testLogger())

	_, err := searcher.Search(context.Background(), []string{"q1", "q2", "q3"})
	var svcErr *websearch.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Search() error = %v, want *websearch.ServiceError", err)
	}
}

func TestWriterSerializesResultsInPlanOrder(t *testing.T) {
	provider := &fakeLLM{response: "final summary"}
	writer := NewWriter(provider, testLogger())

	plan := &Plan{
		SubQuestions: []string{"zz last alphabetically", "aa first alphabetically", "mm middle"},
		OutputFormat: "prose",
	}
	results := map[string]string{
		"zz last alphabetically":  "snippet one",
		"aa first alphabetically": "snippet two",
		"mm middle":               "snippet three",
	}

	summary, err := writer.Write(context.Background(), "topic", plan, results)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if summary != "final summary" {
		t.Errorf("summary = %q", summary)
	}

	prompt := provider.prompts[0]
	first := strings.Index(prompt, "zz last alphabetically")
	second := strings.Index(prompt, "aa first alphabetically")
	third := strings.Index(prompt, "mm middle")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("prompt missing sub-questions:\n%s", prompt)
	}
	if !(first < second && second < third) {
		t.Errorf("sub-questions not serialized in plan order: %d, %d, %d", first, second, third)
	}
}

func TestExecutorAbortsOnPlanFailure(t *testing.T) {
	provider := &fakeLLM{response: "no json here"}
	search := &fakeSearch{}
	executor := NewExecutor(provider, search, 0, testLogger())

	_, err := executor.Run(context.Background(), "topic")
	var planErr *PlanValidationError
	if !errors.As(err, &planErr) {
		t.Fatalf("Run() error = %v, want *PlanValidationError", err)
	}
	if len(search.queries) != 0 {
		t.Errorf("search ran %d queries after plan failure, want 0", len(search.queries))
	}
}
