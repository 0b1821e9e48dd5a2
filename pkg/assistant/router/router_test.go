package router

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"research-assistant-be/pkg/assistant/intent"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/store"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeFetcher struct {
	text string
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func longText(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}

func TestRouteGroundedFollowupIsReadOnly(t *testing.T) {
	provider := &fakeLLM{response: RefusalSentence}
	r := NewRouter(provider, &fakeFetcher{}, testLogger())

	session := &store.Session{
		ID:              "s1",
		ResearchContext: "The study examined sleep quality in adults.",
		SourceType:      store.SourceTopic,
	}

	result, err := r.Route(context.Background(), session, Input{Text: "what were the funding sources?"})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if result.Intent != intent.IntentGroundedFollowup {
		t.Errorf("intent = %v, want grounded followup", result.Intent)
	}
	if result.Reply != RefusalSentence {
		t.Errorf("reply = %q", result.Reply)
	}
	if result.SessionMutated {
		t.Error("grounded followup must not mutate the session")
	}
	if session.ResearchContext != "The study examined sleep quality in adults." {
		t.Error("research context changed on a read-only handler")
	}

	prompt := provider.prompts[0]
	if !strings.Contains(prompt, RefusalSentence) {
		t.Error("grounded prompt missing refusal instruction")
	}
	if !strings.Contains(prompt, session.ResearchContext) {
		t.Error("grounded prompt missing research context")
	}
}

func TestRouteDocumentSummarizeOverwritesContext(t *testing.T) {
	provider := &fakeLLM{response: "A fresh summary.\n\nReferences not available"}
	r := NewRouter(provider, &fakeFetcher{}, testLogger())

	session := &store.Session{
		ID:              "s1",
		ResearchContext: "",
		SummaryLength:   store.LengthLong,
	}

	result, err := r.Route(context.Background(), session, Input{
		Text:                 "please summarize this",
		AttachedDocumentText: "full document text",
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if result.Intent != intent.IntentDocumentSummarize {
		t.Errorf("intent = %v", result.Intent)
	}
	if !result.SessionMutated {
		t.Error("summarization must mutate the session")
	}
	if session.ResearchContext != provider.response {
		t.Error("research context not overwritten with the summary")
	}
	if session.SourceType != store.SourceDocument {
		t.Errorf("source type = %q, want document", session.SourceType)
	}
	if !strings.Contains(provider.prompts[0], "600-800 words") {
		t.Error("long summary budget not applied")
	}
}

func TestRouteSourceTypeOverwrittenNotAppended(t *testing.T) {
	provider := &fakeLLM{response: "topic summary"}
	r := NewRouter(provider, &fakeFetcher{}, testLogger())

	session := &store.Session{ID: "s1"}

	// First summarization grounds on a document
	if _, err := r.Route(context.Background(), session, Input{
		Text:                 "summarize",
		AttachedDocumentText: "doc text",
	}); err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if session.SourceType != store.SourceDocument {
		t.Fatalf("source type = %q, want document", session.SourceType)
	}

	// Simulate new chat, then a topic summarization
	session.ResearchContext = ""
	session.SourceType = ""

	if _, err := r.Route(context.Background(), session, Input{Text: "NLP"}); err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if session.SourceType != store.SourceTopic {
		t.Errorf("source type = %q, want topic", session.SourceType)
	}
}

func TestRouteURLTooShortReturnsAdvisory(t *testing.T) {
	provider := &fakeLLM{response: "should not be called"}
	fetcher := &fakeFetcher{text: longText(499)}
	r := NewRouter(provider, fetcher, testLogger())

	session := &store.Session{ID: "s1"}

	result, err := r.Route(context.Background(), session, Input{Text: "https://example.com/paper"})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if result.Reply != AdvisoryReply {
		t.Errorf("reply = %q, want advisory", result.Reply)
	}
	if session.ResearchContext != "" || session.SourceType != "" {
		t.Error("thin URL content must not mutate the session")
	}
	if len(provider.prompts) != 0 {
		t.Error("no completion call expected for thin URL content")
	}
}

func TestRouteURLSummarizesLongContent(t *testing.T) {
	provider := &fakeLLM{response: "url summary"}
	fetcher := &fakeFetcher{text: longText(500)}
	r := NewRouter(provider, fetcher, testLogger())

	session := &store.Session{ID: "s1"}

	result, err := r.Route(context.Background(), session, Input{Text: "https://example.com/article"})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if result.Reply != "url summary" {
		t.Errorf("reply = %q", result.Reply)
	}
	if session.SourceType != store.SourceURL {
		t.Errorf("source type = %q, want url", session.SourceType)
	}
}

func TestRouteURLFetchFailureBecomesMarkedReply(t *testing.T) {
	provider := &fakeLLM{response: "unused"}
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	r := NewRouter(provider, fetcher, testLogger())

	session := &store.Session{ID: "s1"}

	result, err := r.Route(context.Background(), session, Input{Text: "https://example.com/article"})
	if err != nil {
		t.Fatalf("fetch failure must not terminate the turn, got %v", err)
	}
	if !strings.HasPrefix(result.Reply, FailureMarker) {
		t.Errorf("reply %q not prefixed with failure marker", result.Reply)
	}
	if session.ResearchContext != "" {
		t.Error("session mutated on fetch failure")
	}
}

func TestRouteBackendFailureTerminatesTurn(t *testing.T) {
	provider := &fakeLLM{err: &llm.ServiceError{Provider: "openrouter", Message: "status 500"}}
	r := NewRouter(provider, &fakeFetcher{}, testLogger())

	session := &store.Session{ID: "s1"}

	_, err := r.Route(context.Background(), session, Input{
		Text:                 "summarize",
		AttachedDocumentText: "doc text",
	})
	var svcErr *llm.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Route() error = %v, want *llm.ServiceError", err)
	}
	if session.ResearchContext != "" || session.SourceType != "" {
		t.Error("session mutated on a fatal backend failure")
	}
}

func TestRouteGeneralModeBypassesGrounding(t *testing.T) {
	provider := &fakeLLM{response: "a general answer"}
	r := NewRouter(provider, &fakeFetcher{}, testLogger())

	session := &store.Session{
		ID:              "s1",
		ResearchContext: "existing context",
	}

	result, err := r.Route(context.Background(), session, Input{
		Text: "https://example.com/paper",
		Mode: store.ModeGeneral,
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if result.Intent != intent.IntentGeneral {
		t.Errorf("intent = %v, want general", result.Intent)
	}
	if strings.Contains(provider.prompts[0], "existing context") {
		t.Error("general mode must not ground on the research context")
	}
}
