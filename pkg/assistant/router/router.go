package router

import (
	"context"
	"log"

	"research-assistant-be/pkg/assistant/intent"
	"research-assistant-be/pkg/fetch"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/store"
)

// UrlFetcher retrieves readable text for a URL
type UrlFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// MinFetchedWords is the threshold below which a fetched URL is
// considered too thin to summarize.
const MinFetchedWords = 500

// Input is one user turn
type Input struct {
	Text                 string
	AttachedDocumentText string
	Mode                 string
}

// TurnResult is the outcome of a routed turn
type TurnResult struct {
	Reply          string
	Intent         intent.Intent
	SessionMutated bool
}

// Router dispatches a turn to the handler selected by the classifier.
// Session mutations (research context, source type) are applied in
// place, and only after the handler has fully succeeded.
type Router struct {
	llmProvider llm.LLMProvider
	fetcher     UrlFetcher
	logger      *log.Logger
}

func NewRouter(llmProvider llm.LLMProvider, fetcher UrlFetcher, logger *log.Logger) *Router {
	return &Router{
		llmProvider: llmProvider,
		fetcher:     fetcher,
		logger:      logger,
	}
}

// Route classifies the turn and executes the matching handler.
// A returned error terminates the turn; the caller surfaces a marked
// failure reply and persists nothing.
func (r *Router) Route(ctx context.Context, session *store.Session, in Input) (*TurnResult, error) {
	resolved := intent.Classify(intent.Input{
		Text:                in.Text,
		Mode:                in.Mode,
		HasResearchContext:  session.ResearchContext != "",
		HasAttachedDocument: in.AttachedDocumentText != "",
	})

	r.logger.Printf("[ROUTER] Intent: %s, Query: %s", resolved, truncate(in.Text, 50))
	session.LastQuery = in.Text

	switch resolved {
	case intent.IntentGeneral:
		return r.answer(ctx, resolved, buildGeneralPrompt(in.Text, session.SummaryLength), 0.1)

	case intent.IntentMethodology:
		return r.answer(ctx, resolved, buildMethodologyPrompt(), llm.DefaultTemperature)

	case intent.IntentGroundedFollowup:
		prompt := buildGroundedPrompt(in.Text, session.ResearchContext, session.SummaryLength)
		return r.answer(ctx, resolved, prompt, llm.DefaultTemperature)

	case intent.IntentDocumentSummarize:
		prompt := buildDocumentSummaryPrompt(in.AttachedDocumentText, session.SummaryLength)
		return r.summarize(ctx, session, resolved, prompt, store.SourceDocument)

	case intent.IntentURLSummarize:
		return r.summarizeURL(ctx, session, in.Text)

	case intent.IntentTopicSummarize:
		prompt := buildTopicSummaryPrompt(in.Text, session.SummaryLength)
		return r.summarize(ctx, session, resolved, prompt, store.SourceTopic)

	default:
		return r.answer(ctx, intent.IntentFallback, buildFallbackPrompt(in.Text), 0.1)
	}
}

// answer runs a read-only handler: one completion call, no mutation
func (r *Router) answer(ctx context.Context, resolved intent.Intent, prompt string, temperature float64) (*TurnResult, error) {
	reply, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(temperature))
	if err != nil {
		r.logger.Printf("[ERROR] %s handler failed: %v", resolved, err)
		return nil, err
	}
	return &TurnResult{Reply: reply, Intent: resolved}, nil
}

// summarize runs a summarization handler and, on success, overwrites
// the session's grounding context.
func (r *Router) summarize(ctx context.Context, session *store.Session, resolved intent.Intent, prompt, sourceType string) (*TurnResult, error) {
	summary, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(llm.DefaultTemperature))
	if err != nil {
		r.logger.Printf("[ERROR] %s handler failed: %v", resolved, err)
		return nil, err
	}

	session.ResearchContext = summary
	session.SourceType = sourceType
	r.logger.Printf("[ROUTER] Research context updated (source: %s, %d chars)", sourceType, len(summary))

	return &TurnResult{Reply: summary, Intent: resolved, SessionMutated: true}, nil
}

// summarizeURL fetches the URL first. Thin pages get a fixed advisory
// reply; fetch and backend failures become user-visible marked replies
// instead of terminating the turn.
func (r *Router) summarizeURL(ctx context.Context, session *store.Session, url string) (*TurnResult, error) {
	text, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		r.logger.Printf("[ERROR] URL fetch failed: %v", err)
		return &TurnResult{
			Reply:  FailureMarker + "Failed to fetch the URL: " + err.Error(),
			Intent: intent.IntentURLSummarize,
		}, nil
	}

	if fetch.WordCount(text) < MinFetchedWords {
		r.logger.Printf("[ROUTER] Fetched content too short (%d words), advising upload", fetch.WordCount(text))
		return &TurnResult{Reply: AdvisoryReply, Intent: intent.IntentURLSummarize}, nil
	}

	prompt := buildDocumentSummaryPrompt(text, session.SummaryLength)
	result, err := r.summarize(ctx, session, intent.IntentURLSummarize, prompt, store.SourceURL)
	if err != nil {
		return &TurnResult{
			Reply:  FailureMarker + "Failed to summarize the URL: " + err.Error(),
			Intent: intent.IntentURLSummarize,
		}, nil
	}
	return result, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
