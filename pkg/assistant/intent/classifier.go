package intent

import (
	"regexp"
	"strings"
	"unicode"
)

// Intent is the resolved user intention for a single turn
type Intent string

const (
	IntentGeneral           Intent = "GENERAL"
	IntentMethodology       Intent = "METHODOLOGY"
	IntentGroundedFollowup  Intent = "GROUNDED_FOLLOWUP"
	IntentDocumentSummarize Intent = "DOCUMENT_SUMMARIZE"
	IntentURLSummarize      Intent = "URL_SUMMARIZE"
	IntentTopicSummarize    Intent = "TOPIC_SUMMARIZE"
	IntentFallback          Intent = "FALLBACK"
)

// Input is everything classification may look at. Classification is
// pure: it never touches the session or performs IO.
type Input struct {
	Text                string
	Mode                string // "General Assistant" disables routing
	HasResearchContext  bool
	HasAttachedDocument bool
}

// The scheme match is deliberately case-sensitive ("HTTPS://..." does
// not route to URL summarization).
var urlPattern = regexp.MustCompile(`^https?://`)

var methodologySubjects = []string{"you", "your", "this summary", "this response"}

var methodologyActions = []string{
	"summary", "summarized", "generate", "generated",
	"method", "methodology", "process", "approach",
}

var topicKeywords = []string{
	"impact", "effect", "analysis", "study", "survey",
	"review", "method", "approach", "framework", "summarize",
}

type rule struct {
	name    string
	intent  Intent
	matches func(in Input) bool
}

// Rules are evaluated top to bottom; the first match wins.
var rules = []rule{
	{
		name:    "general-mode",
		intent:  IntentGeneral,
		matches: func(in Input) bool { return in.Mode == "General Assistant" },
	},
	{
		name:    "methodology",
		intent:  IntentMethodology,
		matches: func(in Input) bool { return isMethodologyQuestion(in.Text) },
	},
	{
		name:    "grounded-followup",
		intent:  IntentGroundedFollowup,
		matches: func(in Input) bool { return in.HasResearchContext },
	},
	{
		name:    "document",
		intent:  IntentDocumentSummarize,
		matches: func(in Input) bool { return in.HasAttachedDocument },
	},
	{
		name:    "url",
		intent:  IntentURLSummarize,
		matches: func(in Input) bool { return urlPattern.MatchString(strings.TrimSpace(in.Text)) },
	},
	{
		name:    "topic",
		intent:  IntentTopicSummarize,
		matches: func(in Input) bool { return looksLikeTopic(in.Text) },
	},
}

// Classify resolves the intent for a turn by walking the rule table
func Classify(in Input) Intent {
	for _, r := range rules {
		if r.matches(in) {
			return r.intent
		}
	}
	return IntentFallback
}

// isMethodologyQuestion detects questions about how the assistant
// produced its output, e.g. "how did you generate this summary?"
func isMethodologyQuestion(text string) bool {
	lower := strings.ToLower(text)

	subject := false
	for _, s := range methodologySubjects {
		if strings.Contains(lower, s) {
			subject = true
			break
		}
	}
	if !subject {
		return false
	}

	for _, a := range methodologyActions {
		if strings.Contains(lower, a) {
			return true
		}
	}
	return false
}

// looksLikeTopic matches short noun-phrase inputs ("NLP", "quantum
// computing") and research phrasings ("impact of caffeine on sleep")
func looksLikeTopic(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	tokens := strings.Fields(lower)
	if len(tokens) > 0 && len(tokens) <= 2 && allAlphabetic(tokens) {
		return true
	}

	for _, kw := range topicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func allAlphabetic(tokens []string) bool {
	for _, tok := range tokens {
		for _, r := range tok {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}
