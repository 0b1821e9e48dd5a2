package intent

import "testing"

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Intent
	}{
		{
			name: "general mode bypasses everything",
			in: Input{
				Text:                "https://example.com/paper",
				Mode:                "General Assistant",
				HasResearchContext:  true,
				HasAttachedDocument: true,
			},
			want: IntentGeneral,
		},
		{
			name: "methodology beats grounded context",
			in: Input{
				Text:               "how did you generate this summary?",
				HasResearchContext: true,
			},
			want: IntentMethodology,
		},
		{
			name: "grounded context beats attached document",
			in: Input{
				Text:                "tell me more about the results",
				HasResearchContext:  true,
				HasAttachedDocument: true,
			},
			want: IntentGroundedFollowup,
		},
		{
			name: "grounded context beats url",
			in: Input{
				Text:               "https://example.com/paper.pdf",
				HasResearchContext: true,
			},
			want: IntentGroundedFollowup,
		},
		{
			name: "grounded context beats topic",
			in: Input{
				Text:               "impact of caffeine on sleep",
				HasResearchContext: true,
			},
			want: IntentGroundedFollowup,
		},
		{
			name: "attached document beats url",
			in: Input{
				Text:                "https://example.com/paper.pdf",
				HasAttachedDocument: true,
			},
			want: IntentDocumentSummarize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"http url", "http://example.com/article", IntentURLSummarize},
		{"https url", "https://example.com/paper.pdf", IntentURLSummarize},
		{"url with leading whitespace", "  https://example.com/paper.pdf  ", IntentURLSummarize},
		// The scheme check is case-sensitive on purpose
		{"uppercase scheme does not match", "HTTPS://example.com/paper.pdf", IntentFallback},
		{"ftp scheme does not match", "ftp://example.com/file", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(Input{Text: tt.text}); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyTopicHeuristic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"single alphabetic token", "NLP", IntentTopicSummarize},
		{"two alphabetic tokens", "quantum computing", IntentTopicSummarize},
		{"keyword match in long phrase", "impact of caffeine on sleep", IntentTopicSummarize},
		{"keyword analysis", "a long sentence about sentiment analysis in production", IntentTopicSummarize},
		{"plain question falls through", "what time is it", IntentFallback},
		{"two tokens with digits fall through", "gpt4 benchmark1", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(Input{Text: tt.text}); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyMethodology(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"subject and action", "what method did you use?", IntentMethodology},
		{"this summary phrasing", "how was this summary generated?", IntentMethodology},
		{"subject without action", "can you help me?", IntentFallback},
		{"action without subject", "describe the scientific process", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(Input{Text: tt.text}); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
