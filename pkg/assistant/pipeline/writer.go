package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"research-assistant-be/pkg/llm"
)

// Writer synthesizes the final summary from the plan and the gathered
// search results.
type Writer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewWriter(llmProvider llm.LLMProvider, logger *log.Logger) *Writer {
	return &Writer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Write makes a single completion call over the synthesis prompt. The
// returned text is the terminal summary for the run.
func (w *Writer) Write(ctx context.Context, topic string, plan *Plan, searchResults map[string]string) (string, error) {
	prompt := w.buildPrompt(topic, plan, searchResults)

	summary, err := w.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		w.logger.Printf("[ERROR] Write stage failed: %v", err)
		return "", err
	}

	w.logger.Printf("[WRITE] Summary generated (%d chars)", len(summary))
	return summary, nil
}

// buildPrompt serializes the results deterministically: key order is
// the plan's sub-question order, never map iteration order.
func (w *Writer) buildPrompt(topic string, plan *Plan, searchResults map[string]string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString(fmt.Sprintf("You are a research writer. Synthesize a summary on the topic: %s\n", topic))
	prompt.WriteString(fmt.Sprintf("Expected output format: %s\n", plan.OutputFormat))
	prompt.WriteString("Base the summary strictly on the research findings below.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<research_findings>\n")
	for i, question := range plan.SubQuestions {
		prompt.WriteString(fmt.Sprintf("--- Sub-question %d: %s ---\n", i+1, question))
		prompt.WriteString(searchResults[question])
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("</research_findings>\n\n")

	prompt.WriteString("Summary:")
	return prompt.String()
}
