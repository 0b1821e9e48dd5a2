package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"research-assistant-be/pkg/llm"
)

// subQuestionCount is assumed positionally by the Search and Write
// stages; any other count aborts the run.
const subQuestionCount = 3

// Planner decomposes a topic into sub-questions and an output format
type Planner struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewPlanner(llmProvider llm.LLMProvider, logger *log.Logger) *Planner {
	return &Planner{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Plan asks for a strictly-JSON decomposition and parses it. Any
// extraction or validation failure is a *PlanValidationError.
func (p *Planner) Plan(ctx context.Context, topic string) (*Plan, error) {
	prompt := p.buildPrompt(topic)

	response, err := p.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, err
	}

	plan, err := p.parsePlan(response)
	if err != nil {
		p.logger.Printf("[PLAN] Validation failed: %v", err)
		return nil, err
	}

	p.logger.Printf("[PLAN] %d sub-questions, format: %s", len(plan.SubQuestions), truncate(plan.OutputFormat, 50))
	return plan, nil
}

func (p *Planner) buildPrompt(topic string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString(fmt.Sprintf("You are a research planner. Break the topic %q into exactly 3 sub-questions\n", topic))
	prompt.WriteString("that together cover it, and describe the shape the final summary should take.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"sub_questions\": [\"...\", \"...\", \"...\"],\n")
	prompt.WriteString("  \"output_format\": \"description of the expected summary shape\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func (p *Planner) parsePlan(response string) (*Plan, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, &PlanValidationError{Reason: "no JSON object found in response"}
	}

	var plan Plan
	if err := json.Unmarshal([]byte(jsonContent), &plan); err != nil {
		return nil, &PlanValidationError{Reason: "JSON unmarshal failed", Err: err}
	}

	if len(plan.SubQuestions) != subQuestionCount {
		return nil, &PlanValidationError{
			Reason: fmt.Sprintf("expected %d sub-questions, got %d", subQuestionCount, len(plan.SubQuestions)),
		}
	}
	if plan.OutputFormat == "" {
		return nil, &PlanValidationError{Reason: "missing output_format"}
	}

	return &plan, nil
}

// extractJSON captures the first '{' through the last '}' greedily
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
