package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"research-assistant-be/internal/config"
	"research-assistant-be/pkg/assistant/pipeline"
	"research-assistant-be/pkg/llm/factory"
	"research-assistant-be/pkg/websearch/tavily"

	"github.com/fatih/color"
)

// Interactive runner for the research pipeline. Talks to the providers
// directly, no server required.
func main() {
	cfg := config.Load()

	llmBaseURL := cfg.Ai.OpenRouterURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Keys.OpenRouter,
		llmBaseURL,
		cfg.Ai.LLMModel,
	)
	if err != nil {
		color.Red("Failed to initialize LLM provider: %v", err)
		os.Exit(1)
	}

	searchProvider := tavily.NewTavilyProvider(cfg.Keys.Tavily, "")
	executor := pipeline.NewExecutor(
		llmProvider,
		searchProvider,
		cfg.Ai.SearchMaxResults,
		log.New(os.Stderr, "", log.LstdFlags),
	)

	color.Cyan("🔎 Research Pipeline (%s / %s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	color.Cyan("Type a research topic, or 'exit' to quit.\n")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		color.Yellow("Topic> ")
		if !scanner.Scan() {
			break
		}
		topic := strings.TrimSpace(scanner.Text())
		if topic == "" {
			continue
		}
		if topic == "exit" || topic == "quit" {
			break
		}

		runTopic(executor, topic)
	}
}

func runTopic(executor *pipeline.Executor, topic string) {
	state, err := executor.Run(context.Background(), topic)
	if err != nil {
		var planErr *pipeline.PlanValidationError
		if errors.As(err, &planErr) {
			color.Red("Planner produced an invalid plan: %s", planErr.Reason)
			return
		}
		color.Red("Run failed: %v", err)
		return
	}

	color.Green("\nPlan (%s)", state.Plan.OutputFormat)
	for i, q := range state.Plan.SubQuestions {
		fmt.Printf("  %d. %s\n", i+1, q)
	}

	color.Green("\nFindings")
	for i, q := range state.Plan.SubQuestions {
		snippet := state.SearchResults[q]
		if len(snippet) > 120 {
			snippet = snippet[:120] + "..."
		}
		fmt.Printf("  %d. %s\n", i+1, snippet)
	}

	color.Green("\nFinal Summary\n")
	fmt.Println(state.FinalSummary)
	fmt.Println()
}
