package pipeline

import (
	"context"
	"log"
	"strings"

	"research-assistant-be/pkg/websearch"
)

// NoResultsSentinel is recorded for a sub-question whose search
// returned zero results. Not an error.
const NoResultsSentinel = "No relevant results found."

const defaultResultsPerQuestion = 3

// Searcher gathers snippets for each sub-question, one query at a
// time, in plan order.
type Searcher struct {
	searchProvider websearch.SearchProvider
	maxResults     int
	logger         *log.Logger
}

func NewSearcher(searchProvider websearch.SearchProvider, maxResults int, logger *log.Logger) *Searcher {
	if maxResults <= 0 {
		maxResults = defaultResultsPerQuestion
	}
	return &Searcher{
		searchProvider: searchProvider,
		maxResults:     maxResults,
		logger:         logger,
	}
}

// Search runs one query per sub-question serially. A provider failure
// is fatal and propagates; an empty result list is recorded with the
// sentinel and the stage continues.
func (s *Searcher) Search(ctx context.Context, subQuestions []string) (map[string]string, error) {
	results := make(map[string]string, len(subQuestions))

	for i, question := range subQuestions {
		s.logger.Printf("[SEARCH] %d/%d: %s", i+1, len(subQuestions), truncate(question, 60))

		hits, err := s.searchProvider.Search(ctx, question, s.maxResults)
		if err != nil {
			s.logger.Printf("[ERROR] Search failed for %q: %v", question, err)
			return nil, err
		}

		if len(hits) == 0 {
			results[question] = NoResultsSentinel
			continue
		}

		snippets := make([]string, len(hits))
		for j, hit := range hits {
			snippets[j] = hit.Content
		}
		results[question] = strings.Join(snippets, " ")
	}

	return results, nil
}
