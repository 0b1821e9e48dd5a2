package websearch

import (
	"context"
	"fmt"
)

// Result is a single web search hit in a provider-agnostic format
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchProvider defines the contract for any web search backend.
// An empty result list is a valid outcome, not an error.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// ServiceError marks a search backend failure (transport, auth, non-2xx)
type ServiceError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
