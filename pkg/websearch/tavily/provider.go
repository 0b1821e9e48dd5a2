package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"research-assistant-be/pkg/websearch"
)

type TavilyProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure TavilyProvider implements SearchProvider
var _ websearch.SearchProvider = &TavilyProvider{}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func NewTavilyProvider(apiKey, baseURL string) *TavilyProvider {
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	return &TavilyProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (p *TavilyProvider) Search(ctx context.Context, query string, maxResults int) ([]websearch.Result, error) {
	reqBody := searchRequest{
		APIKey:      p.apiKey,
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  maxResults,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/search", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &websearch.ServiceError{Provider: "tavily", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &websearch.ServiceError{
			Provider: "tavily",
			Message:  fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var searchResp searchResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		return nil, &websearch.ServiceError{Provider: "tavily", Message: "failed to decode response", Err: err}
	}

	results := make([]websearch.Result, len(searchResp.Results))
	for i, r := range searchResp.Results {
		results[i] = websearch.Result{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
		}
	}
	return results, nil
}
