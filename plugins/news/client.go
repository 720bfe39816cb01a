package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/va6996/mcpchat/log"
)

const (
	DefaultBaseURL = "https://newsapi.org/v2"
	DefaultTimeout = 10 * time.Second
	DefaultLimit   = 3
)

// Client handles NewsAPI article search requests
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new NewsAPI client. Empty values fall back to the
// public endpoint and a 10 second timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Article is a single search hit. Description is nil when the source has none.
type Article struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

// SearchResponse is the body of /everything
type SearchResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// Search returns the newest English articles about topic. limit is the page
// size; values below 1 use DefaultLimit. Errors are always *Failure.
func (c *Client) Search(ctx context.Context, topic string, limit int) ([]Article, error) {
	if c.APIKey == "" {
		return nil, &Failure{Kind: KindMissingKey, Err: ErrMissingAPIKey}
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("apiKey", c.APIKey)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	log.Debugf(ctx, "[News] Searching articles: topic=%q, page_size=%d", topic, limit)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Err: redactKey(err, c.APIKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("API request failed with status %s", resp.Status)
		var apiErr SearchResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			msg += ": " + apiErr.Message
		}
		return nil, &Failure{Kind: KindStatus, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, &Failure{Kind: KindDecode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	log.Debugf(ctx, "[News] Search completed: %d articles", len(searchResp.Articles))
	return searchResp.Articles, nil
}

// redactKey keeps the API key out of error strings that quote the URL.
func redactKey(err error, key string) error {
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED"))
}
