package swodlrcli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient executes GraphQL documents against a SWODLR deployment via HTTP
type HTTPClient struct {
	config *Config
	client *resty.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP GraphQL client
func NewHTTPClient(cfg *Config) *HTTPClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout == 0 {
		timeout = 30 * time.Second
	}

	restClient := resty.New().
		SetTimeout(timeout).
		SetDebug(cfg.Debug)

	if cfg.Token != "" {
		restClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	return &HTTPClient{
		config: cfg,
		client: restClient,
	}
}

// Execute performs one request/response cycle for the given document with the
// given variable bindings. Server-reported GraphQL errors do not become Go
// errors; the decoded body (including any "errors" key) is returned for
// printing as-is.
func (c *HTTPClient) Execute(ctx context.Context, doc *Document, variables map[string]interface{}) (map[string]interface{}, error) {
	if c.config.URL == "" {
		return nil, fmt.Errorf("GraphQL URL is not configured")
	}

	if !strings.HasPrefix(c.config.URL, "http://") && !strings.HasPrefix(c.config.URL, "https://") {
		return nil, fmt.Errorf("URL must start with http:// or https://")
	}

	request := GraphQLRequest{
		Query:     doc.Source,
		Variables: variables,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post(c.config.URL)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("request failed: %s\nBody: %s", resp.Status(), string(resp.Body()))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w\nBody: %s", err, string(resp.Body()))
	}

	return result, nil
}
