package swodlrcli

import "context"

// Config holds the CLI configuration
type Config struct {
	URL    string // SWODLR GraphQL endpoint URL (resolved per invocation)
	Format string // Output format: json, compact, toon (default: json)

	// Authentication
	Token string // EDL bearer token attached to every request

	// HTTP client settings
	Timeout int  // Request timeout in seconds (default: 30)
	Debug   bool // Enable debug logging (logs HTTP requests/responses)
}

// GraphQLRequest is the standard GraphQL request format
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse is the standard GraphQL response format
type GraphQLResponse struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors []GraphQLError         `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Client executes GraphQL documents against a SWODLR deployment
type Client interface {
	Execute(ctx context.Context, doc *Document, variables map[string]interface{}) (map[string]interface{}, error)
}

// Formatter formats query results
type Formatter interface {
	Format(data map[string]interface{}) (string, error)
	Name() string
}

// FormatterRegistry manages available formatters
type FormatterRegistry interface {
	Register(name string, formatter Formatter) error
	Get(name string) (Formatter, error)
	List() []string
}
