package swodlrcli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/toon-format/toon-go"
)

// JSONFormatter outputs data as JSON
type JSONFormatter struct {
	pretty bool
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{pretty: pretty}
}

func (f *JSONFormatter) Format(data map[string]interface{}) (string, error) {
	var output []byte
	var err error

	if f.pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(output), nil
}

func (f *JSONFormatter) Name() string {
	return "json"
}

// CompactFormatter outputs data in compact form
type CompactFormatter struct{}

// NewCompactFormatter creates a compact formatter
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

func (f *CompactFormatter) Format(data map[string]interface{}) (string, error) {
	output, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(output), nil
}

func (f *CompactFormatter) Name() string {
	return "compact"
}

// TOONFormatter outputs data in TOON format (Token-Optimized Object Notation)
// using the official toon-go library: https://github.com/toon-format/toon-go
type TOONFormatter struct{}

// NewTOONFormatter creates a TOON formatter
func NewTOONFormatter() *TOONFormatter {
	return &TOONFormatter{}
}

func (f *TOONFormatter) Format(data map[string]interface{}) (string, error) {
	// Unwrap the data field when present; errors stay visible as-is
	dataField, ok := data["data"].(map[string]interface{})
	if !ok || dataField == nil {
		dataField = data
	}

	output, err := toon.MarshalString(dataField)
	if err != nil {
		return "", fmt.Errorf("TOON encoding failed: %w", err)
	}

	return output, nil
}

func (f *TOONFormatter) Name() string {
	return "toon"
}

// DefaultFormatterRegistry manages available formatters
type DefaultFormatterRegistry struct {
	formatters map[string]Formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters.
// The json formatter prints indented JSON, matching the tool's default output.
func NewFormatterRegistry() *DefaultFormatterRegistry {
	r := &DefaultFormatterRegistry{
		formatters: make(map[string]Formatter),
	}

	r.formatters["json"] = NewJSONFormatter(true)
	r.formatters["compact"] = NewCompactFormatter()
	r.formatters["toon"] = NewTOONFormatter()

	return r
}

func (r *DefaultFormatterRegistry) Register(name string, formatter Formatter) error {
	if _, exists := r.formatters[name]; exists {
		return fmt.Errorf("formatter '%s' already registered", name)
	}
	r.formatters[name] = formatter
	return nil
}

func (r *DefaultFormatterRegistry) Get(name string) (Formatter, error) {
	formatter, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return formatter, nil
}

func (r *DefaultFormatterRegistry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
