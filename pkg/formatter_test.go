package swodlrcli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterRegistryDefaults(t *testing.T) {
	reg := NewFormatterRegistry()
	assert.Equal(t, []string{"compact", "json", "toon"}, reg.List())

	_, err := reg.Get("yaml")
	require.Error(t, err)
}

func TestJSONFormatterIndents(t *testing.T) {
	reg := NewFormatterRegistry()
	formatter, err := reg.Get("json")
	require.NoError(t, err)

	out, err := formatter.Format(map[string]interface{}{
		"data": map[string]interface{}{"products": []interface{}{}},
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"data\": {\n    \"products\": []\n  }\n}", out)
}

func TestCompactFormatterSingleLine(t *testing.T) {
	formatter := NewCompactFormatter()

	out, err := formatter.Format(map[string]interface{}{
		"data": map[string]interface{}{"products": []interface{}{}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"products":[]}}`, out)
	assert.False(t, strings.Contains(out, "\n"))
}

func TestTOONFormatterUnwrapsData(t *testing.T) {
	formatter := NewTOONFormatter()

	out, err := formatter.Format(map[string]interface{}{
		"data": map[string]interface{}{"state": "GENERATED"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "state")
	assert.Contains(t, out, "GENERATED")
	assert.NotContains(t, out, "data")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := NewFormatterRegistry()
	err := reg.Register("json", NewJSONFormatter(false))
	require.Error(t, err)

	require.NoError(t, reg.Register("json-compact", NewJSONFormatter(false)))
}
