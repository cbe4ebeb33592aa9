package swodlrcli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvOverrides unsets the resolver override variables for the duration
// of a test, restoring any prior values afterwards.
func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvURLOverride, EnvKeywordOverride} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestResolveGraphQLURLKeywords(t *testing.T) {
	clearEnvOverrides(t)

	tests := []struct {
		keyword string
		want    string
	}{
		{"ops", "https://swodlr.podaac.earthdatacloud.nasa.gov/api/graphql"},
		{"uat", "https://swodlr.podaac.uat.earthdatacloud.nasa.gov/api/graphql"},
		{"sit", "https://swodlr.podaac.sit.earthdatacloud.nasa.gov/api/graphql"},
		{"OPS", "https://swodlr.podaac.earthdatacloud.nasa.gov/api/graphql"},
		{"Uat", "https://swodlr.podaac.uat.earthdatacloud.nasa.gov/api/graphql"},
		{"SIT", "https://swodlr.podaac.sit.earthdatacloud.nasa.gov/api/graphql"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			url, err := ResolveGraphQLURL(tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, tt.want, url)
		})
	}
}

func TestResolveGraphQLURLDirectOverride(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv(EnvURLOverride, "http://x")

	url, err := ResolveGraphQLURL("sit")
	require.NoError(t, err)
	assert.Equal(t, "http://x", url)
}

func TestResolveGraphQLURLDirectOverrideBeatsKeywordOverride(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv(EnvURLOverride, "http://x")
	t.Setenv(EnvKeywordOverride, "uat")

	url, err := ResolveGraphQLURL("ops")
	require.NoError(t, err)
	assert.Equal(t, "http://x", url)
}

func TestResolveGraphQLURLKeywordOverride(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv(EnvKeywordOverride, "uat")

	url, err := ResolveGraphQLURL("ops")
	require.NoError(t, err)
	assert.Equal(t, Environments["uat"], url)
}

func TestResolveGraphQLURLUnknownKeyword(t *testing.T) {
	clearEnvOverrides(t)

	_, err := ResolveGraphQLURL("prod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestResolveGraphQLURLEmptyKeyword(t *testing.T) {
	clearEnvOverrides(t)

	_, err := ResolveGraphQLURL("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}
