package swodlrcli

import (
	"fmt"
	"os"
	"strings"
)

// Environments maps each SWODLR deployment keyword to its GraphQL endpoint.
var Environments = map[string]string{
	"ops": "https://swodlr.podaac.earthdatacloud.nasa.gov/api/graphql",
	"uat": "https://swodlr.podaac.uat.earthdatacloud.nasa.gov/api/graphql",
	"sit": "https://swodlr.podaac.sit.earthdatacloud.nasa.gov/api/graphql",
}

// Environment variable overrides, checked in priority order.
const (
	// EnvURLOverride replaces the resolved endpoint URL verbatim.
	EnvURLOverride = "SWODLR_CLI_URL"
	// EnvKeywordOverride replaces the environment keyword from the command line.
	EnvKeywordOverride = "SWODLR_CLI_ENV"
)

// ResolveGraphQLURL resolves an environment keyword to a GraphQL endpoint URL.
// SWODLR_CLI_URL short-circuits all other logic; SWODLR_CLI_ENV replaces the
// keyword passed on the command line. Keywords are matched case-insensitively.
func ResolveGraphQLURL(env string) (string, error) {
	if url, ok := os.LookupEnv(EnvURLOverride); ok {
		return url, nil
	}

	if venue, ok := os.LookupEnv(EnvKeywordOverride); ok {
		env = venue
	}

	if env == "" {
		return "", fmt.Errorf("invalid environment: %q", env)
	}

	env = strings.ToLower(env)
	url, ok := Environments[env]
	if !ok {
		return "", fmt.Errorf("invalid environment: %q", env)
	}

	return url, nil
}
