package swodlrcli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultEDLBaseURL is the production Earthdata Login endpoint.
	DefaultEDLBaseURL = "https://urs.earthdata.nasa.gov"
	// EDLHost is the machine name looked up in ~/.netrc.
	EDLHost = "urs.earthdata.nasa.gov"

	// Credential environment variables, checked before ~/.netrc.
	EnvUsername = "EARTHDATA_USERNAME"
	EnvPassword = "EARTHDATA_PASSWORD"
)

// Credentials used to authenticate against Earthdata Login
type Credentials struct {
	Username string
	Password string
}

// String returns a string representation of credentials with the password redacted.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username: %q, Password: [REDACTED]}", c.Username)
}

// EDLToken is a user token issued by the Earthdata Login token API.
type EDLToken struct {
	AccessToken    string `json:"access_token"`
	TokenType      string `json:"token_type"`
	ExpirationDate string `json:"expiration_date"`
}

// promptFunc reads one credential interactively. Tests replace it.
type promptFunc func(label string) (string, error)

// EDLClient performs the Earthdata Login flow: ambient credential discovery
// (environment variables, ~/.netrc, interactive prompt), token lookup or
// creation through the EDL user-token API, and on-disk token caching.
type EDLClient struct {
	client  *resty.Client
	baseURL string
	store   *TokenStore
	prompt  promptFunc
}

// NewEDLClient creates an EDLClient against the production EDL endpoint with
// a token cache under ~/.swodlr/.
func NewEDLClient() *EDLClient {
	return NewEDLClientAt(DefaultEDLBaseURL, NewTokenStore("swodlr"))
}

// NewEDLClientAt creates an EDLClient against the given endpoint and token store.
func NewEDLClientAt(baseURL string, store *TokenStore) *EDLClient {
	return &EDLClient{
		client:  resty.New().SetTimeout(30 * time.Second),
		baseURL: baseURL,
		store:   store,
		prompt:  stdinPrompt,
	}
}

// Login returns a usable EDL bearer token. A cached token is reused while its
// exp claim is comfortably in the future; otherwise credentials are discovered
// and a token fetched from the EDL user-token API, then cached.
func (c *EDLClient) Login(ctx context.Context) (string, error) {
	cached, err := c.store.Load()
	if err != nil {
		return "", err
	}
	if cached != "" && tokenUsable(cached) {
		return cached, nil
	}

	creds, err := c.discoverCredentials()
	if err != nil {
		return "", err
	}

	token, err := c.findOrCreateToken(ctx, creds)
	if err != nil {
		return "", err
	}

	if err := c.store.Save(token.AccessToken); err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// discoverCredentials resolves EDL credentials from the environment, then
// ~/.netrc, then an interactive prompt.
func (c *EDLClient) discoverCredentials() (Credentials, error) {
	username := os.Getenv(EnvUsername)
	password := os.Getenv(EnvPassword)
	if username != "" && password != "" {
		return Credentials{Username: username, Password: password}, nil
	}

	if creds, ok := netrcCredentials(netrcPath(), EDLHost); ok {
		return creds, nil
	}

	username, err := c.prompt("EDL username: ")
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read username: %w", err)
	}
	password, err = c.prompt("EDL password: ")
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read password: %w", err)
	}
	if username == "" || password == "" {
		return Credentials{}, fmt.Errorf("no Earthdata Login credentials provided")
	}

	return Credentials{Username: username, Password: password}, nil
}

// findOrCreateToken lists the user's existing EDL tokens and returns the first
// one, creating a new token when none exist.
func (c *EDLClient) findOrCreateToken(ctx context.Context, creds Credentials) (*EDLToken, error) {
	var tokens []EDLToken
	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(creds.Username, creds.Password).
		SetResult(&tokens).
		Get(c.baseURL + "/api/users/tokens")
	if err != nil {
		return nil, fmt.Errorf("earthdata login failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("earthdata login failed: %s", resp.Status())
	}
	if len(tokens) > 0 {
		return &tokens[0], nil
	}

	var token EDLToken
	resp, err = c.client.R().
		SetContext(ctx).
		SetBasicAuth(creds.Username, creds.Password).
		SetResult(&token).
		Post(c.baseURL + "/api/users/token")
	if err != nil {
		return nil, fmt.Errorf("earthdata token creation failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("earthdata token creation failed: %s", resp.Status())
	}

	return &token, nil
}

// netrcPath returns the netrc file location, honoring the NETRC environment
// variable like curl and earthaccess do.
func netrcPath() string {
	if path := os.Getenv("NETRC"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netrc")
}

// netrcCredentials reads login and password for a machine from a netrc file.
func netrcCredentials(path, machine string) (Credentials, bool) {
	if path == "" {
		return Credentials{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, false
	}
	return parseNetrc(string(data), machine)
}

// parseNetrc scans netrc tokens for the given machine entry.
func parseNetrc(data, machine string) (Credentials, bool) {
	fields := strings.Fields(data)
	var creds Credentials
	matched := false

	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "machine":
			if matched && creds.Username != "" && creds.Password != "" {
				return creds, true
			}
			matched = i+1 < len(fields) && fields[i+1] == machine
			i++
		case "login":
			if matched && i+1 < len(fields) {
				creds.Username = fields[i+1]
			}
			i++
		case "password":
			if matched && i+1 < len(fields) {
				creds.Password = fields[i+1]
			}
			i++
		}
	}

	if matched && creds.Username != "" && creds.Password != "" {
		return creds, true
	}
	return Credentials{}, false
}

// stdinPrompt reads one line from standard input.
// TODO: suppress echo for the password prompt (needs golang.org/x/term).
func stdinPrompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
