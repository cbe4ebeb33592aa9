package swodlrcli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway is how close to expiration a cached token may be before it is
// considered unusable and a fresh one is fetched.
const expiryLeeway = 5 * time.Minute

// Claims holds the subset of EDL token claims this tool cares about.
type Claims struct {
	UID string
	// Raw holds all parsed claims for custom extraction.
	Raw map[string]interface{}
}

// TokenStore persists an EDL bearer token on disk.
// Tokens are stored at {dir}/token with 0600 permissions.
// Create with NewTokenStore (uses ~/.{appName}/token) or NewTokenStoreAt for a custom path.
type TokenStore struct {
	dir string
}

// NewTokenStore creates a TokenStore that stores tokens under ~/.{appName}/.
func NewTokenStore(appName string) *TokenStore {
	home, _ := os.UserHomeDir()
	return &TokenStore{dir: filepath.Join(home, "."+appName)}
}

// NewTokenStoreAt creates a TokenStore that stores tokens in the given directory.
func NewTokenStoreAt(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

// Save writes the token to disk, creating the directory if needed.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	path := filepath.Join(s.dir, "token")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(token)), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Load reads the token from disk.
// Returns an empty string (not an error) if no token file exists.
func (s *TokenStore) Load() (string, error) {
	path := filepath.Join(s.dir, "token")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear deletes the saved token file.
func (s *TokenStore) Clear() error {
	path := filepath.Join(s.dir, "token")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Exists reports whether a token file is present.
func (s *TokenStore) Exists() bool {
	_, err := os.Stat(filepath.Join(s.dir, "token"))
	return err == nil
}

// ParseClaims parses JWT claims from a token string without validating the
// signature. EDL tokens are signed by the login service; this tool only needs
// to read the expiry and user id out of tokens it already trusts.
func (s *TokenStore) ParseClaims(tokenString string) (*Claims, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}
	raw := make(map[string]interface{}, len(mc))
	for k, v := range mc {
		raw[k] = v
	}
	uid, _ := mc["uid"].(string)
	return &Claims{UID: uid, Raw: raw}, nil
}

// tokenUsable reports whether the token parses as a JWT and does not expire
// within expiryLeeway.
func tokenUsable(tokenString string) bool {
	tok, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) > expiryLeeway
}
