package swodlrcli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "GetUsersProducts")
		assert.Equal(t, "alice", req.Variables["username"])
		assert.Equal(t, "5", req.Variables["limit"])

		// Unset parameters travel as explicit nulls.
		cycle, ok := req.Variables["cycle"]
		require.True(t, ok)
		assert.Nil(t, cycle)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"user":{"products":[]}}}`))
	}))
	defer server.Close()

	doc, err := LoadDocument("get-users-products")
	require.NoError(t, err)

	client := NewHTTPClient(&Config{URL: server.URL, Token: "test-token"})
	result, err := client.Execute(context.Background(), doc, map[string]interface{}{
		"username": "alice",
		"limit":    "5",
		"cycle":    nil,
	})
	require.NoError(t, err)

	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "user")
}

func TestHTTPClientPassesThroughGraphQLErrors(t *testing.T) {
	response := GraphQLResponse{
		Errors: []GraphQLError{{
			Message:    "Unknown product id",
			Path:       []interface{}{"invalidateProduct"},
			Extensions: map[string]interface{}{"code": "NOT_FOUND"},
		}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	doc, err := LoadDocument("invalidate-product")
	require.NoError(t, err)

	client := NewHTTPClient(&Config{URL: server.URL, Token: "test-token"})
	result, err := client.Execute(context.Background(), doc, map[string]interface{}{"id": "nope"})
	require.NoError(t, err)

	errs, ok := result["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 1)

	first, ok := errs[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Unknown product id", first["message"])
}

func TestHTTPClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	doc, err := LoadDocument("search-products")
	require.NoError(t, err)

	client := NewHTTPClient(&Config{URL: server.URL})
	_, err = client.Execute(context.Background(), doc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestHTTPClientMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	doc, err := LoadDocument("search-products")
	require.NoError(t, err)

	client := NewHTTPClient(&Config{URL: server.URL})
	_, err = client.Execute(context.Background(), doc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestHTTPClientRejectsBadURL(t *testing.T) {
	doc, err := LoadDocument("search-products")
	require.NoError(t, err)

	client := NewHTTPClient(&Config{URL: "ftp://example.com"})
	_, err = client.Execute(context.Background(), doc, nil)
	require.Error(t, err)

	client = NewHTTPClient(&Config{})
	_, err = client.Execute(context.Background(), doc, nil)
	require.Error(t, err)
}
