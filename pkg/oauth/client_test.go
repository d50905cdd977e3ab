package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juanfvasquez/pedidos-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(config.OAuthConfig{
		ServerURL: server.URL,
		AppID:     "app-1",
		AppSecret: "secret-1",
	})
	require.NoError(t, err)
	return client
}

func TestExchangeCode(t *testing.T) {
	var received map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/oauth/token", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "token-123"})
	}))

	token, err := client.ExchangeCode(context.Background(), "the-code", "the-state")
	require.NoError(t, err)
	assert.Equal(t, "token-123", token.AccessToken)
	assert.Equal(t, "app-1", received["appId"])
	assert.Equal(t, "secret-1", received["appSecret"])
	assert.Equal(t, "the-code", received["code"])
	assert.Equal(t, "the-state", received["state"])
}

func TestExchangeCodeErrors(t *testing.T) {
	t.Run("empty code", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		_, err := client.ExchangeCode(context.Background(), "  ", "state")
		assert.Error(t, err)
	})

	t.Run("non-2xx response", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad code", http.StatusBadRequest)
		}))
		_, err := client.ExchangeCode(context.Background(), "code", "state")
		assert.Error(t, err)
	})

	t.Run("empty access token", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(TokenResponse{})
		}))
		_, err := client.ExchangeCode(context.Background(), "code", "state")
		assert.Error(t, err)
	})
}

func TestGetUserInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/oauth/userinfo", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(UserInfo{
			OpenID:      "open-1",
			Name:        "Ana",
			Email:       "ana@example.com",
			LoginMethod: "google",
		})
	}))

	info, err := client.GetUserInfo(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, "open-1", info.OpenID)
	assert.Equal(t, "Ana", info.Name)
}

func TestGetUserInfoRequiresOpenID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(UserInfo{Name: "No ID"})
	}))

	_, err := client.GetUserInfo(context.Background(), "token-123")
	assert.Error(t, err)
}

func TestNewRequiresServerURL(t *testing.T) {
	_, err := New(config.OAuthConfig{})
	assert.Error(t, err)
}
