package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juanfvasquez/pedidos-backend/pkg/config"
)

const (
	tokenPath    = "/api/oauth/token"
	userInfoPath = "/api/oauth/userinfo"

	defaultTimeout = 10 * time.Second
)

// UserInfo is the provider's view of the authenticated account.
type UserInfo struct {
	OpenID      string `json:"openId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	LoginMethod string `json:"loginMethod"`
}

// TokenResponse is the provider's code-exchange result.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Client talks to the OAuth provider's backend endpoints.
type Client struct {
	baseURL   string
	appID     string
	appSecret string
	http      *http.Client
}

// New builds an OAuth client from configuration.
func New(cfg config.OAuthConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if base == "" {
		return nil, fmt.Errorf("oauth server url is required")
	}
	return &Client{
		baseURL:   base,
		appID:     cfg.AppID,
		appSecret: cfg.AppSecret,
		http:      &http.Client{Timeout: defaultTimeout},
	}, nil
}

// ExchangeCode trades the authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code, state string) (*TokenResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("authorization code is required")
	}

	payload, err := json.Marshal(map[string]string{
		"appId":     c.appID,
		"appSecret": c.appSecret,
		"code":      code,
		"state":     state,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var token TokenResponse
	if err := c.do(req, &token); err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("provider returned empty access token")
	}
	return &token, nil
}

// GetUserInfo fetches the profile tied to the access token.
func (c *Client) GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, fmt.Errorf("access token is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userInfoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var info UserInfo
	if err := c.do(req, &info); err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	if info.OpenID == "" {
		return nil, fmt.Errorf("provider user info is missing openId")
	}
	return &info, nil
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading provider response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}
