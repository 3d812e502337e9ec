package authservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client клиент для эндпоинтов аутентификации салона
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Authenticate выполняет вход по email и паролю
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Tokens, error) {
	status, tokens, err := c.post(ctx, "/auth/authenticate", AuthenticateRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
		c.log.Warn("Authenticate: rejected for email=%s, status=%d", email, status)
		return nil, ErrInvalidCredentials
	case StatusAccountNotActivated:
		c.log.Warn("Authenticate: account not activated for email=%s", email)
		return nil, ErrAccountNotActivated
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, status)
	}

	c.log.Info("Authenticate: signed in as email=%s", email)
	return tokens, nil
}

// Refresh обменивает refresh-токен на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	status, tokens, err := c.post(ctx, "/auth/refresh-token", RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
		c.log.Warn("Refresh: refresh token rejected, status=%d", status)
		return nil, ErrRefreshRejected
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, status)
	}

	c.log.Info("Refresh: token pair refreshed")
	return tokens, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (int, *Tokens, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	var tokens Tokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if tokens.Token == "" {
		return resp.StatusCode, nil, fmt.Errorf("%w: empty token", ErrInvalidResponse)
	}

	return resp.StatusCode, &tokens, nil
}
