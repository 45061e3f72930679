// Package client is the Go client for the notestash API: a thin HTTP client,
// a credential store persisted on disk, and resource stores that mirror the
// server's filter semantics and re-fetch after every mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/notestash/notestash/internal/apperr"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client for the API at baseURL (for example
// "http://localhost:5000/api"). The token may be empty for auth calls.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) SetToken(token string) { c.token = token }

type authRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Signup registers a new account and returns its token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", authRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", authRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns the server's {"error": ...} envelope back into the error
// taxonomy callers branch on.
func decodeError(resp *http.Response) error {
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	msg := envelope.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperr.Validation("request", msg)
	case http.StatusUnauthorized:
		return apperr.ErrInvalidCredentials
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusConflict:
		return apperr.ErrEmailTaken
	case http.StatusServiceUnavailable:
		return apperr.ErrUnavailable
	default:
		return fmt.Errorf("server error: %s", msg)
	}
}
