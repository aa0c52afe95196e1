package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sunnah-steps/models"
)

// API is the subset of the server the session talks to.
type API interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// APIError carries the status and message of a non-2xx server reply.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage string          `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", models.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	req := models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var out models.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) Progress(ctx context.Context, token string) (*models.Progress, error) {
	var out models.ProgressResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/progress", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Progress, nil
}

func (c *HTTPClient) ToggleBookmark(ctx context.Context, token, articleID string) (*models.BookmarkResult, error) {
	var out models.BookmarkResult
	req := models.BookmarkRequest{ArticleID: articleID}
	if err := c.do(ctx, http.MethodPost, "/dashboard/bookmark", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RecordRead(ctx context.Context, token, articleID string, minutes int) (*models.Progress, error) {
	var out models.ProgressResponse
	req := models.RecordReadRequest{ArticleID: articleID, TimeSpent: minutes}
	if err := c.do(ctx, http.MethodPost, "/dashboard/read", token, req, &out); err != nil {
		return nil, err
	}
	return out.Progress, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := env.CodeMessage
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
