package billingapi

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

// APIError represents an error that occurred while talking to the billing backend
type APIError struct {
	Op         string // Operation that caused the error
	StatusCode int    // HTTP status, 0 when no response was received
	Message    string // The backend's "error" field, if it sent one
	Err        error  // Original error
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := "billing api error: " + e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}

// Client is an HTTP client for the billing backend's AI invoice and reference endpoints
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Config holds configuration for the billing API client
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for the billing API client
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 15 * time.Second,
	}
}

// NewClient creates a new billing API client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		token:   config.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorBody is the failure body shape the backend uses
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends req and decodes a successful JSON body into out
func (c *Client) do(op string, req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{
			Op:  op,
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
		}
		var body errorBody
		if json.Unmarshal(respBody, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
		} else {
			apiErr.Err = fmt.Errorf("%s - %s", resp.Status, truncate(respBody, 200))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload, out interface{}) error {
	requestData, err := json.Marshal(payload)
	if err != nil {
		return &APIError{
			Op:  op,
			Err: fmt.Errorf("failed to marshal request payload: %w", err),
		}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(requestData), "application/json")
	if err != nil {
		return &APIError{
			Op:  op,
			Err: fmt.Errorf("failed to create request: %w", err),
		}
	}
	return c.do(op, req, out)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
