package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fakestore/pkg/lib/logger/sl"
)

// Client is the single HTTP doorway to the remote store API. Resource
// clients compose it; nothing else performs remote I/O.
type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string

	mu    sync.RWMutex
	token string
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// SetToken installs a bearer token sent on all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	const op = "api.Client.do"
	log := c.log.With("op", op, "method", method, "path", path)

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, newTransportError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("reading response failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, newTransportError(err))
	}

	log.Debug("request completed",
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(resp.StatusCode)
		log.Warn("remote returned error status", sl.Err(apiErr))
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			log.Error("decoding response failed", sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}
