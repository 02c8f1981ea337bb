package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/logger"
)

// TokenSource supplies the bearer token attached to each request
type TokenSource interface {
	Token() string
}

// Client is an HTTP client for the HabitHaven backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	tokens   TokenSource
	inflight singleflight.Group
}

// New creates a new API client. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: constants.RequestTimeout},
		tokens:  tokens,
	}
}

// SetTokenSource replaces the token source. Call it before issuing requests.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, endpoint string) Result {
	return c.Request(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST request with an optional JSON body
func (c *Client) Post(ctx context.Context, endpoint string, body any) Result {
	return c.Request(ctx, http.MethodPost, endpoint, body)
}

// Put issues a PUT request with an optional JSON body
func (c *Client) Put(ctx context.Context, endpoint string, body any) Result {
	return c.Request(ctx, http.MethodPut, endpoint, body)
}

// Patch issues a PATCH request with an optional JSON body
func (c *Client) Patch(ctx context.Context, endpoint string, body any) Result {
	return c.Request(ctx, http.MethodPatch, endpoint, body)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string) Result {
	return c.Request(ctx, http.MethodDelete, endpoint, nil)
}

// Request performs a backend call and folds every outcome into a Result.
// Concurrent identical mutating requests share a single backend call.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any) Result {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Result{Error: fmt.Sprintf("marshal request: %v", err)}
		}
		payload = data
	}

	if method == http.MethodGet {
		return c.do(ctx, method, endpoint, payload)
	}

	key := method + " " + endpoint + " " + string(payload)
	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		// The shared call must not fail because one caller went away; the
		// HTTP client timeout still bounds it.
		return c.do(context.WithoutCancel(ctx), method, endpoint, payload), nil
	})
	select {
	case res := <-ch:
		if res.Shared {
			logger.Debug("Collapsed duplicate in-flight request", "method", method, "endpoint", endpoint)
		}
		return res.Val.(Result)
	case <-ctx.Done():
		return Result{Error: transportMessage(ctx.Err())}
	}
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) Result {
	requestID := uuid.NewString()
	log := logger.WithRequest(requestID)
	start := time.Now()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, bodyReader)
	if err != nil {
		return Result{Error: transportMessage(err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Debug("Request failed", "method", method, "endpoint", endpoint, "error", err)
		return Result{Error: transportMessage(err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{StatusCode: resp.StatusCode, Error: transportMessage(err)}
	}

	log.Debug("Request completed",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		generic := fmt.Sprintf("Request failed with status code %d", resp.StatusCode)
		return Result{StatusCode: resp.StatusCode, Error: errorMessage(respBody, generic)}
	}

	return Result{Success: true, Data: respBody, StatusCode: resp.StatusCode}
}

// errorMessage picks the server message, then the server error field, then generic.
func errorMessage(body []byte, generic string) string {
	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		for _, field := range []string{"message", "error"} {
			if res := root.Get(field); res.Type == gjson.String && strings.TrimSpace(res.String()) != "" {
				return res.String()
			}
		}
	}
	if generic != "" {
		return generic
	}
	return constants.MsgFallbackError
}

func transportMessage(err error) string {
	if err == nil || err.Error() == "" {
		return constants.MsgFallbackError
	}
	return err.Error()
}
