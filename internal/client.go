package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a typed accessor for the chat REST API. It holds no credentials;
// every call takes the token explicitly.
type Client struct {
	h       *http.Client
	baseURL string
}

// ClientOptions customizes a Client
type ClientOptions struct {
	HTTPClient *http.Client
}

// NewClient creates a Client rooted at baseURL, e.g. https://api.gitter.im/v1
func NewClient(baseURL string, opts *ClientOptions) *Client {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	if opts != nil {
		c.h = opts.HTTPClient
	}
	if c.h == nil {
		c.h = http.DefaultClient
	}
	return c
}

// Timeout returns the per-request timeout of the underlying HTTP client, 0 for none
func (c *Client) Timeout() time.Duration {
	return c.h.Timeout
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCollection GETs path and decodes a JSON array of T. Any transport,
// status or decode failure is logged and yields an empty collection, which
// callers treat as "no data this cycle".
func FetchCollection[T any](ctx context.Context, c *Client, path, token string) []T {
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		LogError("%v", &RequestError{Method: http.MethodGet, URL: target, Err: err})
		return []T{}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	LogDebug("GET %s", target)
	resp, err := c.h.Do(req)
	if err != nil {
		LogError("%v", &RequestError{Method: http.MethodGet, URL: target, Err: err})
		return []T{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		LogError("%v", &RequestError{Method: http.MethodGet, URL: target, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)})
		return []T{}
	}

	var out []T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		LogError("%v", &DecodeError{URL: target, Err: err})
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

// FetchUser returns the account the token belongs to. The endpoint answers
// with a one-element array.
func (c *Client) FetchUser(ctx context.Context, token string) []User {
	return FetchCollection[User](ctx, c, "/user", token)
}

// FetchRooms returns the rooms the account has joined, in server order
func (c *Client) FetchRooms(ctx context.Context, token string) []Room {
	return FetchCollection[Room](ctx, c, "/rooms", token)
}

// FetchMessages returns up to limit of the most recent messages of a room
func (c *Client) FetchMessages(ctx context.Context, token, roomID string, limit int) []Message {
	return FetchCollection[Message](ctx, c, messagesPath(roomID, limit), token)
}

type postBody struct {
	Text string `json:"text"`
}

// PostMessage sends text to a room. Blank text is dropped without a request.
// Failures are logged and returned; the sync workers ignore the result.
func (c *Client) PostMessage(ctx context.Context, token, roomID, text string) error {
	if strings.TrimSpace(text) == "" {
		LogDebug("Dropping blank outgoing message for room %s", roomID)
		return nil
	}

	target := c.baseURL + messagesPath(roomID, 0)

	data, err := json.Marshal(postBody{Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		reqErr := &RequestError{Method: http.MethodPost, URL: target, Err: err}
		LogError("%v", reqErr)
		return reqErr
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	LogDebug("POST %s (%d bytes)", target, len(data))
	resp, err := c.h.Do(req)
	if err != nil {
		reqErr := &RequestError{Method: http.MethodPost, URL: target, Err: err}
		LogError("%v", reqErr)
		return reqErr
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Method: http.MethodPost, URL: target, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		LogError("%v", reqErr)
		return reqErr
	}

	return nil
}

func messagesPath(roomID string, limit int) string {
	p := "/rooms/" + url.PathEscape(roomID) + "/chatMessages"
	if limit > 0 {
		p += fmt.Sprintf("?limit=%d", limit)
	}
	return p
}
