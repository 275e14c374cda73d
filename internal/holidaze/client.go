package holidaze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://v2.api.noroff.dev"

const maxResponseBytes = 4 << 20

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx answer from the API. Message is the API's own
// wording when the body carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to the Holidaze REST API. A Client without a token can only
// call public endpoints; use WithToken to act on behalf of a session.
type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	token   string
}

type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		hc:      hc,
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  opts.APIKey,
	}
}

// WithToken returns a copy of c that authenticates as the token's owner.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) requireToken() error {
	if c.token == "" {
		return ErrNotAuthenticated
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Noroff-API-Key", c.apiKey)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("holidaze %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("holidaze %s %s: read body: %w", method, path, err)
	}
	if res.StatusCode >= 400 {
		return decodeError(res.StatusCode, b)
	}
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("holidaze %s %s: decode: %w", method, path, err)
	}
	return nil
}

// decodeError picks the most specific message the body offers:
// errors[0].message, then message, then the bare status.
func decodeError(status int, body []byte) error {
	var r struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &r)
	msg := ""
	if len(r.Errors) > 0 {
		msg = r.Errors[0].Message
	}
	if msg == "" {
		msg = r.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{Status: status, Message: msg}
}

func seg(s string) string { return url.PathEscape(s) }
