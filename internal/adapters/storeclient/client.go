// Package storeclient talks HTTP/JSON to the users, events, invitations and
// calendars stores on behalf of the web front end.
package storeclient

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

	"eventplanner/internal/domain"
)

const maxErrorBody = 4 << 10

// envelope mirrors the response envelope every store writes.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type client struct {
	store   string
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns the HTTP client shared by all store clients.
// A zero timeout means no client-side timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func newClient(store, baseURL string, httpClient *http.Client) client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return client{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// do sends the request and decodes the envelope's data into out when out is non-nil.
// Any status outside ok is a *domain.StoreError carrying that status.
func (c client) do(ctx context.Context, op, method, path string, query url.Values, body, out any, ok ...int) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", c.store, op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s %s: failed to create request: %w", c.store, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.StoreError{Store: c.store, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !statusIn(resp.StatusCode, ok) {
		return &domain.StoreError{Store: c.store, Op: op, StatusCode: resp.StatusCode, Err: statusError(resp)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &domain.StoreError{Store: c.store, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &domain.StoreError{Store: c.store, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: empty data", domain.ErrMalformedPayload)}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &domain.StoreError{Store: c.store, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)}
	}
	return nil
}

func statusIn(code int, ok []int) bool {
	for _, c := range ok {
		if c == code {
			return true
		}
	}
	return false
}

// statusError builds the error of a non-success answer from the envelope message when present.
func statusError(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Error != nil && env.Error.Message != "" {
		msg = env.Error.Message
	}
	if sentinel := sentinelFor(resp.StatusCode); sentinel != nil {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
	return errors.New(msg)
}

func sentinelFor(code int) error {
	switch code {
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return nil
	}
}
