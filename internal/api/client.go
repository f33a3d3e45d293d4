package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agisilaos/skydesk/internal/session"
)

// ErrUnauthorized marks a rejected credential. The client has already
// dropped the session by the time callers see it; their only job is to
// route back to the login screen.
var ErrUnauthorized = errors.New("authorization required")

var errTransient = errors.New("transient backend failure")

// RequestError is the single error type callers see for any failed call.
// Message is a static human-readable string; transport detail hangs off Err
// and is written to the diagnostics writer, not shown to the user.
type RequestError struct {
	Message string
	Status  int
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// Client is the typed client for the booking back office API. The session
// is injected at construction; every request carries its bearer token and a
// 401 response expires it globally.
type Client struct {
	BaseURL string
	Session *session.Session
	Client  *http.Client
	Timeout time.Duration
	Retries int
	Backoff time.Duration
	// Diagnostics receives server-provided error detail; nil discards it.
	Diagnostics io.Writer
}

func New(baseURL string, sess *session.Session) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Session: sess}
}

func (c *Client) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: c.resolvedTimeout()}
}

func (c *Client) resolvedTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 20 * time.Second
}

func (c *Client) resolvedRetries() int {
	if c.Retries < 0 {
		return 0
	}
	return c.Retries
}

func (c *Client) resolvedBackoff() time.Duration {
	if c.Backoff > 0 {
		return c.Backoff
	}
	return 400 * time.Millisecond
}

func (c *Client) retryDelay(attempt int) time.Duration {
	shift := attempt
	if shift > 5 {
		shift = 5
	}
	return c.resolvedBackoff() * time.Duration(1<<shift)
}

// get retries transient failures; reads are safe to repeat. Mutations go
// through send exactly once.
func (c *Client) get(path string, query url.Values, out any, failMsg string) error {
	attempts := c.resolvedRetries() + 1
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = c.send(http.MethodGet, path, query, nil, out, failMsg)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errTransient) || attempt == attempts-1 {
			return err
		}
		time.Sleep(c.retryDelay(attempt))
	}
	return err
}

func (c *Client) send(method, path string, query url.Values, body any, out any, failMsg string) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: failMsg, Err: err}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return &RequestError{Message: failMsg, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if isNetworkTransient(err) {
			return &RequestError{Message: failMsg, Err: fmt.Errorf("%w: %v", errTransient, err)}
		}
		return &RequestError{Message: failMsg, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.Session.Expire()
		return &RequestError{
			Message: "Session expired. Please log in again.",
			Status:  resp.StatusCode,
			Err:     ErrUnauthorized,
		}
	}
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.diag("%s %s failed: %s: %s", method, path, resp.Status, strings.TrimSpace(string(detail)))
		reqErr := &RequestError{Message: failMsg, Status: resp.StatusCode}
		if resp.StatusCode >= 500 {
			reqErr.Err = errTransient
		}
		return reqErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &RequestError{Message: failMsg, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// sendRaw is send for endpoints whose success body is plain text, not JSON.
func (c *Client) sendRaw(method, path string, body any, failMsg string) (string, error) {
	endpoint := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", &RequestError{Message: failMsg, Err: err}
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return "", &RequestError{Message: failMsg, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", &RequestError{Message: failMsg, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if resp.StatusCode >= 400 {
		c.diag("%s %s failed: %s: %s", method, path, resp.Status, strings.TrimSpace(string(raw)))
		reqErr := &RequestError{Message: failMsg, Status: resp.StatusCode}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			reqErr.Err = ErrUnauthorized
		}
		return "", reqErr
	}
	return strings.TrimSpace(string(raw)), nil
}

func (c *Client) diag(format string, args ...any) {
	if c.Diagnostics == nil {
		return
	}
	fmt.Fprintf(c.Diagnostics, format+"\n", args...)
}

func isNetworkTransient(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
