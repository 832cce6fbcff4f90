// Package aoe4world is the HTTP client for aoe4world.com and its static data
// mirror. Requests are retried with exponential backoff on transport errors
// and server-side statuses.
package aoe4world

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = 250 * time.Millisecond
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// retryable reports whether a later attempt could succeed.
func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type Client struct {
	HTTP     *http.Client
	Attempts uint
	// Delay is the base of the exponential backoff between attempts.
	Delay time.Duration
}

// NewClient creates a client whose requests time out after timeout.
func NewClient(timeout time.Duration, attempts uint) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: timeout},
		Attempts: attempts,
		Delay:    DefaultDelay,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// Get fetches rawURL with the given query parameters and returns the body of
// a 200 response.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	target := u.String()

	attempts := c.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}
	delay := c.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	var body []byte
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json")
			resp, err := c.httpClient().Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				serr := &StatusError{URL: target, StatusCode: resp.StatusCode, Status: resp.Status}
				if !serr.retryable() {
					return retry.Unrecoverable(serr)
				}
				return serr
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Debug().Err(err).Uint("n", n).Str("url", target).Msg("fetch-failed-retrying")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("url", target).Int("bytes", len(body)).Msg("fetched")
	return body, nil
}
