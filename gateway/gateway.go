// Package gateway is the HTTP client for the storefront backend. The
// rest of the app treats it as a fallible async collaborator: every
// call returns typed data or an *APIError carrying the status code
// and the server's message, nothing transport-level leaks out.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// APIError is the uniform failure shape for gateway calls. StatusCode
// is 0 for transport failures (no connectivity, timeout, open
// breaker); otherwise it is the HTTP status the backend returned.
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns the server's message verbatim so callers can surface
// it to the user unchanged.
func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the backend. This
// is the one status-code branch the controllers take, used to tell an
// expired session apart from other failures during probing.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the backend over resty with a circuit breaker in
// front. It also owns the session token and attaches it as a bearer
// Authorization header.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	token   string
	log     *logrus.Entry
}

func New(cfg Config, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("component", "gateway")

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0) // failures surface to the caller, no silent retries

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	})

	return &Client{http: httpClient, breaker: breaker, log: log}
}

// SetToken installs the session token used on authorized calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) ClearToken() {
	c.token = ""
}

type errorBody struct {
	Error string `json:"error"`
}

// do runs one request through the breaker. 4xx responses are the
// backend answering, not the backend down, so they come back as
// *APIError without counting against the breaker; transport errors
// and 5xx do count.
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body, out interface{}) error {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req := c.http.R().
			SetContext(ctx).
			SetHeader("X-Request-ID", uuid.NewString())
		if c.token != "" {
			req.SetHeader("Authorization", "Bearer "+c.token)
		}
		for k, v := range headers {
			req.SetHeader(k, v)
		}
		if body != nil {
			req.SetBody(body)
		}

		resp, httpErr := req.Execute(method, path)
		if httpErr != nil {
			return nil, &APIError{Message: httpErr.Error()}
		}

		if resp.IsError() {
			msg := fmt.Sprintf("request failed (%d)", resp.StatusCode())
			var eb errorBody
			if unmarshalErr := json.Unmarshal(resp.Body(), &eb); unmarshalErr == nil && eb.Error != "" {
				msg = eb.Error
			}
			apiErr := &APIError{StatusCode: resp.StatusCode(), Message: msg}
			if resp.StatusCode() >= http.StatusInternalServerError {
				return nil, apiErr
			}
			return apiErr, nil
		}

		if out != nil {
			if unmarshalErr := json.Unmarshal(resp.Body(), out); unmarshalErr != nil {
				return nil, &APIError{StatusCode: resp.StatusCode(), Message: "failed to parse response: " + unmarshalErr.Error()}
			}
		}
		return nil, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &APIError{Message: "service unavailable"}
		}
		c.logFailure(method, path, err)
		return err
	}
	if apiErr, ok := result.(*APIError); ok {
		c.logFailure(method, path, apiErr)
		return apiErr
	}
	return nil
}

func (c *Client) logFailure(method, path string, err error) {
	fields := logrus.Fields{"method": method, "path": path}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		fields["status"] = apiErr.StatusCode
	}
	c.log.WithFields(fields).Warn("Gateway call failed: ", err)
}
