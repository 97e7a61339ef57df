// Package fetcher retrieves rover payloads from the backend endpoint.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/ziadkadry99/marsdash/internal/rover"
)

// maxBodyBytes caps how much of a backend response is read.
const maxBodyBytes = 16 << 20

// Fetcher is implemented by anything that can load a rover payload.
type Fetcher interface {
	Fetch(ctx context.Context, roverName string) (*rover.Payload, error)
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration // per attempt; zero disables
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       logrus.FieldLogger
}

// Client fetches rover payloads over HTTP with bounded retries.
type Client struct {
	base   string
	http   *retryablehttp.Client
	logger logrus.FieldLogger
}

// New creates a Client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must be http or https", opts.BaseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = retryLogger{logger}
	rc.ErrorHandler = lastResponse

	return &Client{
		base:   strings.TrimRight(opts.BaseURL, "/"),
		http:   rc,
		logger: logger,
	}, nil
}

// Endpoint returns the URL requested for roverName. The name is path-escaped
// but its case is kept.
func (c *Client) Endpoint(roverName string) string {
	return c.base + "/" + url.PathEscape(roverName)
}

// Fetch issues GET {base}/{roverName} and decodes the payload. A payload
// without photos is returned together with rover.ErrNoPhotos.
func (c *Client) Fetch(ctx context.Context, roverName string) (*rover.Payload, error) {
	endpoint := c.Endpoint(roverName)
	log := c.logger.WithField("rover", roverName)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", roverName, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("fetching %s: %w", roverName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", roverName, err)
	}
	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("backend responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Rover: roverName, Code: resp.StatusCode, Message: errorMessage(body)}
	}
	if msg := errorMessage(body); msg != "" {
		return nil, &APIError{Rover: roverName, Message: msg}
	}

	payload, err := rover.Decode(body)
	if err != nil {
		return payload, fmt.Errorf("%s: %w", roverName, err)
	}
	return payload, nil
}

// lastResponse hands back the final response once retries are exhausted so
// its status code can be reported. Transport errors pass through.
func lastResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, err
}

// errorMessage extracts a backend error from bodies shaped like
// {"error":"..."} or {"error":{"message":"..."}}.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	res := gjson.GetBytes(body, "error")
	if !res.Exists() || res.Type == gjson.Null {
		return ""
	}
	if res.IsObject() {
		if m := res.Get("message"); m.Exists() {
			return m.String()
		}
		return res.Raw
	}
	return res.String()
}

// retryLogger adapts a logrus logger to retryablehttp's Printf logger at
// debug level.
type retryLogger struct {
	l logrus.FieldLogger
}

func (r retryLogger) Printf(format string, args ...interface{}) {
	r.l.Debugf(strings.TrimSpace(format), args...)
}
