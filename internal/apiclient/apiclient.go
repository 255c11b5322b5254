package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/sling"
)

const (
	DefaultUserAgent = "kzmaps/1.0 (github.com/pfrederiksen/kzmaps)"
	Timeout          = 30 * time.Second
)

// APIError is returned when an upstream API answers with a non-2xx status
type APIError struct {
	API        string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.API, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.API, e.StatusCode)
}

// Client issues GET requests against one upstream API
type Client struct {
	api  string
	base *sling.Sling
}

// New creates a client for api rooted at baseURL. A trailing slash is added to
// baseURL when missing, an empty userAgent selects DefaultUserAgent and a nil
// httpClient one with Timeout.
func New(api, baseURL, userAgent string, httpClient *http.Client) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: Timeout}
	}

	return &Client{
		api: api,
		base: sling.New().
			Client(httpClient).
			Base(baseURL).
			Set("User-Agent", userAgent).
			Set("Accept", "application/json"),
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// Get issues GET path?query and decodes a 2xx JSON body into out. query is
// encoded from its `url` struct tags and may be nil.
func (c *Client) Get(ctx context.Context, path string, query interface{}, out interface{}) error {
	req, err := c.base.New().Get(path).QueryStruct(query).Request()
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	var failure errorBody
	resp, err := c.base.Do(req.WithContext(ctx), out, &failure)
	if err != nil {
		// an undecodable error body still reports the status
		if resp != nil && !success(resp.StatusCode) {
			return &APIError{API: c.api, StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("making request: %w", err)
	}

	if !success(resp.StatusCode) {
		return &APIError{API: c.api, StatusCode: resp.StatusCode, Message: failure.Message}
	}

	return nil
}

func success(status int) bool {
	return status >= 200 && status <= 299
}
