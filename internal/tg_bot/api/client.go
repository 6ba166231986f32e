// Package api provides the clients of the external services used by the bot:
// weather, translation, dictionary and generative chat models.
// Clients never return errors to their callers. Failures are logged and
// reported as a nil result (or a fallback text for generative models).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/sirupsen/logrus"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 10 * time.Second

// newHTTPClient returns the client shared by one service wrapper.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET request and decodes a 200 response into out.
// Arguments:
//   - ctx: request context, bounded by the client timeout.
//   - client: HTTP client to use.
//   - url: full request URL, query included.
//   - out: pointer to the value to decode into.
//
// Returns an error for transport failures, non-200 statuses and malformed bodies.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err = res.Body.Close(); err != nil {
			logrus.WithError(err).Errorf("Failed to close response body: %v", err)
		}
	}()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", res.StatusCode, string(data))
	}
	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
