// backend/src/ner/client.go
package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/username/dealparse/backend/src/models"
)

// Recognizer is the optional statistical entity engine. It is treated as
// an untrusted external dependency: every failure is a signal to fall
// back to the regex-only engine, never a fatal error. Implementations
// must be safe for concurrent use.
type Recognizer interface {
	// Probe checks whether the recognizer can be acquired at all.
	Probe(ctx context.Context) error
	// Recognize returns the raw entity spans found in the text.
	Recognize(ctx context.Context, text string) ([]models.NEREntity, error)
}

// Client talks to an external NER inference service over HTTP. The
// service accepts {"text": ...} on POST /ner and returns the aggregated
// entity spans as a JSON array.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a recognizer client. The timeout bounds every call,
// including the probe, so a hung recognizer cannot stall extraction.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Probe performs a health check against the recognizer service.
func (c *Client) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("ner probe: failed to build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ner probe: recognizer unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ner probe: recognizer returned status %d", resp.StatusCode)
	}
	return nil
}

type recognizeRequest struct {
	Text string `json:"text"`
}

// Recognize submits the text for entity recognition and decodes the
// returned spans.
func (c *Client) Recognize(ctx context.Context, text string) ([]models.NEREntity, error) {
	body, err := json.Marshal(recognizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("ner recognize: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ner", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ner recognize: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ner recognize: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ner recognize: recognizer returned status %d", resp.StatusCode)
	}

	var spans []models.NEREntity
	if err := json.NewDecoder(resp.Body).Decode(&spans); err != nil {
		return nil, fmt.Errorf("ner recognize: failed to decode response: %w", err)
	}
	return spans, nil
}
