package breeds

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("breed classifier not configured")

const defaultTimeout = 15 * time.Second

// Client calls the external breed-classification inference API. Every call
// is bounded by the client timeout so a slow model never hangs a request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != ""
}

// Prediction is one candidate breed with its confidence score.
type Prediction struct {
	Breed      string  `json:"breed"`
	Confidence float64 `json:"confidence"`
}

// Predict submits an image URL to the classifier and returns its candidate
// breeds.
func (c *Client) Predict(ctx context.Context, petType, imageURL string) ([]Prediction, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{
		"type":      petType,
		"image_url": imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build prediction request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("breed classifier request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("breed classifier returned status %d", resp.StatusCode)
	}

	var out struct {
		Predictions []Prediction `json:"predictions"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %v", err)
	}
	return out.Predictions, nil
}
