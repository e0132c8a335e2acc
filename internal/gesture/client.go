// Package gesture proxies webcam frames to the external gesture-recognition
// inference service. The service is consumed as an opaque capability: its
// response body is relayed verbatim so the "no_hand_detected" sentinel
// reaches the client untouched.
package gesture

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrPredictionFailed signals a transport failure or a non-2xx response
// from the inference service. No retry is attempted.
var ErrPredictionFailed = errors.New("gesture prediction failed")

// Predictor classifies a captured frame into a digit. Injected so the
// handlers are testable without a live inference backend.
type Predictor interface {
	Predict(ctx context.Context, imageDataURL string) (json.RawMessage, error)
}

// Client calls the inference service over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates an inference client for the given prediction endpoint
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict forwards the image payload to the inference service and returns
// the response body on success. A 2xx body may carry either a prediction
// or the no-hand sentinel; both are passed through as-is.
func (c *Client) Predict(ctx context.Context, imageDataURL string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{"image": imageDataURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrPredictionFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}

	return json.RawMessage(body), nil
}
