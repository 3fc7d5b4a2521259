package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"restconnect-service/internal/domain/sign"
	"restconnect-service/internal/observability"
)

// ErrUnavailable covers every failure mode of the recognition endpoint:
// transport errors, non-2xx statuses, and undecodable bodies. The caller
// surfaces them all the same way.
var ErrUnavailable = errors.New("sign recognition unavailable")

const recognizePath = "/parking_sign_rec_1"

// Client calls the external sign-recognition endpoint. The endpoint is a
// black box: it takes a base64 image data URL and returns structured sign
// items wrapped in a gateway envelope whose body field is itself a JSON
// string.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	log        zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

type recognizeRequest struct {
	Image string `json:"image"`
}

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// RecognizeSign submits an image data URL and returns the parsed sign items
// in the order the recognizer produced them.
func (c *Client) RecognizeSign(ctx context.Context, imageDataURL string) ([]sign.SignItem, error) {
	payload, err := json.Marshal(recognizeRequest{Image: imageDataURL})
	if err != nil {
		return nil, fmt.Errorf("marshal recognize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+recognizePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.metrics.RecognizerRequests.Inc()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecognizerDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecognizerErrors.Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.metrics.RecognizerErrors.Inc()
		c.log.Warn().
			Int("status", resp.StatusCode).
			Bytes("body", body).
			Msg("recognizer returned non-2xx status")
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.metrics.RecognizerErrors.Inc()
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrUnavailable, err)
	}

	items, err := sign.ParseItems([]byte(env.Body))
	if err != nil {
		c.metrics.RecognizerErrors.Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug().
		Int("items", len(items)).
		Msg("recognizer returned sign items")

	return items, nil
}
