// Package elevenlabs is a minimal client for the ElevenLabs streaming
// text-to-speech API. It owns the process-wide outbound connection pool and
// exposes synthesized audio as a forward-only chunk stream.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public ElevenLabs API endpoint.
const DefaultBaseURL = "https://api.elevenlabs.io"

// maxErrorBody caps how much of an upstream error response is retained.
const maxErrorBody = 16 * 1024

// Config holds the settings of the shared upstream client.
type Config struct {
	// APIKey is sent as the xi-api-key header on every request.
	APIKey string

	// BaseURL overrides the upstream endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// MaxConns bounds the number of concurrent connections to the upstream.
	MaxConns int

	// KeepAlive is how long idle pooled connections are kept open.
	KeepAlive time.Duration

	// RequestTimeout bounds a whole synthesis call, including streaming the
	// response body.
	RequestTimeout time.Duration
}

// Client issues streaming synthesis requests over a shared connection pool.
// It is safe for concurrent use and must be created once per process.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client instance with its own pooled transport.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxConns,
		MaxIdleConnsPerHost: cfg.MaxConns,
		MaxConnsPerHost:     cfg.MaxConns,
		IdleConnTimeout:     cfg.KeepAlive,
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
	}
}

// Close releases all pooled connections. Idempotent.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// SynthesizeRequest carries one synthesis call to the upstream.
type SynthesizeRequest struct {
	// Text is the content to synthesize. Must be non-empty.
	Text string

	// VoiceID selects the upstream voice.
	VoiceID string

	// ModelID selects the upstream model.
	ModelID string

	// VoiceSettings is forwarded verbatim when present.
	VoiceSettings map[string]any

	// OptimizeStreamingLatency is the 0-4 latency/quality hint.
	OptimizeStreamingLatency int

	// Accept is the desired audio MIME type. Defaults to audio/mpeg.
	Accept string
}

// synthesizePayload is the upstream wire shape.
type synthesizePayload struct {
	Text                     string         `json:"text"`
	ModelID                  string         `json:"model_id"`
	OptimizeStreamingLatency int            `json:"optimize_streaming_latency"`
	VoiceSettings            map[string]any `json:"voice_settings,omitempty"`
}

// SynthesizeStream issues the synthesis request and returns the audio as a
// lazy chunk stream. The caller must Close the stream. A non-2xx upstream
// response is returned as *APIError and yields no stream.
func (c *Client) SynthesizeStream(ctx context.Context, req *SynthesizeRequest) (*Stream, error) {
	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s/stream", c.baseURL, url.PathEscape(req.VoiceID))

	payload, err := json.Marshal(synthesizePayload{
		Text:                     req.Text,
		ModelID:                  req.ModelID,
		OptimizeStreamingLatency: req.OptimizeStreamingLatency,
		VoiceSettings:            req.VoiceSettings,
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: failed to build request: %w", err)
	}

	accept := req.Accept
	if accept == "" {
		accept = "audio/mpeg"
	}

	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: synthesis request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return NewStream(resp.Body), nil
}
