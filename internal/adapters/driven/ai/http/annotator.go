// Package http provides an annotator adapter over an HTTP image
// analysis service. The service is treated as slow and unreliable:
// calls are rate limited, time limited, and every failure maps to
// domain.ErrAnnotationFailed so ingestion can surface it cleanly.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driven"
)

// Ensure Annotator implements the interface.
var _ driven.Annotator = (*Annotator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8602"
	DefaultModel   = "glance-vision"
	DefaultTimeout = 60 * time.Second

	// DefaultRate throttles analysis calls; vision models are slow and
	// bursts only queue up behind the GPU anyway.
	DefaultRate = 2.0
)

// Config holds configuration for the HTTP annotator.
type Config struct {
	// BaseURL is the analysis service base URL (default: http://localhost:8602).
	BaseURL string

	// Model is the vision model to request (default: glance-vision).
	Model string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// RatePerSecond throttles outgoing calls (default: 2/s).
	RatePerSecond float64
}

// Annotator calls a local or remote image analysis service.
type Annotator struct {
	client  *http.Client
	baseURL string
	model   string
	limiter *rate.Limiter
}

// analyzeRequest is the /v1/analyze request format.
type analyzeRequest struct {
	Model string `json:"model"`
	Image string `json:"image"`
}

// analyzeResponse is the /v1/analyze response format.
type analyzeResponse struct {
	Caption     string    `json:"caption"`
	Tags        []string  `json:"tags"`
	Objects     []string  `json:"objects"`
	Colors      []string  `json:"colors"`
	People      []string  `json:"people"`
	Mood        string    `json:"mood"`
	Scene       string    `json:"scene"`
	TextContent string    `json:"textContent"`
	Embedding   []float32 `json:"embedding"`
}

// NewAnnotator creates an HTTP annotator.
func NewAnnotator(cfg Config) *Annotator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSecond == 0 {
		cfg.RatePerSecond = DefaultRate
	}

	return &Annotator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
	}
}

// Analyze runs AI analysis on one asset reference.
func (a *Annotator) Analyze(ctx context.Context, assetRef string) (*domain.Annotation, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnnotationFailed, err)
	}

	reqBody := analyzeRequest{
		Model: a.model,
		Image: assetRef,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, a.baseURL+"/v1/analyze", bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		// Transport failure: the service is down or unreachable, which
		// is a different condition than a rejected analysis.
		return nil, fmt.Errorf("%w: %w", domain.ErrAnnotatorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrAnnotationFailed, resp.StatusCode, body)
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrAnnotationFailed, err)
	}

	return &domain.Annotation{
		Caption:     parsed.Caption,
		Tags:        parsed.Tags,
		Objects:     parsed.Objects,
		Colors:      parsed.Colors,
		People:      parsed.People,
		Mood:        parsed.Mood,
		Scene:       parsed.Scene,
		TextContent: parsed.TextContent,
		Embedding:   parsed.Embedding,
	}, nil
}
