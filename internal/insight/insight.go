// Package insight talks to the external generative narrative service. Every
// call is best-effort: callers fall back to the fixed recommendation tables
// on any failure and never block result emission on this service.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"neuroscreen/internal/models"
)

// Service requests narrative text from the insight endpoint.
type Service struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewService builds a client. An empty base URL disables the service; every
// call then fails fast and callers use their fixed-table fallback.
func NewService(baseURL string, timeout time.Duration, log *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type recommendationRequest struct {
	Score         int           `json:"score"`
	Domain        models.Domain `json:"domain"`
	ResponseCount int           `json:"responseCount"`
}

type recommendationResponse struct {
	Recommendations []string `json:"recommendations"`
}

// Recommendations asks the service for narrative recommendation text for a
// finalized score.
func (s *Service) Recommendations(ctx context.Context, score int, domain models.Domain, responseCount int) ([]string, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("insight service not configured")
	}

	var out recommendationResponse
	err := s.post(ctx, "/v1/recommendations", recommendationRequest{
		Score:         score,
		Domain:        domain,
		ResponseCount: responseCount,
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Recommendations) == 0 {
		return nil, fmt.Errorf("insight service returned no recommendations")
	}
	return out.Recommendations, nil
}

type insightsRequest struct {
	Results []models.AssessmentResult `json:"results"`
}

type insightsResponse struct {
	Narrative string `json:"narrative"`
}

// Insights submits a result list for a free-form narrative summary.
func (s *Service) Insights(ctx context.Context, results []models.AssessmentResult) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("insight service not configured")
	}

	var out insightsResponse
	if err := s.post(ctx, "/v1/insights", insightsRequest{Results: results}, &out); err != nil {
		return "", err
	}
	return out.Narrative, nil
}

func (s *Service) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode insight request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build insight request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("insight request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("insight service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode insight response: %w", err)
	}
	return nil
}
