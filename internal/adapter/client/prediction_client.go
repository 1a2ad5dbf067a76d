package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PredictRequest is the body of a prediction request
type PredictRequest struct {
	Data map[string]any `json:"data"`
}

// PredictionResult is the verdict for one request
type PredictionResult struct {
	Backend    string `json:"backend"`
	Model      string `json:"model"`
	Prediction int    `json:"prediction"`
	RequestID  string `json:"-"`
}

// BackendInfo describes a backend served by the API
type BackendInfo struct {
	Backend  string   `json:"backend"`
	Model    string   `json:"model"`
	Features []string `json:"features"`
	Scaled   bool     `json:"scaled"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// APIError is an error answered by the API
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API returned status %d", e.StatusCode)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Details) > 0 {
		msg += " (" + strings.Join(e.Details, ", ") + ")"
	}
	return msg
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
	Meta *struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

// PredictionClient is an HTTP client for the prediction API
type PredictionClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPredictionClient creates a new prediction API client
func NewPredictionClient(baseURL string, timeout time.Duration) *PredictionClient {
	return &PredictionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict asks backend for a verdict on answers
func (c *PredictionClient) Predict(ctx context.Context, backend string, answers map[string]any) (*PredictionResult, error) {
	body, err := json.Marshal(PredictRequest{Data: answers})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result PredictionResult
	env, err := c.doEnvelope(ctx, http.MethodPost, "/api/v1/predict/"+url.PathEscape(backend), body, &result)
	if err != nil {
		return nil, err
	}
	if env.Meta != nil {
		result.RequestID = env.Meta.RequestID
	}
	return &result, nil
}

// Backends lists the backends served by the API
func (c *PredictionClient) Backends(ctx context.Context) ([]BackendInfo, error) {
	var result []BackendInfo
	if _, err := c.doEnvelope(ctx, http.MethodGet, "/api/v1/backends", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Health checks the API health
func (c *PredictionClient) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &result, &APIError{StatusCode: resp.StatusCode, Message: result.Status}
	}

	return &result, nil
}

// Ready checks if the API is ready
func (c *PredictionClient) Ready(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "/ready", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "not ready"}
	}

	return nil
}

func (c *PredictionClient) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doEnvelope sends a request and decodes the envelope's data into out
func (c *PredictionClient) doEnvelope(ctx context.Context, method, path string, body []byte, out any) (*envelope, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return nil, apiErr
	}

	if len(env.Data) == 0 {
		return nil, errors.New("response has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, fmt.Errorf("failed to decode response data: %w", err)
	}
	return &env, nil
}
