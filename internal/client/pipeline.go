// Package client provides an HTTP client for the Budgetly pipeline API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"budgetly/internal/calendar"
	"budgetly/internal/services"
)

// PipelineClient submits import batches to a running server.
type PipelineClient struct {
	baseURL    string
	apiKey     string
	ownerID    string
	httpClient *http.Client
}

// NewPipelineClient creates a new pipeline API client. ownerID may be empty
// for the single-user timeline.
func NewPipelineClient(baseURL, apiKey, ownerID string, httpClient *http.Client) *PipelineClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PipelineClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		ownerID:    ownerID,
		httpClient: httpClient,
	}
}

// Import posts records for target and returns the server's result.
func (c *PipelineClient) Import(ctx context.Context, target calendar.YearMonth, records []services.ImportRecord) (*services.ImportResult, error) {
	body := struct {
		Year    int                     `json:"year"`
		Month   int                     `json:"month"`
		Records []services.ImportRecord `json:"records"`
	}{Year: target.Year, Month: int(target.Month), Records: records}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling records: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/pipeline/import", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	if c.ownerID != "" {
		req.Header.Set("X-Owner-ID", c.ownerID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("importing records: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error.Code != "" {
			return nil, fmt.Errorf("importing records: status %d: %s: %s",
				resp.StatusCode, errBody.Error.Code, errBody.Error.Message)
		}
		return nil, fmt.Errorf("importing records: unexpected status %d", resp.StatusCode)
	}

	var result services.ImportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding import response: %w", err)
	}
	return &result, nil
}
