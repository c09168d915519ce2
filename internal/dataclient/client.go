// Package dataclient consumes the dashboard's own /api/data endpoint, for
// tooling that talks to a running gateway instead of the warehouse directly.
package dataclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dkapoor/netsales-dashboard/internal/pipeline"
	"github.com/dkapoor/netsales-dashboard/internal/warehouse"
)

// Client is an HTTP implementation of pipeline.Gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the gateway at baseURL (scheme://host[:port]).
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchRows calls GET /api/data. The canonical body is the
// {success, data} wrapper; a bare JSON array is tolerated for backward
// compatibility. Non-2xx statuses and success=false both map to
// warehouse.ErrUpstreamError, transport failures to ErrUpstreamUnavailable.
func (c *Client) FetchRows(ctx context.Context) ([]pipeline.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/data", nil)
	if err != nil {
		return nil, fmt.Errorf("FetchRows: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("FetchRows: %w: %v", warehouse.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("FetchRows: read body: %w: %v", warehouse.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("FetchRows: status %d: %w", resp.StatusCode, warehouse.ErrUpstreamError)
	}

	return decodeRows(body)
}

func decodeRows(body []byte) ([]pipeline.RawRow, error) {
	trimmed := bytes.TrimSpace(body)

	// Legacy shape: a bare array in place of the wrapper object.
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var bare []map[string]any
		if err := json.Unmarshal(trimmed, &bare); err != nil {
			return nil, fmt.Errorf("decodeRows: invalid array body: %w: %v", warehouse.ErrUpstreamError, err)
		}
		return toRawRows(bare), nil
	}

	var envelope struct {
		Success *bool            `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decodeRows: invalid body: %w: %v", warehouse.ErrUpstreamError, err)
	}
	if envelope.Success != nil && !*envelope.Success {
		return nil, fmt.Errorf("decodeRows: success=false: %w", warehouse.ErrUpstreamError)
	}

	return toRawRows(envelope.Data), nil
}

func toRawRows(maps []map[string]any) []pipeline.RawRow {
	rows := make([]pipeline.RawRow, len(maps))
	for i, m := range maps {
		rows[i] = pipeline.RawRow(m)
	}
	return rows
}
