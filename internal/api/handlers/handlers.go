package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dkapoor/netsales-dashboard/internal/api/middleware"
	"github.com/dkapoor/netsales-dashboard/internal/export"
	"github.com/dkapoor/netsales-dashboard/internal/pipeline"
)

// genericFetchError is the one failure message surfaced to the presentation
// layer; upstream details stay in the logs.
const genericFetchError = "Failed to fetch data"

// DataHandler proxies the fixed warehouse query.
type DataHandler struct {
	gateway pipeline.Gateway
	log     zerolog.Logger
}

// NewDataHandler creates a new data handler.
func NewDataHandler(gateway pipeline.Gateway, log zerolog.Logger) *DataHandler {
	return &DataHandler{gateway: gateway, log: log}
}

// GetData handles GET /api/data
func (h *DataHandler) GetData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.gateway.FetchRows(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch warehouse rows")
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   genericFetchError,
		})
		return
	}

	// data is always an array, never null, even on an empty result.
	if rows == nil {
		rows = []pipeline.RawRow{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    rows,
	})
}

// DashboardHandler serves the pre-computed aggregates and chart series.
type DashboardHandler struct {
	gateway pipeline.Gateway
	log     zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(gateway pipeline.Gateway, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{gateway: gateway, log: log}
}

// GetSales handles GET /api/dashboard/sales?branch=CODE
// It runs one full fetch-and-transform cycle and returns the view snapshot:
// net-sales time series, summary metrics and the branch list for the filter
// control. An empty result is a ready snapshot with empty=true, not an error.
func (h *DashboardHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	view := pipeline.NewView(h.gateway, pipeline.NetSalesFields)

	if err := view.Refresh(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Failed to refresh sales view")
		middleware.WriteJSON(w, http.StatusBadGateway, view.Snapshot())
		return
	}

	view.SetBranch(r.URL.Query().Get("branch"))
	middleware.WriteJSON(w, http.StatusOK, view.Snapshot())
}

// GetMetrics handles GET /api/dashboard/metrics
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.gateway.FetchRows(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch rows for metrics")
		middleware.WriteError(w, http.StatusBadGateway, genericFetchError)
		return
	}

	metrics := pipeline.Aggregate(rows, pipeline.NetSalesFields, pipeline.ColAUMRMName)
	middleware.WriteJSON(w, http.StatusOK, metrics)
}

// GetAUM handles GET /api/dashboard/aum?limit=N
// The limit truncates raw rows before normalization; the series may hold
// fewer points than valid rows exist past the cap.
func (h *DashboardHandler) GetAUM(w http.ResponseWriter, r *http.Request) {
	limit := pipeline.DefaultCategoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	rows, err := h.gateway.FetchRows(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch rows for AUM series")
		middleware.WriteError(w, http.StatusBadGateway, genericFetchError)
		return
	}

	series := pipeline.BuildCategorySeries(rows, pipeline.ColAUMRMName, pipeline.ColAUMAmount, limit)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"series": series,
		"count":  len(series),
	})
}

// GetBranches handles GET /api/dashboard/branches
func (h *DashboardHandler) GetBranches(w http.ResponseWriter, r *http.Request) {
	rows, err := h.gateway.FetchRows(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch rows for branch list")
		middleware.WriteError(w, http.StatusBadGateway, genericFetchError)
		return
	}

	branches := pipeline.Branches(rows)
	if branches == nil {
		branches = []string{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"branches": branches,
		"count":    len(branches),
	})
}

// ExportHandler writes dashboard snapshots to GCS.
type ExportHandler struct {
	gateway pipeline.Gateway
	bucket  string
	log     zerolog.Logger
}

// NewExportHandler creates a new export handler. An empty bucket disables the
// endpoint.
func NewExportHandler(gateway pipeline.Gateway, bucket string, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{gateway: gateway, bucket: bucket, log: log}
}

// Export handles POST /api/export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.bucket == "" {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Export is not configured")
		return
	}

	view := pipeline.NewView(h.gateway, pipeline.NetSalesFields)
	if err := view.Refresh(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Failed to refresh view for export")
		middleware.WriteError(w, http.StatusBadGateway, genericFetchError)
		return
	}
	view.SetBranch(r.URL.Query().Get("branch"))

	uri, err := export.UploadSnapshot(r.Context(), h.bucket, view.Snapshot())
	if err != nil {
		h.log.Error().Err(err).Str("bucket", h.bucket).Msg("Failed to upload snapshot")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to export snapshot")
		return
	}

	h.log.Info().Str("gcs_uri", uri).Msg("Snapshot exported")
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"gcs_uri": uri,
		"status":  "exported",
	})
}

// Summarizer produces a natural-language reading of the metrics.
type Summarizer interface {
	Summarize(ctx context.Context, metrics pipeline.Metrics) (string, error)
}

// InsightHandler serves the model-written metrics summary.
type InsightHandler struct {
	gateway    pipeline.Gateway
	summarizer Summarizer
	log        zerolog.Logger
}

// NewInsightHandler creates a new insight handler. A nil summarizer disables
// the endpoint.
func NewInsightHandler(gateway pipeline.Gateway, summarizer Summarizer, log zerolog.Logger) *InsightHandler {
	return &InsightHandler{gateway: gateway, summarizer: summarizer, log: log}
}

// GetInsight handles GET /api/dashboard/insight
func (h *InsightHandler) GetInsight(w http.ResponseWriter, r *http.Request) {
	if h.summarizer == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Insight summary is not configured")
		return
	}

	rows, err := h.gateway.FetchRows(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch rows for insight")
		middleware.WriteError(w, http.StatusBadGateway, genericFetchError)
		return
	}

	metrics := pipeline.Aggregate(rows, pipeline.NetSalesFields, pipeline.ColAUMRMName)
	summary, err := h.summarizer.Summarize(r.Context(), metrics)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate insight")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to generate insight")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"insight": summary,
	})
}
