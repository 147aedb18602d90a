// Package server exposes the projection engine as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lufenny/rentvsbuy/internal/projection"
	"github.com/lufenny/rentvsbuy/internal/sweep"
	"github.com/lufenny/rentvsbuy/pkg/constants"
	"github.com/lufenny/rentvsbuy/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the projection API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Projection API endpoint
	mux.HandleFunc("/api/projection", h.handleProjection)

	// Sensitivity sweep endpoint
	mux.HandleFunc("/api/sweep", h.handleSweep)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type projectionRequest struct {
	Name        string                 `json:"name" yaml:"name"`
	Assumptions projection.Assumptions `json:"assumptions" yaml:"assumptions"`
}

type projectionResponse struct {
	Name          string                 `json:"name"`
	Assumptions   projection.Assumptions `json:"assumptions"`
	AnnualPayment float64                `json:"annualPayment"`
	Rows          []projection.Row       `json:"rows"`
	Summary       projection.Summary     `json:"summary"`
	CSV           string                 `json:"csv"`
	Duration      string                 `json:"duration"`
}

type sweepRequest struct {
	Assumptions projection.Assumptions `json:"assumptions" yaml:"assumptions"`
	Ranges      []sweep.Range          `json:"ranges" yaml:"ranges"`
}

type sweepResponse struct {
	Points   []sweep.Point `json:"points"`
	Duration string        `json:"duration"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req projectionRequest
	if !h.decodeRequest(w, r, &req, "server.handleProjection") {
		return
	}

	name := req.Name
	if name == "" {
		name = "baseline"
	}

	result, err := projection.Run(h.logger, name, req.Assumptions)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, projectionResponse{
		Name:          result.Name,
		Assumptions:   result.Assumptions,
		AnnualPayment: result.AnnualPayment,
		Rows:          result.Rows,
		Summary:       result.Summary,
		CSV:           output.ProjectionCsv(result),
		Duration:      time.Since(start).String(),
	})
}

func (h *handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req sweepRequest
	if !h.decodeRequest(w, r, &req, "server.handleSweep") {
		return
	}

	points, err := sweep.Run(h.logger, req.Assumptions, req.Ranges)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, sweepResponse{
		Points:   points,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeRequest reads a size-limited body and decodes it as YAML when the
// Content-Type says so, JSON otherwise. It writes the error response
// itself and reports whether decoding succeeded.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize))
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err))
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "yaml") || strings.Contains(contentType, "yml") {
		err = yaml.Unmarshal(body, dst)
	} else {
		err = json.Unmarshal(body, dst)
	}
	if err != nil {
		h.logger.Debug("failed to decode request body",
			zap.String("op", op),
			zap.Error(err),
		)
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return false
	}
	return true
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
