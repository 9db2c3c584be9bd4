// Package api serves analysed deployments as a read-only JSON API.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/GilRaitses/wake-sub000/internal/db"
	"github.com/GilRaitses/wake-sub000/internal/dive"
	"github.com/GilRaitses/wake-sub000/internal/units"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db    *db.DB
	units string
}

func NewServer(database *db.DB, depthUnits string) *Server {
	return &Server{
		db:    database,
		units: depthUnits,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/deployments", s.listDeployments)
	mux.HandleFunc("/api/dives", s.showDives)
	mux.HandleFunc("/api/model", s.showModel)
	mux.HandleFunc("/api/surface", s.showSurface)
	mux.HandleFunc("/api/rollup", s.showRollup)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// deploymentParam extracts and validates the ?deployment query parameter.
func (s *Server) deploymentParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("deployment")
	if id == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'deployment' parameter")
		return "", false
	}
	return id, true
}

func (s *Server) listDeployments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	deps, err := s.db.ListDeployments(r.Context())
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to list deployments: %v", err))
		return
	}
	if deps == nil {
		deps = []db.Deployment{}
	}

	if err := json.NewEncoder(w).Encode(deps); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write deployments")
	}
}

// convertRecordDepths applies display-unit conversion to the depth and
// rate fields of a dive record.
func (s *Server) convertRecordDepths(r dive.Record) dive.Record {
	r.MaxDepth = units.ConvertDepth(r.MaxDepth, s.units)
	r.DescentRate = units.ConvertRate(r.DescentRate, s.units)
	r.AscentRate = units.ConvertRate(r.AscentRate, s.units)
	r.Foraging.DepthVariation = units.ConvertDepth(r.Foraging.DepthVariation, s.units)
	return r
}

func (s *Server) showDives(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, ok := s.deploymentParam(w, r)
	if !ok {
		return
	}

	records, err := s.db.DiveRecords(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve dive records: %v", err))
		return
	}

	// Zero dives is a valid result, not an error: distinguish "no dives
	// found" from "bad input" by returning an empty list with 200.
	out := make([]dive.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, s.convertRecordDepths(rec))
	}

	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write dive records")
	}
}

func (s *Server) showModel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, ok := s.deploymentParam(w, r)
	if !ok {
		return
	}

	model, insights, err := s.db.GetModel(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound,
			fmt.Sprintf("Failed to retrieve energetic model: %v", err))
		return
	}

	model.OptimalForagingDepth = units.ConvertDepth(model.OptimalForagingDepth, s.units)
	model.P50Depth = units.ConvertDepth(model.P50Depth, s.units)
	model.P85Depth = units.ConvertDepth(model.P85Depth, s.units)
	model.P98Depth = units.ConvertDepth(model.P98Depth, s.units)

	resp := struct {
		*dive.EnergeticModel
		Insights []string `json:"insights"`
	}{model, insights}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write energetic model")
	}
}

func (s *Server) showSurface(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, ok := s.deploymentParam(w, r)
	if !ok {
		return
	}

	summary, err := s.db.GetSurfaceSummary(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound,
			fmt.Sprintf("Failed to retrieve surface summary: %v", err))
		return
	}

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write surface summary")
	}
}

func (s *Server) showRollup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, ok := s.deploymentParam(w, r)
	if !ok {
		return
	}

	stats, err := s.db.BehaviorRollup(r.Context(), id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to compute rollup: %v", err))
		return
	}
	if stats == nil {
		stats = []db.BehaviorStats{}
	}

	for i := range stats {
		stats[i].MeanDepth = units.ConvertDepth(stats[i].MeanDepth, s.units)
		stats[i].MaxDepth = units.ConvertDepth(stats[i].MaxDepth, s.units)
	}

	if err := json.NewEncoder(w).Encode(stats); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write rollup")
	}
}
