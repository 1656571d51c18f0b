package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JonMunkholm/industrialdepot/internal/core"
	"github.com/JonMunkholm/industrialdepot/internal/logging"
)

// MaterialsResponse lists the materials offered by the calculator.
type MaterialsResponse struct {
	Materials []core.MaterialOption `json:"materials"`
	Count     int                   `json:"count"`
}

// LookupResponse is a matched parameter record with display rows.
type LookupResponse struct {
	Match      string                  `json:"match"`
	Record     core.ParameterRecord    `json:"record"`
	Parameters []core.DisplayParameter `json:"parameters"`
}

// StatusResponse summarizes the loaded tables.
type StatusResponse struct {
	Tables    []core.TableStatus `json:"tables"`
	Materials int                `json:"materials"`
	Partial   bool               `json:"partial,omitempty"`
	Duration  string             `json:"duration,omitempty"`
}

// handleMaterials returns the cut table materials with display names.
func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	options := s.service.MaterialOptions()
	if options == nil {
		options = []core.MaterialOption{}
	}
	writeJSON(w, http.StatusOK, MaterialsResponse{Materials: options, Count: len(options)})
}

// handleLookup returns the best record of a table for a material and thickness.
func (s *Server) handleLookup(kind core.TableKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		material, thickness, err := parseLookupQuery(r)
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}

		rec, match := s.service.Lookup(kind, material, thickness)
		if match == core.MatchNone {
			s.respondError(w, r, core.ErrNoMatch, http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, LookupResponse{
			Match:      match.String(),
			Record:     rec,
			Parameters: core.DisplayParameters(rec, s.terms),
		})
	}
}

// handleCalculate validates a calculator submission and returns the cut
// parameters. A valid request without a matching record is not an error.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCalculation(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.service.Calculate(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleStatus reports what each table holds.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Tables:    s.service.Status(),
		Materials: len(s.service.AvailableMaterials()),
	})
}

// handleRefresh re-reads every source. Unavailable sources leave empty
// tables and are reported in the status rather than failing the request.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := s.service.Refresh(r.Context())
	if errors.Is(err, core.ErrRefreshBusy) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn("refresh incomplete", "error", err)
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Tables:    s.service.Status(),
		Materials: len(s.service.AvailableMaterials()),
		Partial:   err != nil,
		Duration:  time.Since(start).Round(time.Millisecond).String(),
	})
}
