package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"scholartrack/internal/query"
	"scholartrack/pkg/types"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).WithField("request_id", requestIDFromContext(r.Context())).Error("failed to encode response")
	}
}

func (s *Service) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return types.NewValidationError("body", fmt.Sprintf("is not valid JSON: %s", err))
	}
	return nil
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a 500.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, types.ErrInvalidRecord), errors.Is(err, query.ErrUnknownSortKey):
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrNotFound):
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.WithError(err).WithField("request_id", requestIDFromContext(r.Context())).Error("request failed")
		s.internalServerError(w, r)
	}
}

func (s *Service) internalServerError(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (s *Service) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
}

func (s *Service) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.dash.Overview())
}
