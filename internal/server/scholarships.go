package server

import (
	"errors"
	"net/http"

	"scholartrack/internal/dashboard"
	"scholartrack/internal/selection"
	"scholartrack/pkg/types"

	"github.com/alexedwards/flow"
)

type selectionRequest struct {
	Op selection.Op `json:"op"`
	ID string       `json:"id"`
}

type selectionResponse struct {
	Selected []string `json:"selected"`
}

type scholarshipResponse struct {
	Scholarship types.Scholarship `json:"scholarship"`
	Sync        types.SyncState   `json:"sync"`
}

type syncFailedResponse struct {
	Error       string            `json:"error"`
	Scholarship types.Scholarship `json:"scholarship"`
	Sync        types.SyncState   `json:"sync"`
}

func (s *Service) handleListScholarships(w http.ResponseWriter, r *http.Request) {
	state, err := resolveViewState[dashboard.ScholarshipFilter](s, r, cookieScholarshipView, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.dash.Scholarships(state.Filter, state.Sort)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	state.Sort = view.Sort
	writeViewState(s, w, cookieScholarshipView, state)

	s.writeJSON(w, r, http.StatusOK, listResponse[types.Scholarship, dashboard.ScholarshipFilter]{View: view, Filter: state.Filter})
}

func (s *Service) handleGetScholarship(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	scholarship, err := s.dash.Scholarship(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, scholarshipResponse{Scholarship: scholarship, Sync: s.dash.SyncState(id)})
}

func (s *Service) handleCreateScholarship(w http.ResponseWriter, r *http.Request) {
	var in types.ScholarshipInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	scholarship, sync, err := s.dash.AddScholarship(r.Context(), in)
	if errors.Is(err, types.ErrSyncRejected) {
		s.writeJSON(w, r, http.StatusBadGateway, syncFailedResponse{
			Error:       err.Error(),
			Scholarship: scholarship,
			Sync:        sync,
		})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, scholarshipResponse{Scholarship: scholarship, Sync: sync})
}

func (s *Service) handleUpdateScholarship(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	var in types.ScholarshipInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	scholarship, err := s.dash.UpdateScholarship(id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, scholarshipResponse{Scholarship: scholarship, Sync: s.dash.SyncState(id)})
}

func (s *Service) handleDeleteScholarship(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.DeleteScholarship(flow.Param(r.Context(), "id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleSelectScholarships(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	state := readViewState[dashboard.ScholarshipFilter](s, r, cookieScholarshipView)

	selected, err := s.dash.SelectScholarships(req.Op, req.ID, state.Filter, state.Sort)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, selectionResponse{Selected: selected})
}

func (s *Service) handleBulkScholarships(w http.ResponseWriter, r *http.Request) {
	var req dashboard.BulkRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.dash.BulkScholarships(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Service) handleExportScholarships(format dashboard.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := resolveViewState[dashboard.ScholarshipFilter](s, r, cookieScholarshipView, false)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		file, err := s.dash.ExportScholarships(format, state.Filter, state.Sort)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.serveExport(w, r, file)
	}
}
