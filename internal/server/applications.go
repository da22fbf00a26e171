package server

import (
	"net/http"

	"scholartrack/internal/dashboard"
	"scholartrack/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListApplications(w http.ResponseWriter, r *http.Request) {
	state, err := resolveViewState[dashboard.ApplicationFilter](s, r, cookieApplicationView, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.dash.Applications(state.Filter, state.Sort)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	state.Sort = view.Sort
	writeViewState(s, w, cookieApplicationView, state)

	s.writeJSON(w, r, http.StatusOK, listResponse[types.Application, dashboard.ApplicationFilter]{View: view, Filter: state.Filter})
}

func (s *Service) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.dash.Application(flow.Param(r.Context(), "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, app)
}

func (s *Service) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var in types.ApplicationInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.dash.AddApplication(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, app)
}

func (s *Service) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	var in types.ApplicationInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.dash.UpdateApplication(flow.Param(r.Context(), "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, app)
}

func (s *Service) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.DeleteApplication(flow.Param(r.Context(), "id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	var in types.DocumentInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.dash.AddDocument(flow.Param(r.Context(), "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, doc)
}

func (s *Service) handleRemoveDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.dash.RemoveDocument(flow.Param(ctx, "id"), flow.Param(ctx, "docID")); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var in types.InterviewInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.dash.ScheduleInterview(flow.Param(r.Context(), "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, app)
}

func (s *Service) handleSelectApplications(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	state := readViewState[dashboard.ApplicationFilter](s, r, cookieApplicationView)

	selected, err := s.dash.SelectApplications(req.Op, req.ID, state.Filter, state.Sort)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, selectionResponse{Selected: selected})
}

func (s *Service) handleBulkApplications(w http.ResponseWriter, r *http.Request) {
	var req dashboard.BulkRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.dash.BulkApplications(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Service) handleExportApplications(format dashboard.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := resolveViewState[dashboard.ApplicationFilter](s, r, cookieApplicationView, false)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		file, err := s.dash.ExportApplications(format, state.Filter, state.Sort)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.serveExport(w, r, file)
	}
}
