package server

import (
	"net/http"

	"scholartrack/internal/dashboard"
	"scholartrack/pkg/types"
)

func (s *Service) handleListActivity(w http.ResponseWriter, r *http.Request) {
	state, err := resolveViewState[dashboard.ActivityFilter](s, r, cookieActivityView, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.dash.Activity(state.Filter, state.Sort)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	state.Sort = view.Sort
	writeViewState(s, w, cookieActivityView, state)

	s.writeJSON(w, r, http.StatusOK, listResponse[types.ActivityEntry, dashboard.ActivityFilter]{View: view, Filter: state.Filter})
}

func (s *Service) handleRecordActivity(w http.ResponseWriter, r *http.Request) {
	var in types.ActivityInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, err := s.dash.RecordActivity(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, entry)
}

func (s *Service) handleExportActivity(w http.ResponseWriter, r *http.Request) {
	state, err := resolveViewState[dashboard.ActivityFilter](s, r, cookieActivityView, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	file, err := s.dash.ExportActivity(dashboard.FormatReport, state.Filter, state.Sort)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.serveExport(w, r, file)
}
