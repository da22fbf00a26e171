package server

import (
	"net/http"

	"scholartrack/internal/dashboard"
	"scholartrack/internal/query"
	"scholartrack/pkg/types"
)

const (
	cookieScholarshipView = "st_scholarship_view"
	cookieApplicationView = "st_application_view"
	cookieActivityView    = "st_activity_view"

	viewCookieMaxAge = 60 * 60 * 24 * 30
)

var viewKinds = map[string]types.Kind{
	cookieScholarshipView: types.KindScholarships,
	cookieApplicationView: types.KindApplications,
	cookieActivityView:    types.KindActivity,
}

// viewState is the filter and sort a client last looked at. It lives in a
// signed and encrypted cookie so list, selection and export requests agree on
// what "the current view" is.
type viewState[F any] struct {
	Filter F
	Sort   query.Sort
}

type listResponse[T, F any] struct {
	dashboard.View[T]
	Filter F `json:"filter"`
}

func readViewState[F any](s *Service, r *http.Request, name string) viewState[F] {
	var v viewState[F]

	cookie, err := r.Cookie(name)
	if err != nil {
		return v
	}

	if err := s.cookie.Decode(name, cookie.Value, &v); err != nil {
		s.logger.WithError(err).WithField("cookie", name).Debug("discarding unreadable view state")
		return viewState[F]{}
	}

	if v.Sort.Key != "" && !s.dash.SupportsSort(viewKinds[name], v.Sort.Key) {
		s.logger.WithField("cookie", name).WithField("sort", v.Sort.Key).Debug("discarding stored sort key")
		v.Sort = query.Sort{}
	}

	return v
}

func writeViewState[F any](s *Service, w http.ResponseWriter, name string, v viewState[F]) {
	encoded, err := s.cookie.Encode(name, v)
	if err != nil {
		s.logger.WithError(err).WithField("cookie", name).Warn("failed to encode view state")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   viewCookieMaxAge,
		HttpOnly: true,
		Secure:   s.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

// resolveViewState layers the query string over the stored state. Filter
// keys present in the query replace the stored value. With toggle set, a
// sort key without dir behaves like clicking a column header.
func resolveViewState[F any](s *Service, r *http.Request, name string, toggle bool) (viewState[F], error) {
	v := readViewState[F](s, r, name)
	q := r.URL.Query()

	if err := decoder.Decode(&v.Filter, q); err != nil {
		return v, types.NewValidationError("query", err.Error())
	}

	key, dir := q.Get("sort"), q.Get("dir")
	if key != "" && !s.dash.SupportsSort(viewKinds[name], key) {
		return v, types.NewValidationError("sort", "is not a sortable column")
	}

	switch {
	case key != "" && dir != "":
		v.Sort = query.Sort{Key: key, Direction: query.ParseDirection(dir)}
	case key != "" && toggle:
		v.Sort = v.Sort.Select(key)
	case key != "":
		v.Sort = query.Sort{Key: key, Direction: query.Ascending}
	case dir != "":
		v.Sort.Direction = query.ParseDirection(dir)
	}

	return v, nil
}
