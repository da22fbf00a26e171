package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"scholartrack/internal/dashboard"
	"scholartrack/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// Archiver receives a copy of every export served
type Archiver interface {
	Store(ctx context.Context, name, contentType string, body []byte) (string, error)
}

type Service struct {
	logger  logrus.FieldLogger
	config  *types.Config
	dash    *dashboard.Dashboard
	archive Archiver
	cookie  *securecookie.SecureCookie

	handler http.Handler
	server  *http.Server
}

// New wires the API routes. archive may be nil.
func New(config *types.Config, logger logrus.FieldLogger, dash *dashboard.Dashboard, archive Archiver) *Service {
	mux := flow.New()

	s := &Service{
		logger:  logger,
		config:  config,
		dash:    dash,
		archive: archive,
		cookie:  newViewCookie(config, logger),
		handler: mux,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	mux.NotFound = http.HandlerFunc(s.handleNotFound)
	mux.MethodNotAllowed = http.HandlerFunc(s.handleMethodNotAllowed)
	s.buildRouter(mux)

	return s
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.RecoverMiddleware)
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.NoStore)

		r.HandleFunc("/api/dashboard", s.handleDashboard, http.MethodGet)

		// flow matches in declaration order, so fixed paths come before :id
		r.HandleFunc("/api/scholarships", s.handleListScholarships, http.MethodGet)
		r.HandleFunc("/api/scholarships", s.handleCreateScholarship, http.MethodPost)
		r.HandleFunc("/api/scholarships/selection", s.handleSelectScholarships, http.MethodPost)
		r.HandleFunc("/api/scholarships/bulk", s.handleBulkScholarships, http.MethodPost)
		r.HandleFunc("/api/scholarships/export.xlsx", s.handleExportScholarships(dashboard.FormatWorkbook), http.MethodGet)
		r.HandleFunc("/api/scholarships/export.pdf", s.handleExportScholarships(dashboard.FormatReport), http.MethodGet)
		r.HandleFunc("/api/scholarships/:id", s.handleGetScholarship, http.MethodGet)
		r.HandleFunc("/api/scholarships/:id", s.handleUpdateScholarship, http.MethodPut)
		r.HandleFunc("/api/scholarships/:id", s.handleDeleteScholarship, http.MethodDelete)

		r.HandleFunc("/api/applications", s.handleListApplications, http.MethodGet)
		r.HandleFunc("/api/applications", s.handleCreateApplication, http.MethodPost)
		r.HandleFunc("/api/applications/selection", s.handleSelectApplications, http.MethodPost)
		r.HandleFunc("/api/applications/bulk", s.handleBulkApplications, http.MethodPost)
		r.HandleFunc("/api/applications/export.xlsx", s.handleExportApplications(dashboard.FormatWorkbook), http.MethodGet)
		r.HandleFunc("/api/applications/export.pdf", s.handleExportApplications(dashboard.FormatReport), http.MethodGet)
		r.HandleFunc("/api/applications/:id", s.handleGetApplication, http.MethodGet)
		r.HandleFunc("/api/applications/:id", s.handleUpdateApplication, http.MethodPut)
		r.HandleFunc("/api/applications/:id", s.handleDeleteApplication, http.MethodDelete)
		r.HandleFunc("/api/applications/:id/documents", s.handleAddDocument, http.MethodPost)
		r.HandleFunc("/api/applications/:id/documents/:docID", s.handleRemoveDocument, http.MethodDelete)
		r.HandleFunc("/api/applications/:id/interview", s.handleScheduleInterview, http.MethodPost)

		r.HandleFunc("/api/activity", s.handleListActivity, http.MethodGet)
		r.HandleFunc("/api/activity", s.handleRecordActivity, http.MethodPost)
		r.HandleFunc("/api/activity/export.pdf", s.handleExportActivity, http.MethodGet)
	})
}

func newViewCookie(config *types.Config, logger logrus.FieldLogger) *securecookie.SecureCookie {
	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	if len(hashKey) == 0 {
		logger.Warn("COOKIE_HASH_KEY not set, view state will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(32)
		blockKey = securecookie.GenerateRandomKey(32)
	}

	return securecookie.New(hashKey, blockKey)
}
