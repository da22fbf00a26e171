package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"scholartrack/internal/dashboard"

	"github.com/sirupsen/logrus"
)

const archiveTimeout = 10 * time.Second

// serveExport sends the file as a download. When an archive is configured a
// copy is uploaded first; a failed upload is logged and the download still
// goes out.
func (s *Service) serveExport(w http.ResponseWriter, r *http.Request, file dashboard.File) {
	entry := s.logger.WithFields(logrus.Fields{
		"request_id": requestIDFromContext(r.Context()),
		"file":       file.Name,
		"rows":       file.Rows,
	})

	if s.archive != nil {
		ctx, cancel := context.WithTimeout(r.Context(), archiveTimeout)
		key, err := s.archive.Store(ctx, file.Name, file.ContentType, file.Body)
		cancel()
		if err != nil {
			entry.WithError(err).Error("failed to archive export")
		} else {
			entry.WithField("key", key).Info("export archived")
		}
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(file.Body); err != nil {
		entry.WithError(err).Warn("failed to write export")
	}
}
