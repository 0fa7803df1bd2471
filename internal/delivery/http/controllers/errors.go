package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
)

// writeError answers with the status mapped from err. Server-side failures are logged.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := helpers.StatusForError(err)
	if status >= http.StatusInternalServerError {
		middleware.LoggerFromContext(r.Context(), logger).ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, err.Error())
}
