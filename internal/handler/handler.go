package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/angeloszaimis/wake-web/internal/state"
	"github.com/angeloszaimis/wake-web/internal/status"
)

type StatusHandler struct {
	logger   *slog.Logger
	reporter *status.Reporter
	state    *state.State
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowRead(w, r) {
		return
	}
	h.logRequest(r)

	var page bytes.Buffer
	if err := h.reporter.Render(&page); err != nil {
		h.logger.Error("Failed to render status page", slog.Any("err", err))
		http.Error(w, "status page unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page.Bytes())
}

// ServeJSON serves the status report as JSON.
func (h *StatusHandler) ServeJSON(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	h.logRequest(r)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(h.reporter.Report()); err != nil {
		h.logger.Warn("Failed to write status report", slog.Any("err", err))
	}
}

func (h *StatusHandler) logRequest(r *http.Request) {
	h.logger.Debug("Received request",
		slog.String("from", extractClientIP(r)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("user_agent", r.UserAgent()))
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}

	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func NewStatusHandler(logger *slog.Logger, reporter *status.Reporter, st *state.State) *StatusHandler {
	return &StatusHandler{
		logger:   logger,
		reporter: reporter,
		state:    st,
	}
}
