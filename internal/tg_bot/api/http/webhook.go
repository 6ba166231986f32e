// Package http exposes the inbound HTTP surface of the bot: the Telegram
// webhook, a health check and the Prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"io"
	"net/http"
	"time"
)

// WebhookPath is where Telegram posts updates.
const WebhookPath = "/api/webhook"

// maxUpdateSize limits the body of one webhook request.
const maxUpdateSize = 1 << 20

// UpdateHandler processes one Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// Handler serves the webhook endpoints.
type Handler struct {
	updates UpdateHandler
}

// NewHandler creates a Handler passing decoded updates to updates.
func NewHandler(updates UpdateHandler) *Handler {
	return &Handler{updates: updates}
}

// NewRouter builds the chi router of the bot.
// Arguments:
//   - updates: processor of webhook updates.
//   - metrics: handler mounted at /metrics, skipped when nil.
//
// Returns the router.
func NewRouter(updates UpdateHandler, metrics http.Handler) chi.Router {
	h := NewHandler(updates)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	router.Get("/", h.Health)
	router.Post(WebhookPath, h.Webhook)
	if metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics)
	}
	return router
}

// Health reports that the process is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Webhook decodes one update and processes it before acknowledging, so
// Telegram redelivers nothing that was accepted. Malformed JSON is a 400.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateSize))
	if err != nil {
		logrus.WithError(err).Error("Failed to read webhook body")
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid JSON"})
		return
	}
	var update tgbotapi.Update
	if err = json.Unmarshal(body, &update); err != nil {
		logrus.WithError(err).Warn("Received malformed webhook payload")
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid JSON"})
		return
	}

	// Telegram may drop the connection while the handler still runs.
	h.updates.HandleUpdate(context.WithoutCancel(r.Context()), update)
	writeJSON(w, http.StatusOK, struct{}{})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to write response")
	}
}

// requestLogger logs every request through logrus.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		}).Debug("HTTP request served")
	})
}
