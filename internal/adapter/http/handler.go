package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ads-gateway/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds a GatewayUseCase to execute business logic and a logger
// for structured logging. Routes are registered on a chi.Router for
// convenient method handling.
type Handler struct {
	svc    port.GatewayUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. It accepts a
// GatewayUseCase implementation and a logger. The route layout mirrors the
// gateway's public surface: one unified action dispatcher plus direct
// routes per operation.
func NewHandler(svc port.GatewayUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()
	r.Use(h.requestID)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/execute", h.handleExecute)

		r.Post("/bid-budget/update", h.handleBidBudgetUpdate)
		r.Get("/bid-budget/status", h.handleBidBudgetStatus)

		r.Get("/campaign/performance", h.handleCampaignPerformance)
		r.Get("/campaign/metrics", h.handleCampaignMetrics)

		r.Get("/creative/performance", h.handleCreativePerformance)
		r.Get("/creative/metrics", h.handleCreativeMetrics)

		r.Get("/accounts", h.handleListAccounts)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/all", h.handleListAllCampaigns)
	})
	r.Get("/health", h.handleHealth)

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// requestID tags every request with a correlation id, echoed in the
// X-Request-ID response header and attached to access log lines.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		h.logger.Debug("request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
