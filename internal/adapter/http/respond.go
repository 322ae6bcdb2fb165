package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ads-gateway/internal/core/port"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps core errors onto HTTP statuses. "Campaign not found"
// and "no usable accounts" stay distinguishable in the message: the former
// means a wrong id, the latter an account-configuration problem.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var (
		notFound   *port.CampaignNotFoundError
		validation *port.ValidationError
		upstream   *port.UpstreamError
	)
	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Error()})
	case errors.Is(err, port.ErrMissingBudgetHandle):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, port.ErrNoUsableAccounts):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &upstream):
		status := upstream.Status
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		h.logger.Error("upstream error", slog.Any("error", err))
		writeJSON(w, status, errorResponse{Error: upstream.Error()})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
