package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/client"
	"github.com/closetrackhq/closetrack/internal/dashboard"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.stats)
}

type statsResponse struct {
	TransactionsByStatus    map[transaction.Status]int `json:"transactionsByStatus"`
	ClientsByType           map[client.Type]int        `json:"clientsByType"`
	ClientsByStatus         map[client.Status]int      `json:"clientsByStatus"`
	ActiveTransactions      int                        `json:"activeTransactions"`
	AverageDocumentProgress int                        `json:"averageDocumentProgress"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	stats, err := h.svc.Stats(r.Context(), user)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := statsResponse{
		TransactionsByStatus:    stats.TransactionsByStatus,
		ClientsByType:           stats.ClientsByType,
		ClientsByStatus:         stats.ClientsByStatus,
		ActiveTransactions:      stats.ActiveTransactions,
		AverageDocumentProgress: stats.AverageDocumentProgress,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
