package checklist

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/checklist"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Handler struct {
	svc          *checklist.Service
	transactions *transaction.Service
}

func NewHandler(svc *checklist.Service, transactions *transaction.Service) *Handler {
	return &Handler{svc: svc, transactions: transactions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{transactionId}", h.get)
	r.Patch("/{transactionId}/{itemId}", h.toggleItem)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionId"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	if _, err := h.transactions.Authorize(r.Context(), transactionID, user); err != nil {
		writeError(w, err)
		return
	}

	list, err := h.svc.Get(r.Context(), transactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(list)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type toggleItemRequest struct {
	Completed bool `json:"completed"`
}

func (h *Handler) toggleItem(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionId"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	itemID := chi.URLParam(r, "itemId")

	var req toggleItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	if _, err := h.transactions.Authorize(r.Context(), transactionID, user); err != nil {
		writeError(w, err)
		return
	}

	list, err := h.svc.ToggleItem(r.Context(), transactionID, itemID, req.Completed)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(list)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound), errors.Is(err, checklist.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, checklist.ErrItemNotFound):
		http.Error(w, "checklist item not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
