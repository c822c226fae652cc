package document

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/document"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Handler struct {
	svc          *document.Service
	transactions *transaction.Service
}

func NewHandler(svc *document.Service, transactions *transaction.Service) *Handler {
	return &Handler{svc: svc, transactions: transactions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{transactionId}", h.list)
	r.Post("/{transactionId}", h.add)
	r.Post("/{transactionId}/initialize", h.initialize)
	r.Patch("/{transactionId}/{id}", h.setStatus)
	r.Delete("/{transactionId}/{id}", h.remove)
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionId"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	user := auth.UserFromContext(r.Context())

	if _, err := h.transactions.Authorize(r.Context(), transactionID, user); err != nil {
		writeError(w, err)
		return uuid.Nil, false
	}

	return transactionID, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	docs, err := h.svc.List(r.Context(), transactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toListResponse(docs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) initialize(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	docs, err := h.svc.Initialize(r.Context(), transactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toListResponse(docs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addDocumentRequest struct {
	Name string `json:"name"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req addDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.svc.Add(r.Context(), transactionID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(doc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setStatusRequest struct {
	Status document.Status `json:"status"`
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.svc.SetStatus(r.Context(), transactionID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(doc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), transactionID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, document.ErrNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
	case errors.Is(err, document.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, transaction.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
