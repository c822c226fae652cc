package message

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/message"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Handler struct {
	svc          *message.Service
	transactions *transaction.Service
}

func NewHandler(svc *message.Service, transactions *transaction.Service) *Handler {
	return &Handler{svc: svc, transactions: transactions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/recipients", h.recipients)
	r.Get("/direct/{userId}", h.conversation)
	r.Post("/direct/{userId}", h.sendDirect)
	r.Get("/{transactionId}", h.thread)
	r.Post("/{transactionId}", h.post)
}

func (h *Handler) thread(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	msgs, err := h.svc.Thread(r.Context(), transactionID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toThreadResponse(msgs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type postMessageRequest struct {
	Content string `json:"content"`
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	m, err := h.svc.Post(r.Context(), transactionID, user, req.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toMessageResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) recipients(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	recipients, err := h.svc.Recipients(r.Context(), user)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toRecipientResponseList(recipients)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) conversation(w http.ResponseWriter, r *http.Request) {
	otherID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	msgs, err := h.svc.Conversation(r.Context(), user, otherID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDirectResponseList(msgs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) sendDirect(w http.ResponseWriter, r *http.Request) {
	recipientID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	m, err := h.svc.SendDirect(r.Context(), user, recipientID, req.Content)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			http.Error(w, "recipient not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toDirectResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionId"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	user := auth.UserFromContext(r.Context())

	if _, err := h.transactions.Authorize(r.Context(), transactionID, user); err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			http.Error(w, "transaction not found", http.StatusNotFound)
		case errors.Is(err, transaction.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return uuid.Nil, false
	}

	return transactionID, true
}
