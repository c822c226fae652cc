package contact

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/client"
	"github.com/closetrackhq/closetrack/internal/contact"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Handler struct {
	svc          *contact.Service
	transactions *transaction.Service
}

func NewHandler(svc *contact.Service, transactions *transaction.Service) *Handler {
	return &Handler{svc: svc, transactions: transactions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{transactionId}", h.list)
	r.Post("/{transactionId}", h.create)
	r.Patch("/{transactionId}/{id}", h.update)
	r.Delete("/{transactionId}/{id}", h.delete)
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

	contacts, err := h.svc.List(r.Context(), transactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(contacts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createContactRequest struct {
	Role        contact.Role `json:"role"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Phone       string       `json:"phone"`
	MobilePhone string       `json:"mobilePhone"`
	Email       string       `json:"email"`

	// Duplicate resolution. ForceCreate skips the duplicate prompt;
	// UseClientID copies the matched client's details instead.
	ForceCreate bool       `json:"forceCreate,omitempty"`
	UseClientID *uuid.UUID `json:"useClientId,omitempty"`
}

// create adds a contact to the roster. When the candidate looks like an
// existing client of the agent, the request is answered with 409 and the
// match, so the UI can ask "create new or use existing?". The client retries
// with forceCreate or useClientId.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	if req.UseClientID != nil {
		c, err := h.svc.CreateFromClient(r.Context(), transactionID, *req.UseClientID, user.ID, req.Role)
		if err != nil {
			writeError(w, err)
			return
		}

		writeCreated(w, c)

		return
	}

	params := contact.CreateParams{
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		MobilePhone: req.MobilePhone,
		Email:       req.Email,
	}

	if !req.ForceCreate {
		match, err := h.svc.CheckDuplicate(r.Context(), user.ID, params)
		if err != nil {
			writeError(w, err)
			return
		}

		if match != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)

			if err := json.NewEncoder(w).Encode(toDuplicateResponse(match)); err != nil {
				slog.Error("failed to encode response", "error", err)
			}

			return
		}
	}

	c, err := h.svc.Create(r.Context(), transactionID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, c)
}

type updateContactRequest struct {
	Role        *contact.Role `json:"role,omitempty"`
	FirstName   *string       `json:"firstName,omitempty"`
	LastName    *string       `json:"lastName,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	MobilePhone *string       `json:"mobilePhone,omitempty"`
	Email       *string       `json:"email,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), id, contact.UpdateParams{
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		MobilePhone: req.MobilePhone,
		Email:       req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCreated(w http.ResponseWriter, c *contact.Contact) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, contact.ErrNotFound):
		http.Error(w, "contact not found", http.StatusNotFound)
	case errors.Is(err, client.ErrNotFound):
		http.Error(w, "client not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrForbidden), errors.Is(err, client.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
