package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Address  string           `json:"address"`
	Type     transaction.Type `json:"type"`
	ClientID *uuid.UUID       `json:"clientId,omitempty"`

	ContractPrice     *int64 `json:"contractPrice,omitempty"`
	Commission        *int64 `json:"commission,omitempty"`
	EarnestMoney      *int64 `json:"earnestMoney,omitempty"`
	OptionFee         *int64 `json:"optionFee,omitempty"`
	DownPayment       *int64 `json:"downPayment,omitempty"`
	SellerConcessions *int64 `json:"sellerConcessions,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Address:           req.Address,
		Type:              req.Type,
		AgentID:           user.ID,
		ClientID:          req.ClientID,
		ContractPrice:     req.ContractPrice,
		Commission:        req.Commission,
		EarnestMoney:      req.EarnestMoney,
		OptionFee:         req.OptionFee,
		DownPayment:       req.DownPayment,
		SellerConcessions: req.SellerConcessions,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns the flat table view, or the kanban board projection when
// groupBy=status is asked for.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	txs, err := h.svc.ListForUser(r.Context(), user)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Query().Get("groupBy") == "status" {
		if err := json.NewEncoder(w).Encode(toBoardResponse(txs)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	tx, err := h.svc.Authorize(r.Context(), id, user)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	Address  *string    `json:"address,omitempty"`
	ClientID *uuid.UUID `json:"clientId,omitempty"`

	ContractPrice     *int64 `json:"contractPrice,omitempty"`
	Commission        *int64 `json:"commission,omitempty"`
	EarnestMoney      *int64 `json:"earnestMoney,omitempty"`
	OptionFee         *int64 `json:"optionFee,omitempty"`
	DownPayment       *int64 `json:"downPayment,omitempty"`
	SellerConcessions *int64 `json:"sellerConcessions,omitempty"`

	ContractExecutionDate  *time.Time `json:"contractExecutionDate,omitempty"`
	OptionPeriodExpiration *time.Time `json:"optionPeriodExpiration,omitempty"`
	ClosingDate            *time.Time `json:"closingDate,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	tx, err := h.svc.Update(r.Context(), id, user.ID, transaction.UpdateParams{
		Address:                req.Address,
		ClientID:               req.ClientID,
		ContractPrice:          req.ContractPrice,
		Commission:             req.Commission,
		EarnestMoney:           req.EarnestMoney,
		OptionFee:              req.OptionFee,
		DownPayment:            req.DownPayment,
		SellerConcessions:      req.SellerConcessions,
		ContractExecutionDate:  req.ContractExecutionDate,
		OptionPeriodExpiration: req.OptionPeriodExpiration,
		ClosingDate:            req.ClosingDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status transaction.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	if err := h.svc.UpdateStatus(r.Context(), id, user.ID, req.Status); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), id, user.ID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type claimRequest struct {
	AccessCode string `json:"accessCode"`
}

// Claim is mounted at POST /api/claim-transaction, outside the
// /api/transactions subtree.
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	tx, err := h.svc.Claim(r.Context(), req.AccessCode, user)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "invalid access code", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, transaction.ErrInvalidStatus), errors.Is(err, transaction.ErrInvalidType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
