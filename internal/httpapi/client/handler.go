package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/client"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createClientRequest struct {
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	MobilePhone string        `json:"mobilePhone"`
	Address     string        `json:"address"`
	Type        client.Type   `json:"type"`
	Status      client.Status `json:"status"`
	Notes       string        `json:"notes"`
	Labels      []string      `json:"labels"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	c, err := h.svc.Create(r.Context(), user.ID, client.CreateParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		MobilePhone: req.MobilePhone,
		Address:     req.Address,
		Type:        req.Type,
		Status:      req.Status,
		Notes:       req.Notes,
		Labels:      req.Labels,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	clients, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(clients)); err != nil {
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

	c, err := h.svc.Get(r.Context(), id, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateClientRequest struct {
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	MobilePhone *string        `json:"mobilePhone,omitempty"`
	Address     *string        `json:"address,omitempty"`
	Type        *client.Type   `json:"type,omitempty"`
	Status      *client.Status `json:"status,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	Labels      *[]string      `json:"labels,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	c, err := h.svc.Update(r.Context(), id, user.ID, client.UpdateParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		MobilePhone: req.MobilePhone,
		Address:     req.Address,
		Type:        req.Type,
		Status:      req.Status,
		Notes:       req.Notes,
		Labels:      req.Labels,
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

type importRequest struct {
	CSVData string `json:"csvData"`
}

// importCSV accepts either a JSON body with csvData or a multipart upload
// under the "file" field.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	reader, err := importBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := auth.UserFromContext(r.Context())

	result, err := h.svc.ImportCSV(r.Context(), user.ID, reader)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if len(result.Created) == 0 && len(result.Errors) > 0 {
		w.WriteHeader(http.StatusBadRequest)

		if err := json.NewEncoder(w).Encode(toImportErrorResponse(result)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	if err := json.NewEncoder(w).Encode(toImportResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func importBody(r *http.Request) (io.Reader, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file field: %w", err)
		}

		return file, nil
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	if req.CSVData == "" {
		return nil, errors.New("csvData is required")
	}

	return strings.NewReader(req.CSVData), nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		http.Error(w, "client not found", http.StatusNotFound)
	case errors.Is(err, client.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
