package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/calendar"
)

type Handler struct {
	svc *calendar.Service
}

func NewHandler(svc *calendar.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.events)
	r.Get("/token", h.token)
}

// FeedRoutes are mounted outside the session middleware: calendar clients
// cannot send cookies, so the feed authenticates with a signed token in the
// query string.
func (h *Handler) FeedRoutes(r chi.Router) {
	r.Get("/{userId}/{type}", h.feed)
}

func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	events, err := h.svc.Events(r.Context(), user)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(events)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	token, err := h.svc.IssueToken(user.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	feedType := chi.URLParam(r, "type")
	if feedType != "export" && feedType != "subscribe" {
		http.Error(w, "unknown feed type", http.StatusNotFound)
		return
	}

	events, err := h.svc.EventsForFeed(r.Context(), userID, r.URL.Query().Get("token"))
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidToken) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	switch feedType {
	case "export":
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "closetrack.ics"))
		w.Header().Set("Cache-Control", "no-cache, no-store")
	case "subscribe":
		w.Header().Set("Cache-Control", "max-age=300")
	}

	if _, err := w.Write([]byte(calendar.ICS("Closetrack", events))); err != nil {
		slog.Error("failed to write feed", "error", err)
	}
}
