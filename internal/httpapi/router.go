package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/closetrackhq/closetrack/internal/auth"
	authHandler "github.com/closetrackhq/closetrack/internal/httpapi/auth"
	calendarHandler "github.com/closetrackhq/closetrack/internal/httpapi/calendar"
	checklistHandler "github.com/closetrackhq/closetrack/internal/httpapi/checklist"
	clientHandler "github.com/closetrackhq/closetrack/internal/httpapi/client"
	contactHandler "github.com/closetrackhq/closetrack/internal/httpapi/contact"
	dashboardHandler "github.com/closetrackhq/closetrack/internal/httpapi/dashboard"
	documentHandler "github.com/closetrackhq/closetrack/internal/httpapi/document"
	messageHandler "github.com/closetrackhq/closetrack/internal/httpapi/message"
	mortgageHandler "github.com/closetrackhq/closetrack/internal/httpapi/mortgage"
	transactionHandler "github.com/closetrackhq/closetrack/internal/httpapi/transaction"
)

type Handlers struct {
	Auth         *authHandler.Handler
	Clients      *clientHandler.Handler
	Transactions *transactionHandler.Handler
	Checklists   *checklistHandler.Handler
	Documents    *documentHandler.Handler
	Contacts     *contactHandler.Handler
	Messages     *messageHandler.Handler
	Calendar     *calendarHandler.Handler
	Dashboard    *dashboardHandler.Handler
	Mortgage     *mortgageHandler.Handler
}

func New(authSvc *auth.Service, corsOrigin string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api", func(r chi.Router) {
		// No session required: register/login and the token-authenticated
		// calendar feeds.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.PublicRoutes(r)
		})

		r.Route("/calendar", func(r chi.Router) {
			h.Calendar.FeedRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(authSvc))
				h.Calendar.Routes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authSvc))

			h.Auth.Routes(r)

			r.Post("/claim-transaction", h.Transactions.Claim)

			r.Route("/clients", h.Clients.Routes)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Transactions.Routes(r)
			})

			r.Route("/checklists", h.Checklists.Routes)
			r.Route("/documents", h.Documents.Routes)
			r.Route("/contacts", h.Contacts.Routes)
			r.Route("/messages", h.Messages.Routes)
			r.Route("/dashboard", h.Dashboard.Routes)

			r.Route("/calculators", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Mortgage.Routes(r)
			})
		})
	})

	return router
}
