package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/closetrackhq/closetrack/internal/auth"
	authStore "github.com/closetrackhq/closetrack/internal/auth/store"
	"github.com/closetrackhq/closetrack/internal/calendar"
	"github.com/closetrackhq/closetrack/internal/checklist"
	checklistStore "github.com/closetrackhq/closetrack/internal/checklist/store"
	"github.com/closetrackhq/closetrack/internal/client"
	clientStore "github.com/closetrackhq/closetrack/internal/client/store"
	"github.com/closetrackhq/closetrack/internal/config"
	"github.com/closetrackhq/closetrack/internal/contact"
	contactStore "github.com/closetrackhq/closetrack/internal/contact/store"
	"github.com/closetrackhq/closetrack/internal/dashboard"
	"github.com/closetrackhq/closetrack/internal/database"
	"github.com/closetrackhq/closetrack/internal/document"
	documentStore "github.com/closetrackhq/closetrack/internal/document/store"
	"github.com/closetrackhq/closetrack/internal/httpapi"
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
	"github.com/closetrackhq/closetrack/internal/message"
	messageStore "github.com/closetrackhq/closetrack/internal/message/store"
	"github.com/closetrackhq/closetrack/internal/transaction"
	txStore "github.com/closetrackhq/closetrack/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		authService        = auth.NewService(authStore.New(db), cfg.Session.TTL)
		transactionService = transaction.NewService(txStore.New(db))
		clientService      = client.NewService(clientStore.New(db))
		checklistService   = checklist.NewService(checklistStore.New(db), transactionService)
		documentService    = document.NewService(documentStore.New(db), transactionService)
		contactService     = contact.NewService(contactStore.New(db), clientService)
		messageService     = message.NewService(messageStore.New(db), authService)
		calendarService    = calendar.NewService(transactionService, authService, cfg.Calendar.TokenSecret)
		dashboardService   = dashboard.NewService(transactionService, clientService, documentService)
	)

	handlers := httpapi.Handlers{
		Auth:         authHandler.NewHandler(authService),
		Clients:      clientHandler.NewHandler(clientService),
		Transactions: transactionHandler.NewHandler(transactionService),
		Checklists:   checklistHandler.NewHandler(checklistService, transactionService),
		Documents:    documentHandler.NewHandler(documentService, transactionService),
		Contacts:     contactHandler.NewHandler(contactService, transactionService),
		Messages:     messageHandler.NewHandler(messageService, transactionService),
		Calendar:     calendarHandler.NewHandler(calendarService),
		Dashboard:    dashboardHandler.NewHandler(dashboardService),
		Mortgage:     mortgageHandler.NewHandler(),
	}

	router := httpapi.New(authService, cfg.Server.CORSOrigin, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
