// Package dashboard aggregates counts for the overview charts. It owns no
// storage; everything is derived from the other services on each request.
package dashboard

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/client"
	"github.com/closetrackhq/closetrack/internal/document"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Stats struct {
	TransactionsByStatus    map[transaction.Status]int
	ClientsByType           map[client.Type]int
	ClientsByStatus         map[client.Status]int
	ActiveTransactions      int
	AverageDocumentProgress int
}

type Service struct {
	transactions *transaction.Service
	clients      *client.Service
	documents    *document.Service
}

func NewService(transactions *transaction.Service, clients *client.Service, documents *document.Service) *Service {
	return &Service{transactions: transactions, clients: clients, documents: documents}
}

// Stats fans the two independent queries out concurrently and folds the
// results into chart-ready counts.
func (s *Service) Stats(ctx context.Context, user *auth.User) (*Stats, error) {
	var (
		txs     []*transaction.Transaction
		clients []*client.Client
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		txs, err = s.transactions.ListForUser(gctx, user)
		return err
	})

	g.Go(func() error {
		var err error
		clients, err = s.clients.List(gctx, user.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		TransactionsByStatus: make(map[transaction.Status]int),
		ClientsByType:        make(map[client.Type]int),
		ClientsByStatus:      make(map[client.Status]int),
	}

	for _, st := range transaction.Statuses {
		stats.TransactionsByStatus[st] = 0
	}

	var progressSum, progressCount int

	for _, tx := range txs {
		stats.TransactionsByStatus[tx.Status]++

		if tx.Status != transaction.StatusClosed {
			stats.ActiveTransactions++
		}

		docs, err := s.documents.List(ctx, tx.ID)
		if err != nil {
			return nil, err
		}

		progressSum += document.Progress(docs)
		progressCount++
	}

	if progressCount > 0 {
		stats.AverageDocumentProgress = int(math.Round(float64(progressSum) / float64(progressCount)))
	}

	for _, c := range clients {
		stats.ClientsByType[c.Type]++
		stats.ClientsByStatus[c.Status]++
	}

	return stats, nil
}
