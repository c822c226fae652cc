package dashboard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/client"
	clientStore "github.com/closetrackhq/closetrack/internal/client/store"
	"github.com/closetrackhq/closetrack/internal/dashboard"
	"github.com/closetrackhq/closetrack/internal/document"
	documentStore "github.com/closetrackhq/closetrack/internal/document/store"
	"github.com/closetrackhq/closetrack/internal/transaction"
	txStore "github.com/closetrackhq/closetrack/internal/transaction/store"
)

func TestService_Stats(t *testing.T) {
	transactions := transaction.NewService(txStore.NewMemory())
	clients := client.NewService(clientStore.NewMemory())
	documents := document.NewService(documentStore.NewMemory(), transactions)
	svc := dashboard.NewService(transactions, clients, documents)

	agent := &auth.User{ID: uuid.New(), Username: "maria", Role: auth.RoleAgent}

	tx, err := transactions.Create(context.Background(), transaction.CreateParams{
		Address: "42 Elm St",
		Type:    transaction.TypeSell,
		AgentID: agent.ID,
	})
	require.NoError(t, err)

	closed, err := transactions.Create(context.Background(), transaction.CreateParams{
		Address: "7 Oak Ave",
		Type:    transaction.TypeBuy,
		AgentID: agent.ID,
	})
	require.NoError(t, err)
	require.NoError(t, transactions.UpdateStatus(context.Background(), closed.ID, agent.ID, transaction.StatusClosed))

	_, err = clients.Create(context.Background(), agent.ID, client.CreateParams{
		FirstName: "Sam",
		LastName:  "Okafor",
		Type:      client.TypeBuyer,
	})
	require.NoError(t, err)

	_, err = clients.Create(context.Background(), agent.ID, client.CreateParams{
		FirstName: "Dana",
		LastName:  "Reyes",
		Type:      client.TypeSeller,
		Status:    client.StatusInactive,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), agent)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TransactionsByStatus[transaction.StatusProspect])
	assert.Equal(t, 1, stats.TransactionsByStatus[transaction.StatusClosed])
	assert.Equal(t, 0, stats.TransactionsByStatus[transaction.StatusLiveListing])
	assert.Equal(t, 1, stats.ActiveTransactions, "closed deals are not active")

	assert.Equal(t, 1, stats.ClientsByType[client.TypeBuyer])
	assert.Equal(t, 1, stats.ClientsByType[client.TypeSeller])
	assert.Equal(t, 1, stats.ClientsByStatus[client.StatusActive])
	assert.Equal(t, 1, stats.ClientsByStatus[client.StatusInactive])

	// Both transactions lazily seed the default document set, all
	// not_applicable, so average progress starts at zero.
	assert.Equal(t, 0, stats.AverageDocumentProgress)

	_, err = documents.SetStatus(context.Background(), tx.ID, "iabs", document.StatusComplete)
	require.NoError(t, err)

	stats, err = svc.Stats(context.Background(), agent)
	require.NoError(t, err)
	assert.Greater(t, stats.AverageDocumentProgress, 0)
}

func TestService_Stats_Empty(t *testing.T) {
	transactions := transaction.NewService(txStore.NewMemory())
	clients := client.NewService(clientStore.NewMemory())
	documents := document.NewService(documentStore.NewMemory(), transactions)
	svc := dashboard.NewService(transactions, clients, documents)

	stats, err := svc.Stats(context.Background(), &auth.User{ID: uuid.New(), Username: "maria", Role: auth.RoleAgent})
	require.NoError(t, err)

	assert.Len(t, stats.TransactionsByStatus, 5)
	assert.Equal(t, 0, stats.ActiveTransactions)
	assert.Equal(t, 0, stats.AverageDocumentProgress)
	assert.Empty(t, stats.ClientsByType)
}
