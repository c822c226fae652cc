package checklist_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/checklist"
	checklistStore "github.com/closetrackhq/closetrack/internal/checklist/store"
	"github.com/closetrackhq/closetrack/internal/transaction"
	txStore "github.com/closetrackhq/closetrack/internal/transaction/store"
)

func newFixture(t *testing.T, txType transaction.Type) (*checklist.Service, *transaction.Transaction) {
	t.Helper()

	transactions := transaction.NewService(txStore.NewMemory())

	tx, err := transactions.Create(context.Background(), transaction.CreateParams{
		Address: "42 Elm St",
		Type:    txType,
		AgentID: uuid.New(),
	})
	require.NoError(t, err)

	return checklist.NewService(checklistStore.NewMemory(), transactions), tx
}

func TestService_Get_SeedsSellerTemplate(t *testing.T) {
	svc, tx := newFixture(t, transaction.TypeSell)

	got, err := svc.Get(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, checklist.RoleSell, got.Role)
	assert.Len(t, got.Items, 24)
	assert.Equal(t, "assess-value", got.Items[0].ID)
	assert.Equal(t, "Pre-Listing Preparation", got.Items[0].Phase)
	assert.Equal(t, 0, got.Progress())
}

func TestService_Get_SeedsBuyerTemplate(t *testing.T) {
	svc, tx := newFixture(t, transaction.TypeBuy)

	got, err := svc.Get(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, checklist.RoleBuy, got.Role)
	assert.Len(t, got.Items, 18)
}

func TestService_Get_SeedsOnce(t *testing.T) {
	svc, tx := newFixture(t, transaction.TypeSell)

	first, err := svc.Get(context.Background(), tx.ID)
	require.NoError(t, err)

	_, err = svc.ToggleItem(context.Background(), tx.ID, "assess-value", true)
	require.NoError(t, err)

	second, err := svc.Get(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Items[0].Completed, "re-reading must not reset to the template")
}

func TestService_Get_UnknownTransaction(t *testing.T) {
	svc, _ := newFixture(t, transaction.TypeSell)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestService_ToggleItem(t *testing.T) {
	svc, tx := newFixture(t, transaction.TypeSell)

	got, err := svc.ToggleItem(context.Background(), tx.ID, "assess-value", true)
	require.NoError(t, err)

	assert.True(t, got.Items[0].Completed)
	assert.Equal(t, 4, got.Progress()) // 1/24 rounded

	got, err = svc.ToggleItem(context.Background(), tx.ID, "assess-value", false)
	require.NoError(t, err)

	assert.False(t, got.Items[0].Completed)
	assert.Equal(t, 0, got.Progress())
}

func TestService_ToggleItem_UnknownItem(t *testing.T) {
	svc, tx := newFixture(t, transaction.TypeSell)

	_, err := svc.ToggleItem(context.Background(), tx.ID, "no-such-item", true)
	assert.ErrorIs(t, err, checklist.ErrItemNotFound)
}

func TestChecklist_Progress(t *testing.T) {
	empty := &checklist.Checklist{}
	assert.Equal(t, 0, empty.Progress())

	half := &checklist.Checklist{Items: []checklist.Item{
		{ID: "a", Completed: true},
		{ID: "b"},
	}}
	assert.Equal(t, 50, half.Progress())
}
