package document_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/document"
	documentStore "github.com/closetrackhq/closetrack/internal/document/store"
	"github.com/closetrackhq/closetrack/internal/transaction"
	txStore "github.com/closetrackhq/closetrack/internal/transaction/store"
)

func newFixture(t *testing.T) (*document.Service, uuid.UUID) {
	t.Helper()

	transactions := transaction.NewService(txStore.NewMemory())

	tx, err := transactions.Create(context.Background(), transaction.CreateParams{
		Address: "42 Elm St",
		Type:    transaction.TypeSell,
		AgentID: uuid.New(),
	})
	require.NoError(t, err)

	return document.NewService(documentStore.NewMemory(), transactions), tx.ID
}

func TestService_List_SeedsDefaults(t *testing.T) {
	svc, txID := newFixture(t)

	docs, err := svc.List(context.Background(), txID)
	require.NoError(t, err)

	require.Len(t, docs, 9)
	assert.Equal(t, "iabs", docs[0].ID)
	assert.Equal(t, "IABS", docs[0].Name)

	for _, d := range docs {
		assert.Equal(t, document.StatusNotApplicable, d.Status)
	}

	assert.Equal(t, 0, document.Progress(docs))
}

func TestService_List_SeedsOnce(t *testing.T) {
	svc, txID := newFixture(t)

	_, err := svc.List(context.Background(), txID)
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), txID, "iabs", document.StatusSigned)
	require.NoError(t, err)

	docs, err := svc.List(context.Background(), txID)
	require.NoError(t, err)

	require.Len(t, docs, 9)
	assert.Equal(t, document.StatusSigned, docs[0].Status)
}

func TestService_List_UnknownTransaction(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.List(context.Background(), uuid.New())
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestService_Add(t *testing.T) {
	svc, txID := newFixture(t)

	doc, err := svc.Add(context.Background(), txID, "Appraisal Report")
	require.NoError(t, err)

	assert.Equal(t, document.StatusNotApplicable, doc.Status)
	assert.NotEmpty(t, doc.ID)

	// Adding before the first read seeds the defaults too.
	docs, err := svc.List(context.Background(), txID)
	require.NoError(t, err)
	require.Len(t, docs, 10)
	assert.Equal(t, "iabs", docs[0].ID)
	assert.Equal(t, doc.ID, docs[9].ID)

	_, err = svc.Add(context.Background(), txID, "")
	assert.Error(t, err)
}

func TestService_Initialize_RestoresMissingDefaults(t *testing.T) {
	svc, txID := newFixture(t)

	_, err := svc.List(context.Background(), txID)
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), txID, "iabs", document.StatusSigned)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), txID, "hoa-addendum"))

	docs, err := svc.Initialize(context.Background(), txID)
	require.NoError(t, err)
	require.Len(t, docs, 9)

	restored, err := svc.SetStatus(context.Background(), txID, "hoa-addendum", document.StatusComplete)
	require.NoError(t, err)
	assert.Equal(t, document.StatusComplete, restored.Status)

	// Surviving documents keep their status.
	for _, d := range docs {
		if d.ID == "iabs" {
			assert.Equal(t, document.StatusSigned, d.Status)
		}
	}

	// A second call is a no-op.
	docs, err = svc.Initialize(context.Background(), txID)
	require.NoError(t, err)
	assert.Len(t, docs, 9)
}

func TestService_SetStatus_RejectsUnknownStatus(t *testing.T) {
	svc, txID := newFixture(t)

	_, err := svc.List(context.Background(), txID)
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), txID, "iabs", "shredded")
	assert.ErrorIs(t, err, document.ErrInvalidStatus)

	docs, err := svc.List(context.Background(), txID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusNotApplicable, docs[0].Status, "rejected write must leave the prior status")
}

func TestService_Remove(t *testing.T) {
	svc, txID := newFixture(t)

	_, err := svc.List(context.Background(), txID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), txID, "hoa-addendum"))

	docs, err := svc.List(context.Background(), txID)
	require.NoError(t, err)
	assert.Len(t, docs, 8)

	err = svc.Remove(context.Background(), txID, "hoa-addendum")
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, document.Progress(nil))

	docs := []*document.Document{
		{ID: "a", Status: document.StatusComplete},
		{ID: "b", Status: document.StatusSigned},
		{ID: "c", Status: document.StatusNotApplicable},
	}

	// Only complete counts: 1/3 rounds to 33.
	assert.Equal(t, 33, document.Progress(docs))
}
