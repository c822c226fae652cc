package contact_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/client"
	clientStore "github.com/closetrackhq/closetrack/internal/client/store"
	"github.com/closetrackhq/closetrack/internal/contact"
	contactStore "github.com/closetrackhq/closetrack/internal/contact/store"
)

func newFixture(t *testing.T) (*contact.Service, *client.Service, uuid.UUID) {
	t.Helper()

	clients := client.NewService(clientStore.NewMemory())

	return contact.NewService(contactStore.NewMemory(), clients), clients, uuid.New()
}

func TestService_CheckDuplicate(t *testing.T) {
	svc, clients, agentID := newFixture(t)

	existing, err := clients.Create(context.Background(), agentID, client.CreateParams{
		FirstName:   "Maria",
		LastName:    "Santos",
		Email:       "maria@example.com",
		Phone:       "555-0100",
		MobilePhone: "555-0101",
	})
	require.NoError(t, err)

	type testCase struct {
		name      string
		candidate contact.CreateParams
		wantMatch bool
	}

	tests := []testCase{
		{
			name: "NameAndEmailMatch",
			candidate: contact.CreateParams{
				FirstName: "maria",
				LastName:  "SANTOS",
				Email:     "MARIA@example.com",
			},
			wantMatch: true,
		},
		{
			name: "NameAndPhoneMatch",
			candidate: contact.CreateParams{
				FirstName: "Maria",
				LastName:  "Santos",
				Phone:     "555-0100",
			},
			wantMatch: true,
		},
		{
			name: "NameAndMobileMatch",
			candidate: contact.CreateParams{
				FirstName:   "Maria",
				LastName:    "Santos",
				MobilePhone: "555-0101",
			},
			wantMatch: true,
		},
		{
			name: "NameOnlyIsNotEnough",
			candidate: contact.CreateParams{
				FirstName: "Maria",
				LastName:  "Santos",
				Email:     "other@example.com",
			},
			wantMatch: false,
		},
		{
			name: "ChannelWithoutName",
			candidate: contact.CreateParams{
				FirstName: "Ana",
				LastName:  "Santos",
				Email:     "maria@example.com",
			},
			wantMatch: false,
		},
		{
			name: "EmptyChannelsNeverMatch",
			candidate: contact.CreateParams{
				FirstName: "Maria",
				LastName:  "Santos",
			},
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := svc.CheckDuplicate(context.Background(), agentID, tt.candidate)
			require.NoError(t, err)

			if tt.wantMatch {
				require.NotNil(t, match)
				assert.Equal(t, existing.ID, match.ID)

				return
			}

			assert.Nil(t, match)
		})
	}
}

func TestService_Create(t *testing.T) {
	svc, _, _ := newFixture(t)
	txID := uuid.New()

	c, err := svc.Create(context.Background(), txID, contact.CreateParams{
		Role:      contact.RoleLender,
		FirstName: "Sam",
		LastName:  "Okafor",
		Email:     "sam@lender.example",
	})
	require.NoError(t, err)
	assert.Equal(t, contact.RoleLender, c.Role)
	assert.Equal(t, txID, c.TransactionID)

	_, err = svc.Create(context.Background(), txID, contact.CreateParams{
		Role:      "plumber",
		FirstName: "Sam",
		LastName:  "Okafor",
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), txID, contact.CreateParams{
		Role:     contact.RoleBuyer,
		LastName: "Okafor",
	})
	assert.Error(t, err)
}

func TestService_CreateFromClient(t *testing.T) {
	svc, clients, agentID := newFixture(t)
	txID := uuid.New()

	existing, err := clients.Create(context.Background(), agentID, client.CreateParams{
		FirstName:   "Maria",
		LastName:    "Santos",
		Email:       "maria@example.com",
		Phone:       "555-0100",
		MobilePhone: "555-0101",
	})
	require.NoError(t, err)

	c, err := svc.CreateFromClient(context.Background(), txID, existing.ID, agentID, contact.RoleSeller)
	require.NoError(t, err)

	assert.Equal(t, contact.RoleSeller, c.Role, "role comes from the request, not the client")
	assert.Equal(t, "Maria", c.FirstName)
	assert.Equal(t, "maria@example.com", c.Email)
	assert.Equal(t, "555-0100", c.Phone)

	// Another agent cannot lift clients from a foreign directory.
	_, err = svc.CreateFromClient(context.Background(), txID, existing.ID, uuid.New(), contact.RoleSeller)
	assert.ErrorIs(t, err, client.ErrForbidden)
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, _, _ := newFixture(t)
	txID := uuid.New()

	c, err := svc.Create(context.Background(), txID, contact.CreateParams{
		Role:      contact.RoleInspector,
		FirstName: "Lee",
		LastName:  "Nguyen",
	})
	require.NoError(t, err)

	newPhone := "555-0199"
	updated, err := svc.Update(context.Background(), c.ID, contact.UpdateParams{Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, newPhone, updated.Phone)

	require.NoError(t, svc.Delete(context.Background(), c.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), c.ID), contact.ErrNotFound)
}
