package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/auth"
	authStore "github.com/closetrackhq/closetrack/internal/auth/store"
	"github.com/closetrackhq/closetrack/internal/message"
	messageStore "github.com/closetrackhq/closetrack/internal/message/store"
)

func newFixture(t *testing.T) (*message.Service, *auth.User, *auth.User) {
	t.Helper()

	users := auth.NewService(authStore.NewMemory(), time.Hour)

	agent, err := users.Register(context.Background(), auth.RegisterParams{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "correct horse",
		Role:     auth.RoleAgent,
	})
	require.NoError(t, err)

	buyer, err := users.Register(context.Background(), auth.RegisterParams{
		Username: "sam",
		Email:    "sam@example.com",
		Password: "correct horse",
		Role:     auth.RoleClient,
	})
	require.NoError(t, err)

	return message.NewService(messageStore.NewMemory(), users), agent, buyer
}

func TestService_Thread(t *testing.T) {
	svc, agent, buyer := newFixture(t)
	txID := uuid.New()

	first, err := svc.Post(context.Background(), txID, agent, "inspection is booked")
	require.NoError(t, err)
	assert.Equal(t, "maria", first.Username)
	assert.Equal(t, "agent", first.Role)

	_, err = svc.Post(context.Background(), txID, buyer, "great, thanks")
	require.NoError(t, err)

	msgs, err := svc.Thread(context.Background(), txID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "inspection is booked", msgs[0].Content)
	assert.LessOrEqual(t, msgs[0].Timestamp, msgs[1].Timestamp,
		"RFC 3339 UTC strings sort chronologically")

	// Other transactions see nothing.
	other, err := svc.Thread(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_Post_EmptyContent(t *testing.T) {
	svc, agent, _ := newFixture(t)

	_, err := svc.Post(context.Background(), uuid.New(), agent, "")
	assert.Error(t, err)
}

func TestService_DirectMessages(t *testing.T) {
	svc, agent, buyer := newFixture(t)

	_, err := svc.SendDirect(context.Background(), agent, buyer.ID, "welcome aboard")
	require.NoError(t, err)

	_, err = svc.SendDirect(context.Background(), agent, buyer.ID, "paperwork is ready")
	require.NoError(t, err)

	// Unread counts show up in the recipients list before the thread is read.
	recipients, err := svc.Recipients(context.Background(), buyer)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, agent.ID, recipients[0].UserID)
	assert.Equal(t, 2, recipients[0].Unread)

	// Fetching the conversation marks the sender's messages read.
	msgs, err := svc.Conversation(context.Background(), buyer, agent.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "welcome aboard", msgs[0].Content)

	recipients, err = svc.Recipients(context.Background(), buyer)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, 0, recipients[0].Unread)

	// The sender reading their own thread does not clear the recipient's
	// unread count.
	_, err = svc.SendDirect(context.Background(), buyer, agent.ID, "thanks!")
	require.NoError(t, err)

	recipients, err = svc.Recipients(context.Background(), agent)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, 1, recipients[0].Unread)
}

func TestService_SendDirect_UnknownRecipient(t *testing.T) {
	svc, agent, _ := newFixture(t)

	_, err := svc.SendDirect(context.Background(), agent, uuid.New(), "hello?")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestService_Recipients_ExcludesSelf(t *testing.T) {
	svc, agent, buyer := newFixture(t)

	recipients, err := svc.Recipients(context.Background(), agent)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, buyer.ID, recipients[0].UserID)
}
