package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

func TestService_Create(t *testing.T) {
	agentID := uuid.New()

	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: transaction.CreateParams{
					Address: "123 Main St",
					Type:    transaction.TypeSell,
					AgentID: agentID,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "InvalidType",
			args: args{
				params: transaction.CreateParams{
					Address: "123 Main St",
					Type:    "lease",
					AgentID: agentID,
				},
			},
			wantErr: true,
		},
		{
			name: "MissingAddress",
			args: args{
				params: transaction.CreateParams{
					Type:    transaction.TypeBuy,
					AgentID: agentID,
				},
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{
				params: transaction.CreateParams{
					Address: "123 Main St",
					Type:    transaction.TypeBuy,
					AgentID: agentID,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, transaction.StatusProspect, got.Status)
			assert.Len(t, got.AccessCode, 6)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	agentID := uuid.New()
	txID := uuid.New()

	type testCase struct {
		name      string
		actorID   uuid.UUID
		status    transaction.Status
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "Success",
			actorID: agentID,
			status:  transaction.StatusUnderContract,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), txID).
					Return(&transaction.Transaction{ID: txID, AgentID: agentID, Status: transaction.StatusProspect}, nil)
				m.EXPECT().
					UpdateStatus(gomock.Any(), txID, transaction.StatusUnderContract).
					Return(nil)
			},
		},
		{
			name:    "NormalizesCase",
			actorID: agentID,
			status:  " Live_Listing ",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), txID).
					Return(&transaction.Transaction{ID: txID, AgentID: agentID}, nil)
				m.EXPECT().
					UpdateStatus(gomock.Any(), txID, transaction.StatusLiveListing).
					Return(nil)
			},
		},
		{
			name:    "InvalidStatus",
			actorID: agentID,
			status:  "archived",
			wantErr: transaction.ErrInvalidStatus,
		},
		{
			name:    "Forbidden",
			actorID: uuid.New(),
			status:  transaction.StatusClosed,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), txID).
					Return(&transaction.Transaction{ID: txID, AgentID: agentID}, nil)
			},
			wantErr: transaction.ErrForbidden,
		},
		{
			name:    "NotFound",
			actorID: agentID,
			status:  transaction.StatusClosed,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), txID).
					Return(nil, transaction.ErrNotFound)
			},
			wantErr: transaction.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			err := svc.UpdateStatus(context.Background(), txID, tt.actorID, tt.status)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Update_NormalizesDatesToNoonUTC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	agentID := uuid.New()
	txID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransaction(gomock.Any(), txID).
		Return(&transaction.Transaction{ID: txID, AgentID: agentID}, nil)
	repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any()).
		Return(nil)

	svc := transaction.NewService(repo)

	// A zoned timestamp must land on 12:00 UTC of its UTC calendar day.
	loc := time.FixedZone("AEST", 10*60*60)
	closing := time.Date(2026, 3, 14, 23, 30, 0, 0, loc)

	got, err := svc.Update(context.Background(), txID, agentID, transaction.UpdateParams{
		ClosingDate: &closing,
	})
	require.NoError(t, err)
	require.NotNil(t, got.ClosingDate)

	want := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, want, *got.ClosingDate)
}

func TestService_Update_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransaction(gomock.Any(), txID).
		Return(&transaction.Transaction{ID: txID, AgentID: uuid.New()}, nil)

	svc := transaction.NewService(repo)

	_, err := svc.Update(context.Background(), txID, uuid.New(), transaction.UpdateParams{})
	assert.ErrorIs(t, err, transaction.ErrForbidden)
}

func TestService_Claim(t *testing.T) {
	userID := uuid.New()
	txID := uuid.New()
	user := &auth.User{ID: userID, Role: auth.RoleClient}

	t.Run("AddsParticipant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			GetByAccessCode(gomock.Any(), "ABC234").
			Return(&transaction.Transaction{ID: txID}, nil)
		repo.EXPECT().
			AddParticipant(gomock.Any(), txID, transaction.Participant{UserID: userID, Role: "client"}).
			Return(nil)

		svc := transaction.NewService(repo)

		got, err := svc.Claim(context.Background(), " abc234 ", user)
		require.NoError(t, err)
		assert.Len(t, got.Participants, 1)
	})

	t.Run("IdempotentPerUser", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			GetByAccessCode(gomock.Any(), "ABC234").
			Return(&transaction.Transaction{
				ID:           txID,
				Participants: []transaction.Participant{{UserID: userID, Role: "client"}},
			}, nil)

		svc := transaction.NewService(repo)

		got, err := svc.Claim(context.Background(), "ABC234", user)
		require.NoError(t, err)
		assert.Len(t, got.Participants, 1)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			GetByAccessCode(gomock.Any(), "ZZZZZZ").
			Return(nil, transaction.ErrNotFound)

		svc := transaction.NewService(repo)

		_, err := svc.Claim(context.Background(), "zzzzzz", user)
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})
}

func TestService_Authorize(t *testing.T) {
	agentID := uuid.New()
	clientID := uuid.New()
	participantID := uuid.New()
	txID := uuid.New()

	tx := &transaction.Transaction{
		ID:           txID,
		AgentID:      agentID,
		ClientID:     &clientID,
		Participants: []transaction.Participant{{UserID: participantID, Role: "client"}},
	}

	type testCase struct {
		name    string
		user    *auth.User
		wantErr error
	}

	tests := []testCase{
		{name: "Agent", user: &auth.User{ID: agentID, Role: auth.RoleAgent}},
		{name: "LinkedClient", user: &auth.User{ID: clientID, Role: auth.RoleClient}},
		{name: "Participant", user: &auth.User{ID: participantID, Role: auth.RoleClient}},
		{name: "Stranger", user: &auth.User{ID: uuid.New()}, wantErr: transaction.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(tx, nil)

			svc := transaction.NewService(repo)
			got, err := svc.Authorize(context.Background(), txID, tt.user)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, txID, got.ID)
		})
	}
}
