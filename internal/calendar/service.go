package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/transaction"
)

var ErrInvalidToken = errors.New("calendar: invalid token")

// Feed tokens live long because calendar clients poll subscriptions for
// months without re-authenticating.
const tokenTTL = 365 * 24 * time.Hour

type Service struct {
	transactions *transaction.Service
	users        *auth.Service
	secret       []byte
}

func NewService(transactions *transaction.Service, users *auth.Service, secret string) *Service {
	return &Service{transactions: transactions, users: users, secret: []byte(secret)}
}

// Events derives the user's calendar from closing dates and option period
// expirations, sorted by date.
func (s *Service) Events(ctx context.Context, user *auth.User) ([]*Event, error) {
	txs, err := s.transactions.ListForUser(ctx, user)
	if err != nil {
		return nil, err
	}

	var events []*Event

	for _, tx := range txs {
		if tx.ClosingDate != nil {
			events = append(events, &Event{
				ID:            fmt.Sprintf("closing-%s", tx.ID),
				TransactionID: tx.ID,
				Title:         fmt.Sprintf("Closing — %s", tx.Address),
				Date:          *tx.ClosingDate,
			})
		}

		if tx.OptionPeriodExpiration != nil {
			events = append(events, &Event{
				ID:            fmt.Sprintf("option-%s", tx.ID),
				TransactionID: tx.ID,
				Title:         fmt.Sprintf("Option period ends — %s", tx.Address),
				Date:          *tx.OptionPeriodExpiration,
			})
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	return events, nil
}

// EventsForFeed resolves a token-authenticated feed request. The token's
// subject must match the userID in the feed URL.
func (s *Service) EventsForFeed(ctx context.Context, userID uuid.UUID, token string) ([]*Event, error) {
	tokenUserID, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	if tokenUserID != userID {
		return nil, ErrInvalidToken
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.Events(ctx, user)
}

// IssueToken signs a feed token bound to the user. External calendar clients
// cannot send session cookies, so feed URLs carry this instead.
func (s *Service) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("calendar: signing token: %w", err)
	}

	return signed, nil
}

func (s *Service) VerifyToken(raw string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
