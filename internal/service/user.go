package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"triviabot/internal/domain/entities"
)

// UserService keeps user records current. Every interaction upserts
// the user so display-name changes are picked up immediately.
type UserService struct {
	store  Store
	logger *zap.Logger
}

func NewUserService(store Store, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// EnsureUser inserts the user on first contact or refreshes the chat
// id and display name of an existing record. The returned user
// carries the persisted score and creation timestamp. A display-name
// change is logged for the audit trail.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, displayName string) (*entities.User, error) {
	if prev, err := s.store.GetUser(ctx, userID); err == nil && prev.DisplayName != displayName {
		s.logger.Info("display name changed",
			zap.Int64("user_id", userID),
			zap.String("old", prev.DisplayName),
			zap.String("new", displayName),
		)
	}

	user := entities.NewUser(userID, chatID, displayName)

	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	return user, nil
}

// Get returns the stored user record.
func (s *UserService) Get(ctx context.Context, userID int64) (*entities.User, error) {
	return s.store.GetUser(ctx, userID)
}
