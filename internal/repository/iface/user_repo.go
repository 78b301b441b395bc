package repository

import (
	"context"

	"jobfinder/internal/domain"
)

// UserRepository stores user profiles keyed by the identity-provider subject.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Put(ctx context.Context, user *domain.User) error
}
