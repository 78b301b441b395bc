package repository

import (
	"context"

	"jobfinder/internal/domain"
)

// SavedSearchRepository stores user saved searches keyed by
// (user_id, search_id). Query params are validated before any write.
type SavedSearchRepository interface {
	Create(ctx context.Context, search *domain.SavedSearch) error
	Get(ctx context.Context, userID, searchID string) (*domain.SavedSearch, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.SavedSearch, error)
	Update(ctx context.Context, search *domain.SavedSearch) error
	Delete(ctx context.Context, userID, searchID string) error
}
