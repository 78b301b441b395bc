package dto

import "jobfinder/internal/domain"

// Saved-search and user shapes. The CRUD routes for these families are
// registered but answer 501 until the endpoint families ship; the shapes are
// fixed now so clients can build against them.

type CreateSearchRequest struct {
	Name         string              `json:"name"`
	QueryParams  domain.SearchFilter `json:"query_params"`
	AlertEnabled bool                `json:"alert_enabled,omitempty"`
}

type CreateSearchResponse struct {
	Search domain.SavedSearch `json:"search"`
}

type ListSearchesRequest struct{}

type ListSearchesResponse struct {
	Searches   []domain.SavedSearch `json:"searches"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

type UpdateSearchRequest struct {
	Name         *string              `json:"name,omitempty"`
	QueryParams  *domain.SearchFilter `json:"query_params,omitempty"`
	AlertEnabled *bool                `json:"alert_enabled,omitempty"`
}

type UpdateSearchResponse struct {
	Search domain.SavedSearch `json:"search"`
}

type DeleteSearchRequest struct{}

type DeleteSearchResponse struct{}

type GetUserProfileRequest struct{}

type GetUserProfileResponse struct {
	UserID      string                 `json:"user_id"`
	Email       string                 `json:"email"`
	Preferences domain.UserPreferences `json:"preferences"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

type UpdateUserProfileRequest struct {
	Preferences *domain.UserPreferences `json:"preferences,omitempty"`
}

type UpdateUserProfileResponse struct {
	UserID      string                 `json:"user_id"`
	Preferences domain.UserPreferences `json:"preferences"`
	UpdatedAt   string                 `json:"updated_at"`
}
