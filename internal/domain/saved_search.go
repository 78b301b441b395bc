package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedSearch is a user-owned named search. QueryParams is the typed filter
// shape, validated when the search is written.
type SavedSearch struct {
	UserID       string       `json:"user_id" dynamodbav:"user_id"`
	SearchID     string       `json:"search_id" dynamodbav:"search_id"`
	Name         string       `json:"name" dynamodbav:"name"`
	QueryParams  SearchFilter `json:"query_params" dynamodbav:"query_params"`
	AlertEnabled bool         `json:"alert_enabled" dynamodbav:"alert_enabled"`
	CreatedAt    string       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    string       `json:"updated_at" dynamodbav:"updated_at"`
	LastAlertAt  string       `json:"last_alert_at,omitempty" dynamodbav:"last_alert_at,omitempty"`
}

// NewSavedSearch builds a saved search with a fresh search ID.
func NewSavedSearch(userID, name string, params SearchFilter, alertEnabled bool) *SavedSearch {
	now := time.Now().UTC().Format(time.RFC3339)
	return &SavedSearch{
		UserID:       userID,
		SearchID:     uuid.New().String(),
		Name:         name,
		QueryParams:  params,
		AlertEnabled: alertEnabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
