package events

import (
	"time"

	"jobfinder/internal/domain"
)

// Event sources, one per service family.
const (
	SourceJobSearch        = "job-finder.job-search"
	SourceJobSync          = "job-finder.job-sync"
	SourceSearchManagement = "job-finder.search-management"
	SourceUser             = "job-finder.user"
)

// Event is a domain event bound for the bus. The timestamp inside Detail is
// captured when the event is built, not when it is eventually published.
type Event struct {
	Source     string         `json:"source"`
	DetailType string         `json:"detail_type"`
	Detail     map[string]any `json:"detail"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func NewJobViewed(jobID, userID string) Event {
	detail := map[string]any{
		"job_id":    jobID,
		"timestamp": now(),
	}
	if userID != "" {
		detail["user_id"] = userID
	}
	return Event{Source: SourceJobSearch, DetailType: "Job Viewed", Detail: detail}
}

func NewJobSearchPerformed(filter *domain.SearchFilter, resultCount int) Event {
	return Event{
		Source:     SourceJobSearch,
		DetailType: "Job Search Performed",
		Detail: map[string]any{
			"query_params": filter,
			"result_count": resultCount,
			"timestamp":    now(),
		},
	}
}

func NewJobSyncStarted(provider string, syncType domain.SyncType) Event {
	return Event{
		Source:     SourceJobSync,
		DetailType: "Job Sync Started",
		Detail: map[string]any{
			"provider":   provider,
			"sync_type":  string(syncType),
			"started_at": now(),
		},
	}
}

func NewJobSyncCompleted(provider string, jobsSynced int, startedAt string, outcome domain.BatchOutcome) Event {
	return Event{
		Source:     SourceJobSync,
		DetailType: "Job Sync Completed",
		Detail: map[string]any{
			"provider":     provider,
			"jobs_synced":  jobsSynced,
			"started_at":   startedAt,
			"completed_at": now(),
			"status":       string(outcome),
		},
	}
}

func NewJobSyncFailed(provider string, errMsg string, startedAt string) Event {
	return Event{
		Source:     SourceJobSync,
		DetailType: "Job Sync Failed",
		Detail: map[string]any{
			"provider":   provider,
			"error":      errMsg,
			"started_at": startedAt,
			"failed_at":  now(),
		},
	}
}

func NewSearchSaved(userID, searchID string) Event {
	return Event{
		Source:     SourceSearchManagement,
		DetailType: "Search Saved",
		Detail: map[string]any{
			"user_id":    userID,
			"search_id":  searchID,
			"created_at": now(),
		},
	}
}

func NewSearchUpdated(userID, searchID string) Event {
	return Event{
		Source:     SourceSearchManagement,
		DetailType: "Search Updated",
		Detail: map[string]any{
			"user_id":    userID,
			"search_id":  searchID,
			"updated_at": now(),
		},
	}
}

func NewSearchDeleted(userID, searchID string) Event {
	return Event{
		Source:     SourceSearchManagement,
		DetailType: "Search Deleted",
		Detail: map[string]any{
			"user_id":    userID,
			"search_id":  searchID,
			"deleted_at": now(),
		},
	}
}

func NewUserRegistered(userID, email string) Event {
	return Event{
		Source:     SourceUser,
		DetailType: "User Registered",
		Detail: map[string]any{
			"user_id":       userID,
			"email":         email,
			"registered_at": now(),
		},
	}
}

func NewUserProfileUpdated(userID string, updatedFields []string) Event {
	return Event{
		Source:     SourceUser,
		DetailType: "User Profile Updated",
		Detail: map[string]any{
			"user_id":        userID,
			"updated_fields": updatedFields,
			"updated_at":     now(),
		},
	}
}
