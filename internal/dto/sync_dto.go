package dto

import "jobfinder/internal/domain"

// SyncRequestMessage is the queue message that kicks off a provider sync.
type SyncRequestMessage struct {
	Provider string          `json:"provider"`
	SyncType domain.SyncType `json:"sync_type"`
}

// TriggerSyncRequest is the HTTP body for a manual sync trigger.
type TriggerSyncRequest struct {
	Provider string `json:"provider"`
	SyncType string `json:"sync_type"`
}

type TriggerSyncResponse struct {
	Provider string `json:"provider"`
	SyncType string `json:"sync_type"`
	Queued   bool   `json:"queued"`
}
