package types

import "time"

// SyncStatus tracks where an account is in its initial backfill.
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusDone    SyncStatus = "done"
	SyncStatusError   SyncStatus = "error"
)

// EmailAccount is the local record for one connected mailbox.
type EmailAccount struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	Name           string     `json:"name" db:"name"`
	Provider       string     `json:"provider" db:"provider"`
	SyncStatus     SyncStatus `json:"sync_status" db:"sync_status"`
	LastBackfillAt *time.Time `json:"last_backfill_at,omitempty" db:"last_backfill_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// FolderMapping is the local mirror of one remote folder. Exactly one
// active mapping exists per (remote folder id, account id) pair; re-sync
// overwrites in place.
type FolderMapping struct {
	ID             string     `json:"id" db:"id"`
	AccountID      string     `json:"account_id" db:"account_id"`
	RemoteID       string     `json:"remote_id" db:"remote_id"`
	Name           string     `json:"name" db:"name"`
	Kind           FolderKind `json:"kind" db:"kind"`
	ParentRemoteID *string    `json:"parent_remote_id,omitempty" db:"parent_remote_id"`
	Attributes     []string   `json:"attributes,omitempty" db:"-"`
	UnreadCount    int        `json:"unread_count" db:"unread_count"`
	TotalCount     int        `json:"total_count" db:"total_count"`
	ChildCount     int        `json:"child_count" db:"child_count"`
	IsSystemFolder bool       `json:"is_system_folder" db:"is_system_folder"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	LastSyncedAt   *time.Time `json:"last_synced_at,omitempty" db:"last_synced_at"`
}

// Message is the local mirror of one remote message, keyed by remote id.
type Message struct {
	ID             string    `json:"id" db:"id"`
	AccountID      string    `json:"account_id" db:"account_id"`
	RemoteID       string    `json:"remote_id" db:"remote_id"`
	FolderRemoteID string    `json:"folder_remote_id" db:"folder_remote_id"`
	Subject        string    `json:"subject" db:"subject"`
	SenderName     string    `json:"sender_name" db:"sender_name"`
	SenderEmail    string    `json:"sender_email" db:"sender_email"`
	Snippet        string    `json:"snippet" db:"snippet"`
	Unread         bool      `json:"unread" db:"unread"`
	Starred        bool      `json:"starred" db:"starred"`
	ReceivedAt     time.Time `json:"received_at" db:"received_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Calendar is the local mirror of one remote calendar, keyed by
// (remote calendar id, account id).
type Calendar struct {
	ID          string    `json:"id" db:"id"`
	AccountID   string    `json:"account_id" db:"account_id"`
	RemoteID    string    `json:"remote_id" db:"remote_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Timezone    string    `json:"timezone" db:"timezone"`
	IsPrimary   bool      `json:"is_primary" db:"is_primary"`
	ReadOnly    bool      `json:"read_only" db:"read_only"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
