package types

import "time"

// RemoteFolder is a folder as reported by the remote mailbox provider.
type RemoteFolder struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ParentID    *string  `json:"parent_id,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
	UnreadCount int      `json:"unread_count"`
	TotalCount  int      `json:"total_count"`
	ChildCount  int      `json:"child_count"`
}

// RemoteMessage is a message as reported by the remote mailbox provider.
type RemoteMessage struct {
	ID          string    `json:"id"`
	FolderID    string    `json:"folder_id"`
	Subject     string    `json:"subject"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Snippet     string    `json:"snippet"`
	Unread      bool      `json:"unread"`
	Starred     bool      `json:"starred"`
	ReceivedAt  time.Time `json:"received_at"`
}

// RemoteCalendar is a calendar as reported by the remote provider.
type RemoteCalendar struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	IsPrimary   bool   `json:"is_primary"`
	ReadOnly    bool   `json:"read_only"`
}
