package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easemail/mailsync/pkg/types"
)

// UpsertMessage writes the local mirror row for one remote message, keyed
// by its remote id.
func (s *Store) UpsertMessage(ctx context.Context, m *types.Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (
			id, account_id, remote_id, folder_remote_id, subject,
			sender_name, sender_email, snippet, unread, starred,
			received_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(remote_id) DO UPDATE SET
			folder_remote_id = excluded.folder_remote_id,
			subject = excluded.subject,
			sender_name = excluded.sender_name,
			sender_email = excluded.sender_email,
			snippet = excluded.snippet,
			unread = excluded.unread,
			starred = excluded.starred,
			received_at = excluded.received_at,
			updated_at = excluded.updated_at`,
		m.ID, m.AccountID, m.RemoteID, m.FolderRemoteID, m.Subject,
		m.SenderName, m.SenderEmail, m.Snippet, m.Unread, m.Starred,
		m.ReceivedAt.UTC(), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert message: %w", err)
	}
	return nil
}

// ListMessages returns the mirrored messages for an account, newest first.
func (s *Store) ListMessages(ctx context.Context, accountID string, limit int) ([]types.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var messages []types.Message
	err := s.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages
		WHERE account_id = ?
		ORDER BY received_at DESC
		LIMIT ?`,
		accountID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// CountMessages returns the number of mirrored messages for an account.
func (s *Store) CountMessages(ctx context.Context, accountID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM messages WHERE account_id = ?", accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
