package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easemail/mailsync/pkg/types"
)

// UpsertCalendar writes the local mirror row for one remote calendar, keyed
// by (account id, remote calendar id).
func (s *Store) UpsertCalendar(ctx context.Context, c *types.Calendar) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendars (
			id, account_id, remote_id, name, description, timezone,
			is_primary, read_only, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, remote_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			timezone = excluded.timezone,
			is_primary = excluded.is_primary,
			read_only = excluded.read_only,
			updated_at = excluded.updated_at`,
		c.ID, c.AccountID, c.RemoteID, c.Name, c.Description, c.Timezone,
		c.IsPrimary, c.ReadOnly, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert calendar: %w", err)
	}
	return nil
}

// ListCalendars returns the mirrored calendars for an account.
func (s *Store) ListCalendars(ctx context.Context, accountID string) ([]types.Calendar, error) {
	var calendars []types.Calendar
	err := s.db.SelectContext(ctx, &calendars,
		"SELECT * FROM calendars WHERE account_id = ?", accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	return calendars, nil
}
