package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easemail/mailsync/pkg/types"
)

// UpsertAccount registers an account by name and returns its id. Re-running
// with the same name updates the row in place and keeps the original id.
func (s *Store) UpsertAccount(ctx context.Context, acc *types.EmailAccount) (string, error) {
	if acc.ID == "" {
		acc.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO email_accounts (id, user_id, name, provider, sync_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			user_id = excluded.user_id,
			provider = excluded.provider,
			updated_at = excluded.updated_at`,
		acc.ID, acc.UserID, acc.Name, acc.Provider, types.SyncStatusIdle, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to upsert account: %w", err)
	}

	// The insert may have hit the conflict path; read back the stable id.
	var id string
	if err := s.db.GetContext(ctx, &id, "SELECT id FROM email_accounts WHERE name = ?", acc.Name); err != nil {
		return "", fmt.Errorf("failed to get account id: %w", err)
	}
	acc.ID = id
	return id, nil
}

// GetAccount returns an account by id.
func (s *Store) GetAccount(ctx context.Context, id string) (*types.EmailAccount, error) {
	var acc types.EmailAccount
	err := s.db.GetContext(ctx, &acc, "SELECT * FROM email_accounts WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// GetAccountByName returns an account by its configured name.
func (s *Store) GetAccountByName(ctx context.Context, name string) (*types.EmailAccount, error) {
	var acc types.EmailAccount
	err := s.db.GetContext(ctx, &acc, "SELECT * FROM email_accounts WHERE name = ?", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// TryBeginBackfill flips the account into the syncing state. It returns
// false when the account is already syncing, which callers use as a guard
// against concurrent backfill runs for the same account. An unknown account
// id is an error, not a refused begin.
func (s *Store) TryBeginBackfill(ctx context.Context, accountID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE email_accounts
		SET sync_status = ?, updated_at = ?
		WHERE id = ? AND sync_status != ?`,
		types.SyncStatusSyncing, time.Now().UTC(), accountID, types.SyncStatusSyncing,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update sync status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	// Nothing updated: either the account is mid-backfill or it does not
	// exist at all. Tell the two apart so callers don't report a phantom
	// in-progress run.
	var status string
	err = s.db.GetContext(ctx, &status, "SELECT sync_status FROM email_accounts WHERE id = ?", accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("account not found: %s", accountID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to get sync status: %w", err)
	}
	return false, nil
}

// FinishBackfill records the terminal status of a backfill run.
func (s *Store) FinishBackfill(ctx context.Context, accountID string, status types.SyncStatus) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		UPDATE email_accounts
		SET sync_status = ?, last_backfill_at = ?, updated_at = ?
		WHERE id = ?`,
		status, now, now, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish backfill: %w", err)
	}
	return nil
}
