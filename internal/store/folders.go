package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easemail/mailsync/pkg/types"
)

// folderRow carries the serialized attributes column alongside the
// FolderMapping fields.
type folderRow struct {
	types.FolderMapping
	AttributesJSON string `db:"attributes"`
}

func (r *folderRow) mapping() (*types.FolderMapping, error) {
	m := r.FolderMapping
	if r.AttributesJSON != "" {
		if err := json.Unmarshal([]byte(r.AttributesJSON), &m.Attributes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
		}
	}
	return &m, nil
}

// UpsertFolderMapping writes the local mirror row for one remote folder,
// keyed by (account id, remote folder id). Re-syncing overwrites in place;
// it never produces duplicates.
func (s *Store) UpsertFolderMapping(ctx context.Context, m *types.FolderMapping) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if m.LastSyncedAt == nil {
		m.LastSyncedAt = &now
	}

	attrs := m.Attributes
	if attrs == nil {
		attrs = []string{}
	}
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO folder_mappings (
			id, account_id, remote_id, name, kind, parent_remote_id, attributes,
			unread_count, total_count, child_count, is_system_folder, is_active,
			created_at, updated_at, last_synced_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, remote_id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			parent_remote_id = excluded.parent_remote_id,
			attributes = excluded.attributes,
			unread_count = excluded.unread_count,
			total_count = excluded.total_count,
			child_count = excluded.child_count,
			is_system_folder = excluded.is_system_folder,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at,
			last_synced_at = excluded.last_synced_at`,
		m.ID, m.AccountID, m.RemoteID, m.Name, m.Kind, m.ParentRemoteID, string(attrsJSON),
		m.UnreadCount, m.TotalCount, m.ChildCount, m.IsSystemFolder, m.IsActive,
		now, now, m.LastSyncedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert folder mapping: %w", err)
	}
	return nil
}

// GetFolderMapping returns the mapping for one remote folder of an account.
func (s *Store) GetFolderMapping(ctx context.Context, accountID, remoteID string) (*types.FolderMapping, error) {
	var row folderRow
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM folder_mappings WHERE account_id = ? AND remote_id = ?",
		accountID, remoteID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder mapping not found: %s", remoteID)
		}
		return nil, fmt.Errorf("failed to get folder mapping: %w", err)
	}
	return row.mapping()
}

// ListFolderMappings returns all active folder mappings for an account.
func (s *Store) ListFolderMappings(ctx context.Context, accountID string) ([]types.FolderMapping, error) {
	var rows []folderRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM folder_mappings WHERE account_id = ? AND is_active = 1",
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder mappings: %w", err)
	}

	mappings := make([]types.FolderMapping, 0, len(rows))
	for i := range rows {
		m, err := rows[i].mapping()
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, *m)
	}
	return mappings, nil
}

// ListFolderRemoteIDsByKind returns the remote ids of all active folders of
// the given kind across every account owned by the user. Row order follows
// storage order and is not a contract.
func (s *Store) ListFolderRemoteIDsByKind(ctx context.Context, userID string, kind types.FolderKind) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, `
		SELECT f.remote_id
		FROM folder_mappings f
		JOIN email_accounts a ON f.account_id = a.id
		WHERE a.user_id = ? AND f.kind = ? AND f.is_active = 1`,
		userID, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders by kind: %w", err)
	}
	return ids, nil
}

// FindFolderRemoteIDByKind returns the remote id of the first active folder
// of the given kind for an account. The second return value is false when
// the account has no such folder.
func (s *Store) FindFolderRemoteIDByKind(ctx context.Context, accountID string, kind types.FolderKind) (string, bool, error) {
	var id string
	err := s.db.GetContext(ctx, &id, `
		SELECT remote_id FROM folder_mappings
		WHERE account_id = ? AND kind = ? AND is_active = 1
		LIMIT 1`,
		accountID, kind,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to find folder by kind: %w", err)
	}
	return id, true, nil
}
