// Package sync implements the folder classification and synchronization
// engine: mirroring remote folders, resolving folder filters, and the
// one-time initial backfill of a newly connected mailbox.
package sync

import (
	"context"

	"github.com/easemail/mailsync/pkg/types"
)

// Store is the mirror storage the sync engine writes to and reads from.
// *store.Store satisfies it.
type Store interface {
	UpsertFolderMapping(ctx context.Context, m *types.FolderMapping) error
	UpsertMessage(ctx context.Context, m *types.Message) error
	UpsertCalendar(ctx context.Context, c *types.Calendar) error
	ListFolderRemoteIDsByKind(ctx context.Context, userID string, kind types.FolderKind) ([]string, error)
	FindFolderRemoteIDByKind(ctx context.Context, accountID string, kind types.FolderKind) (string, bool, error)
	TryBeginBackfill(ctx context.Context, accountID string) (bool, error)
	FinishBackfill(ctx context.Context, accountID string, status types.SyncStatus) error
}
