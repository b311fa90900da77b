package sync

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/easemail/mailsync/internal/folder"
	"github.com/easemail/mailsync/internal/provider"
	"github.com/easemail/mailsync/pkg/types"
)

// Synchronizer mirrors the remote folder list of one mailbox into the
// local folder mapping table.
type Synchronizer struct {
	store  Store
	logger *logrus.Logger
}

// NewSynchronizer creates a folder synchronizer.
func NewSynchronizer(st Store, logger *logrus.Logger) *Synchronizer {
	return &Synchronizer{store: st, logger: logger}
}

// Sync fetches all remote folders, classifies each and upserts one mapping
// row per folder. A failure to reach the provider aborts the whole run with
// a single error and zero synced. Per-folder failures are collected by name
// and do not stop the remaining folders; partial success is expected and
// reported through the Synced count against the Errors list.
func (s *Synchronizer) Sync(ctx context.Context, accountID string, client provider.Client) types.SyncResult {
	var result types.SyncResult

	remoteFolders, err := client.ListFolders(ctx)
	if err != nil {
		result.AddError(fmt.Sprintf("failed to fetch folders: %v", err))
		return result
	}

	for _, rf := range remoteFolders {
		if err := s.syncOne(ctx, accountID, rf); err != nil {
			name := rf.Name
			if name == "" {
				name = rf.ID
			}
			result.AddError(fmt.Sprintf("folder %q: %v", name, err))
			continue
		}
		result.Synced++
	}

	s.logger.WithFields(logrus.Fields{
		"account": accountID,
		"synced":  result.Synced,
		"errors":  len(result.Errors),
	}).Info("Synced folders")

	return result
}

// syncOne classifies and upserts a single remote folder.
func (s *Synchronizer) syncOne(ctx context.Context, accountID string, rf types.RemoteFolder) error {
	kind := folder.Classify(rf.Attributes, rf.Name)

	name := rf.Name
	if name == "" {
		name = "Unnamed"
	}

	mapping := &types.FolderMapping{
		AccountID:      accountID,
		RemoteID:       rf.ID,
		Name:           name,
		Kind:           kind,
		ParentRemoteID: rf.ParentID,
		Attributes:     rf.Attributes,
		UnreadCount:    rf.UnreadCount,
		TotalCount:     rf.TotalCount,
		ChildCount:     rf.ChildCount,
		IsSystemFolder: kind.IsSystem(),
		IsActive:       true,
	}

	return s.store.UpsertFolderMapping(ctx, mapping)
}
