package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easemail/mailsync/internal/config"
	"github.com/easemail/mailsync/internal/provider"
	"github.com/easemail/mailsync/pkg/types"
)

// Orchestrator runs the one-time initial backfill for a newly connected
// mailbox: folders first, then recent inbox messages, then calendar
// metadata. Each stage is independently fault-tolerant; a failed stage
// never blocks the next one.
type Orchestrator struct {
	store        Store
	folders      *Synchronizer
	resolver     *Resolver
	logger       *logrus.Logger
	messageLimit int
	window       time.Duration
}

// NewOrchestrator creates a backfill orchestrator.
func NewOrchestrator(st Store, cfg *config.Config, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		store:        st,
		folders:      NewSynchronizer(st, logger),
		resolver:     NewResolver(st),
		logger:       logger,
		messageLimit: cfg.BackfillMessageLimit,
		window:       time.Duration(cfg.BackfillWindowDays) * 24 * time.Hour,
	}
}

// Run executes the three backfill stages for one account. Errors are
// collected into the per-stage results as human-readable strings; nothing
// escapes the orchestrator. Success is false only when the run could not
// start or something unexpected escaped a stage, in which case the text is
// appended to the folder-stage errors as a catch-all. Re-running is safe:
// every stage is upsert-based.
func (o *Orchestrator) Run(ctx context.Context, accountID string, client provider.Client) (result types.BackfillResult) {
	result.Success = true

	started, err := o.store.TryBeginBackfill(ctx, accountID)
	if err != nil {
		result.Success = false
		result.Folders.AddError(fmt.Sprintf("failed to start backfill: %v", err))
		return result
	}
	if !started {
		result.Success = false
		result.Folders.AddError("backfill already in progress for this account")
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Folders.AddError(fmt.Sprintf("unexpected failure during backfill: %v", r))
		}

		status := types.SyncStatusDone
		if !result.Success {
			status = types.SyncStatusError
		}
		if err := o.store.FinishBackfill(ctx, accountID, status); err != nil {
			o.logger.WithError(err).WithField("account", accountID).Warn("Failed to record backfill status")
		}

		o.logger.WithFields(logrus.Fields{
			"account":   accountID,
			"success":   result.Success,
			"folders":   result.Folders.Synced,
			"messages":  result.Messages.Synced,
			"calendars": result.Calendars.Synced,
			"errors":    result.TotalErrors(),
		}).Info("Backfill finished")
	}()

	// Folders must come first: the message stage resolves the inbox from
	// the mappings this stage writes.
	result.Folders = o.folders.Sync(ctx, accountID, client)
	result.Messages = o.runMessageStage(ctx, accountID, client)
	result.Calendars = o.runCalendarStage(ctx, accountID, client)

	return result
}

// runMessageStage mirrors the most recent inbox messages. A missing inbox
// mapping records one error and skips the stage; it is not fatal to the
// orchestrator.
func (o *Orchestrator) runMessageStage(ctx context.Context, accountID string, client provider.Client) types.SyncResult {
	var result types.SyncResult

	inboxID, ok, err := o.resolver.ResolveForAccount(ctx, accountID, types.KindInbox)
	if err != nil {
		result.AddError(fmt.Sprintf("failed to resolve inbox folder: %v", err))
		return result
	}
	if !ok {
		result.AddError("no inbox folder found for backfill")
		return result
	}

	messages, err := client.ListMessages(ctx, provider.ListMessagesOptions{
		FolderIDs:     []string{inboxID},
		ReceivedAfter: time.Now().Add(-o.window),
		Limit:         o.messageLimit,
	})
	if err != nil {
		result.AddError(fmt.Sprintf("failed to fetch messages: %v", err))
		return result
	}

	for _, rm := range messages {
		msg := &types.Message{
			AccountID:      accountID,
			RemoteID:       rm.ID,
			FolderRemoteID: rm.FolderID,
			Subject:        rm.Subject,
			SenderName:     rm.SenderName,
			SenderEmail:    rm.SenderEmail,
			Snippet:        rm.Snippet,
			Unread:         rm.Unread,
			Starred:        rm.Starred,
			ReceivedAt:     rm.ReceivedAt,
		}
		if err := o.store.UpsertMessage(ctx, msg); err != nil {
			result.AddError(fmt.Sprintf("message %s: %v", rm.ID, err))
			continue
		}
		result.Synced++
	}

	return result
}

// runCalendarStage mirrors the mailbox's calendar metadata.
func (o *Orchestrator) runCalendarStage(ctx context.Context, accountID string, client provider.Client) types.SyncResult {
	var result types.SyncResult

	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		result.AddError(fmt.Sprintf("failed to fetch calendars: %v", err))
		return result
	}

	for _, rc := range calendars {
		cal := &types.Calendar{
			AccountID:   accountID,
			RemoteID:    rc.ID,
			Name:        rc.Name,
			Description: rc.Description,
			Timezone:    rc.Timezone,
			IsPrimary:   rc.IsPrimary,
			ReadOnly:    rc.ReadOnly,
		}
		if err := o.store.UpsertCalendar(ctx, cal); err != nil {
			result.AddError(fmt.Sprintf("calendar %s: %v", rc.ID, err))
			continue
		}
		result.Synced++
	}

	return result
}
