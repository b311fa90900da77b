package sync

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/easemail/mailsync/internal/config"
	"github.com/easemail/mailsync/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		BackfillMessageLimit: 5,
		BackfillWindowDays:   7,
	}
}

func TestBackfillFullRun(t *testing.T) {
	st, accountID := newTestStore(t)
	ctx := context.Background()

	client := &fakeClient{
		folders: []types.RemoteFolder{
			{ID: "f-inbox", Name: "Inbox", Attributes: []string{`\Inbox`}},
			{ID: "f-proj", Name: "Projects"},
		},
		messages: []types.RemoteMessage{
			{ID: "m1", FolderID: "f-inbox", Subject: "hello", ReceivedAt: time.Now()},
			{ID: "m2", FolderID: "f-inbox", Subject: "world", ReceivedAt: time.Now()},
		},
		calendars: []types.RemoteCalendar{
			{ID: "c1", Name: "Work", IsPrimary: true},
		},
	}

	o := NewOrchestrator(st, testConfig(), testLogger())
	result := o.Run(ctx, accountID, client)

	if !result.Success {
		t.Fatalf("Success = false, errors: folders=%v messages=%v calendars=%v",
			result.Folders.Errors, result.Messages.Errors, result.Calendars.Errors)
	}
	if result.Folders.Synced != 2 {
		t.Errorf("Folders.Synced = %d, want 2", result.Folders.Synced)
	}
	if result.Messages.Synced != 2 {
		t.Errorf("Messages.Synced = %d, want 2", result.Messages.Synced)
	}
	if result.Calendars.Synced != 1 {
		t.Errorf("Calendars.Synced = %d, want 1", result.Calendars.Synced)
	}

	// The message stage must target the canonical inbox with the
	// configured cap and a trailing window.
	opts := client.lastMessageOpts
	if len(opts.FolderIDs) != 1 || opts.FolderIDs[0] != "f-inbox" {
		t.Errorf("message stage folders = %v, want [f-inbox]", opts.FolderIDs)
	}
	if opts.Limit != 5 {
		t.Errorf("message stage limit = %d, want 5", opts.Limit)
	}
	if opts.ReceivedAfter.IsZero() {
		t.Error("message stage should restrict to a trailing time window")
	}

	acc, err := st.GetAccount(ctx, accountID)
	if err != nil {
		t.Fatal(err)
	}
	if acc.SyncStatus != types.SyncStatusDone {
		t.Errorf("account sync status = %q, want done", acc.SyncStatus)
	}
	if acc.LastBackfillAt == nil {
		t.Error("last_backfill_at should be recorded")
	}

	count, err := st.CountMessages(ctx, accountID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("mirrored message count = %d, want 2", count)
	}
}

func TestBackfillNoInboxSkipsMessagesOnly(t *testing.T) {
	st, accountID := newTestStore(t)

	client := &fakeClient{
		folders: []types.RemoteFolder{
			{ID: "f-proj", Name: "Projects"},
		},
		calendars: []types.RemoteCalendar{
			{ID: "c1", Name: "Work"},
			{ID: "c2", Name: "Personal"},
		},
	}

	o := NewOrchestrator(st, testConfig(), testLogger())
	result := o.Run(context.Background(), accountID, client)

	if !result.Success {
		t.Fatal("a missing inbox is not a fatal failure")
	}
	if result.Messages.Synced != 0 {
		t.Errorf("Messages.Synced = %d, want 0", result.Messages.Synced)
	}
	if len(result.Messages.Errors) != 1 || result.Messages.Errors[0] != "no inbox folder found for backfill" {
		t.Errorf("Messages.Errors = %v, want the single inbox-lookup error", result.Messages.Errors)
	}
	// The calendar stage still runs.
	if result.Calendars.Synced != 2 {
		t.Errorf("Calendars.Synced = %d, want 2", result.Calendars.Synced)
	}
}

func TestBackfillProviderDown(t *testing.T) {
	st, accountID := newTestStore(t)

	client := &fakeClient{
		foldersErr:   fmt.Errorf("connection refused"),
		messagesErr:  fmt.Errorf("connection refused"),
		calendarsErr: fmt.Errorf("connection refused"),
	}

	o := NewOrchestrator(st, testConfig(), testLogger())
	result := o.Run(context.Background(), accountID, client)

	// Stage failures are collected, not escalated.
	if !result.Success {
		t.Error("stage-level failures must not flip the overall success flag")
	}
	if len(result.Folders.Errors) != 1 {
		t.Errorf("Folders.Errors = %v, want one", result.Folders.Errors)
	}
	// With no folder mappings written, the message stage reports the
	// inbox lookup failure rather than the provider error.
	if len(result.Messages.Errors) != 1 {
		t.Errorf("Messages.Errors = %v, want one", result.Messages.Errors)
	}
	if len(result.Calendars.Errors) != 1 {
		t.Errorf("Calendars.Errors = %v, want one", result.Calendars.Errors)
	}
}

func TestBackfillConcurrencyGuard(t *testing.T) {
	st, accountID := newTestStore(t)
	ctx := context.Background()

	// Simulate a run already in flight.
	started, err := st.TryBeginBackfill(ctx, accountID)
	if err != nil || !started {
		t.Fatalf("seeding syncing state: started=%v err=%v", started, err)
	}

	o := NewOrchestrator(st, testConfig(), testLogger())
	result := o.Run(ctx, accountID, &fakeClient{})

	if result.Success {
		t.Error("a duplicate run must be refused")
	}
	if result.Folders.Synced != 0 || result.Messages.Synced != 0 || result.Calendars.Synced != 0 {
		t.Error("a refused run must not sync anything")
	}
	if len(result.Folders.Errors) != 1 {
		t.Errorf("Folders.Errors = %v, want the single guard error", result.Folders.Errors)
	}
}

func TestBackfillUnknownAccount(t *testing.T) {
	st, _ := newTestStore(t)

	o := NewOrchestrator(st, testConfig(), testLogger())
	result := o.Run(context.Background(), "no-such-account", &fakeClient{})

	if result.Success {
		t.Error("a run for an unknown account must fail")
	}
	if len(result.Folders.Errors) != 1 {
		t.Fatalf("Folders.Errors = %v, want one", result.Folders.Errors)
	}
	// The refusal must name the real cause, not claim a run is in flight.
	if !strings.Contains(result.Folders.Errors[0], "account not found") {
		t.Errorf("error = %q, want it to report the missing account", result.Folders.Errors[0])
	}
}

func TestBackfillRerunIsSafe(t *testing.T) {
	st, accountID := newTestStore(t)
	ctx := context.Background()

	client := &fakeClient{
		folders: []types.RemoteFolder{
			{ID: "f-inbox", Name: "Inbox", Attributes: []string{`\Inbox`}},
		},
		messages: []types.RemoteMessage{
			{ID: "m1", FolderID: "f-inbox", ReceivedAt: time.Now()},
		},
	}

	o := NewOrchestrator(st, testConfig(), testLogger())
	first := o.Run(ctx, accountID, client)
	second := o.Run(ctx, accountID, client)

	if !first.Success || !second.Success {
		t.Fatal("both runs should succeed")
	}
	// Everything is upsert-based: the second run overwrites, never
	// duplicates.
	count, err := st.CountMessages(ctx, accountID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("message count after re-run = %d, want 1", count)
	}
	mappings, err := st.ListFolderMappings(ctx, accountID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mappings) != 1 {
		t.Errorf("mapping count after re-run = %d, want 1", len(mappings))
	}
}
