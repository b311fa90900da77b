package sync

import (
	"context"
	"sort"
	"testing"

	"github.com/easemail/mailsync/pkg/types"
)

func TestResolveFilterOpaqueID(t *testing.T) {
	st, _ := newTestStore(t)
	r := NewResolver(st)

	tokens := []string{
		"4f3a9c1e-8b2d-4e5f-9a1b-3c6d7e8f9a0b", // uuid-shaped
		"folder-123",                           // short but hyphenated
		"abcdefghijklmnopqrstu",                // long without hyphen
	}
	for _, token := range tokens {
		ids, err := r.ResolveFilter(context.Background(), "user-1", token)
		if err != nil {
			t.Fatalf("ResolveFilter(%q): %v", token, err)
		}
		if len(ids) != 1 || ids[0] != token {
			t.Errorf("ResolveFilter(%q) = %v, want [%q] unchanged", token, ids, token)
		}
	}
}

func TestResolveFilterByKind(t *testing.T) {
	st, accountID := newTestStore(t)
	ctx := context.Background()

	seed := []struct {
		remoteID string
		kind     types.FolderKind
	}{
		{"r1", types.KindStarred},
		{"r2", types.KindStarred},
		{"r3", types.KindInbox},
	}
	for _, f := range seed {
		err := st.UpsertFolderMapping(ctx, &types.FolderMapping{
			AccountID: accountID,
			RemoteID:  f.remoteID,
			Name:      f.remoteID,
			Kind:      f.kind,
			IsActive:  true,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	r := NewResolver(st)
	ids, err := r.ResolveFilter(ctx, "user-1", "starred")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "r1" || ids[1] != "r2" {
		t.Errorf("ResolveFilter(starred) = %v, want [r1 r2]", ids)
	}
}

func TestResolveFilterUnknownKind(t *testing.T) {
	st, _ := newTestStore(t)
	r := NewResolver(st)

	ids, err := r.ResolveFilter(context.Background(), "user-1", "nonsense")
	if err != nil {
		t.Fatalf("unknown kind must not error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ResolveFilter(nonsense) = %v, want empty", ids)
	}

	ids, err = r.ResolveFilter(context.Background(), "no-such-user-x", "inbox")
	if err != nil {
		t.Fatalf("user without folders must not error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ResolveFilter for empty user = %v, want empty", ids)
	}
}

func TestResolveForAccount(t *testing.T) {
	st, accountID := newTestStore(t)
	ctx := context.Background()

	r := NewResolver(st)

	if _, ok, err := r.ResolveForAccount(ctx, accountID, types.KindInbox); err != nil || ok {
		t.Fatalf("ResolveForAccount on empty account = ok=%v err=%v, want not found", ok, err)
	}

	err := st.UpsertFolderMapping(ctx, &types.FolderMapping{
		AccountID: accountID,
		RemoteID:  "inbox-remote",
		Name:      "INBOX",
		Kind:      types.KindInbox,
		IsActive:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	id, ok, err := r.ResolveForAccount(ctx, accountID, types.KindInbox)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || id != "inbox-remote" {
		t.Errorf("ResolveForAccount = (%q, %v), want (inbox-remote, true)", id, ok)
	}
}

func TestIsOpaqueID(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"inbox", false},
		{"starred", false},
		{"important", false},
		{"folder-1", true},
		{"abcdefghijklmnopqrstuvwxyz", true},
	}
	for _, tt := range tests {
		if got := isOpaqueID(tt.token); got != tt.want {
			t.Errorf("isOpaqueID(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
