package provider

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"

	"github.com/easemail/mailsync/internal/config"
)

func newTestIMAPClient(name string) *IMAPClient {
	return NewIMAPClient(&config.AccountConfig{
		Name:         name,
		Provider:     config.ProviderIMAP,
		IMAPHost:     "imap.example.com",
		IMAPPort:     993,
		IMAPUsername: "me@example.com",
		IMAPPassword: "secret",
	}, testLogger())
}

func TestParseEnvelope(t *testing.T) {
	c := newTestIMAPClient("work")
	msg := &imap.Message{
		Uid:          42,
		InternalDate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Flags:        []string{imap.SeenFlag, imap.FlaggedFlag},
		Envelope: &imap.Envelope{
			Subject: "hello",
			Date:    time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
			From: []*imap.Address{
				{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"},
			},
		},
	}

	m := c.parseEnvelope("INBOX", msg)

	if m.Subject != "hello" {
		t.Errorf("subject = %q, want hello", m.Subject)
	}
	if m.SenderName != "Alice" || m.SenderEmail != "alice@example.com" {
		t.Errorf("sender = %q <%s>", m.SenderName, m.SenderEmail)
	}
	if m.Unread {
		t.Error("a \\Seen message should not be unread")
	}
	if !m.Starred {
		t.Error("a \\Flagged message should be starred")
	}
	if m.FolderID != "INBOX" {
		t.Errorf("folder id = %q, want INBOX", m.FolderID)
	}
	if !strings.HasPrefix(m.ID, "work/") {
		t.Errorf("message id %q should carry the account prefix", m.ID)
	}
}

// Fabricated ids must stay unique across accounts: two mailboxes both have
// an INBOX with UID 1, and the mirror keys messages on remote id globally.
func TestParseEnvelopeIDsUniqueAcrossAccounts(t *testing.T) {
	msg := &imap.Message{
		Uid:          1,
		InternalDate: time.Now(),
		Envelope:     &imap.Envelope{Subject: "same uid"},
	}

	a := newTestIMAPClient("work").parseEnvelope("INBOX", msg)
	b := newTestIMAPClient("personal").parseEnvelope("INBOX", msg)

	if a.ID == b.ID {
		t.Fatalf("accounts produced the same message id %q", a.ID)
	}
}
