package provider

import (
	"context"
	"crypto/tls"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"

	"github.com/easemail/mailsync/internal/config"
	"github.com/easemail/mailsync/pkg/types"
)

// IMAPClient is the provider implementation for plain IMAP mailboxes.
// Folder ids are mailbox names; message ids combine the mailbox name and
// the message UID. IMAP has no calendar concept, so ListCalendars is empty.
type IMAPClient struct {
	cfg       *config.AccountConfig
	client    *imapclient.Client
	logger    *logrus.Logger
	connected bool
}

// NewIMAPClient creates an IMAP provider client. It does not connect until
// the first call.
func NewIMAPClient(cfg *config.AccountConfig, logger *logrus.Logger) *IMAPClient {
	return &IMAPClient{
		cfg:    cfg,
		logger: logger,
	}
}

// connect establishes the IMAP connection and logs in.
func (c *IMAPClient) connect() error {
	if c.connected && c.client != nil {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.IMAPHost, c.cfg.IMAPPort)
	cl, err := imapclient.DialTLS(addr, &tls.Config{
		ServerName: c.cfg.IMAPHost,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to IMAP server: %w", err)
	}

	if err := cl.Login(c.cfg.IMAPUsername, c.cfg.IMAPPassword); err != nil {
		cl.Logout() //nolint:errcheck
		return fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	c.client = cl
	c.connected = true
	c.logger.WithField("account", c.cfg.Name).Info("Connected to IMAP server")
	return nil
}

// Close logs out and drops the connection.
func (c *IMAPClient) Close() error {
	if c.client != nil {
		if err := c.client.Logout(); err != nil {
			return err
		}
		c.client = nil
		c.connected = false
	}
	return nil
}

// ListFolders lists all mailboxes with their special-use attributes and
// message counts.
func (c *IMAPClient) ListFolders(ctx context.Context) ([]types.RemoteFolder, error) {
	if err := c.connect(); err != nil {
		return nil, err
	}

	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.client.List("", "*", mailboxes)
	}()

	var all []imap.MailboxInfo
	for m := range mailboxes {
		all = append(all, *m)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	folders := make([]types.RemoteFolder, 0, len(all))
	for _, info := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		folder := types.RemoteFolder{
			ID:         info.Name,
			Name:       displayName(info.Name, info.Delimiter),
			Attributes: info.Attributes,
		}

		if parent := parentName(info.Name, info.Delimiter); parent != "" {
			p := parent
			folder.ParentID = &p
		}
		for _, other := range all {
			if info.Delimiter != "" && strings.HasPrefix(other.Name, info.Name+info.Delimiter) {
				folder.ChildCount++
			}
		}

		// \Noselect mailboxes cannot be opened for STATUS.
		if !hasAttribute(info.Attributes, imap.NoSelectAttr) {
			status, err := c.client.Status(info.Name, []imap.StatusItem{imap.StatusMessages, imap.StatusUnseen})
			if err != nil {
				c.logger.WithError(err).WithField("folder", info.Name).Debug("Failed to get folder status")
			} else {
				folder.TotalCount = int(status.Messages)
				folder.UnreadCount = int(status.Unseen)
			}
		}

		folders = append(folders, folder)
	}

	return folders, nil
}

// ListMessages fetches message envelopes from the requested mailboxes,
// most recent first, capped at opts.Limit.
func (c *IMAPClient) ListMessages(ctx context.Context, opts ListMessagesOptions) ([]types.RemoteMessage, error) {
	if err := c.connect(); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	var messages []types.RemoteMessage
	for _, folderID := range opts.FolderIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		folderMessages, err := c.fetchFolder(folderID, opts.ReceivedAfter, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch messages from %s: %w", folderID, err)
		}
		messages = append(messages, folderMessages...)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].ReceivedAt.After(messages[j].ReceivedAt)
	})
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// fetchFolder selects one mailbox and fetches the envelopes of the most
// recent messages received after since.
func (c *IMAPClient) fetchFolder(folderID string, since time.Time, limit int) ([]types.RemoteMessage, error) {
	if _, err := c.client.Select(folderID, true); err != nil {
		return nil, fmt.Errorf("failed to select folder: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	if !since.IsZero() {
		criteria.Since = since
	}
	uids, err := c.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	if len(uids) == 0 {
		return nil, nil
	}

	// UIDs ascend with arrival; keep only the newest ones.
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	if len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)
	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchFlags, imap.FetchInternalDate, imap.FetchUid}

	fetched := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.client.UidFetch(seqSet, items, fetched)
	}()

	var messages []types.RemoteMessage
	for msg := range fetched {
		messages = append(messages, c.parseEnvelope(folderID, msg))
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

// ListCalendars returns an empty list; IMAP exposes no calendars.
func (c *IMAPClient) ListCalendars(ctx context.Context) ([]types.RemoteCalendar, error) {
	return nil, nil
}

// parseEnvelope converts one fetched IMAP message into a RemoteMessage.
// IMAP has no provider-wide message ids, so one is fabricated from the
// account name, mailbox and UID. The account prefix keeps ids unique
// across accounts; the messages table keys on remote id globally.
func (c *IMAPClient) parseEnvelope(folderID string, msg *imap.Message) types.RemoteMessage {
	m := types.RemoteMessage{
		ID:         fmt.Sprintf("%s/%s:%d", c.cfg.Name, folderID, msg.Uid),
		FolderID:   folderID,
		ReceivedAt: msg.InternalDate.UTC(),
		Unread:     true,
	}

	if msg.Envelope != nil {
		m.Subject = msg.Envelope.Subject
		if !msg.Envelope.Date.IsZero() {
			m.ReceivedAt = msg.Envelope.Date.UTC()
		}
		if len(msg.Envelope.From) > 0 {
			addr := msg.Envelope.From[0]
			m.SenderName = addr.PersonalName
			m.SenderEmail = addr.Address()
		}
	}

	for _, flag := range msg.Flags {
		switch flag {
		case imap.SeenFlag:
			m.Unread = false
		case imap.FlaggedFlag:
			m.Starred = true
		}
	}
	return m
}

// hasAttribute checks if a mailbox carries a specific IMAP attribute.
func hasAttribute(attrs []string, target string) bool {
	for _, attr := range attrs {
		if strings.EqualFold(attr, target) {
			return true
		}
	}
	return false
}

// displayName returns the last path segment of a mailbox name.
func displayName(name, delimiter string) string {
	if delimiter == "" {
		return name
	}
	if idx := strings.LastIndex(name, delimiter); idx >= 0 {
		return name[idx+len(delimiter):]
	}
	return name
}

// parentName returns the mailbox name of the parent, or "" for top-level
// mailboxes.
func parentName(name, delimiter string) string {
	if delimiter == "" {
		return ""
	}
	if idx := strings.LastIndex(name, delimiter); idx >= 0 {
		return name[:idx]
	}
	return ""
}
