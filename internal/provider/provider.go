package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easemail/mailsync/internal/config"
	"github.com/easemail/mailsync/pkg/types"
)

// ListMessagesOptions narrows a message listing to a set of folders, a
// trailing time window and a result cap.
type ListMessagesOptions struct {
	// FolderIDs restricts the listing to these remote folder ids.
	FolderIDs []string
	// ReceivedAfter excludes messages received at or before this instant.
	// The zero value means no restriction.
	ReceivedAfter time.Time
	// Limit caps the number of returned messages. Zero means the
	// implementation's default.
	Limit int
}

// Client is the remote mailbox provider boundary: everything the sync
// engine needs from the service holding the actual folders, messages and
// calendars.
type Client interface {
	// ListFolders returns every folder of the mailbox.
	ListFolders(ctx context.Context) ([]types.RemoteFolder, error)
	// ListMessages returns messages matching opts, most recent first.
	ListMessages(ctx context.Context, opts ListMessagesOptions) ([]types.RemoteMessage, error)
	// ListCalendars returns every calendar of the mailbox. Providers
	// without calendar support return an empty list.
	ListCalendars(ctx context.Context) ([]types.RemoteCalendar, error)
}

// New builds the provider client for one configured account.
func New(cfg *config.AccountConfig, logger *logrus.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderREST:
		return NewRESTClient(cfg, logger), nil
	case config.ProviderIMAP:
		return NewIMAPClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider %q for account %s", cfg.Provider, cfg.Name)
	}
}
