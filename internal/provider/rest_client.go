package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easemail/mailsync/internal/config"
	"github.com/easemail/mailsync/pkg/types"
)

// RESTClient talks to the hosted email API over HTTP/JSON. Requests are
// Bearer-authenticated and scoped to the account's grant. HTTP 429 is
// retried with exponential backoff.
type RESTClient struct {
	baseURL    string
	token      string
	grantID    string
	httpClient *http.Client
	maxRetries int
	logger     *logrus.Logger
}

// NewRESTClient creates a client for the hosted email API.
func NewRESTClient(cfg *config.AccountConfig, logger *logrus.Logger) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		token:   cfg.APIToken,
		grantID: cfg.GrantID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		logger:     logger,
	}
}

// Wire shapes of the hosted API.

type restFolder struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ParentID    *string  `json:"parent_id"`
	Attributes  []string `json:"attributes"`
	UnreadCount int      `json:"unread_count"`
	TotalCount  int      `json:"total_count"`
	ChildCount  int      `json:"child_count"`
}

type restAddress struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type restMessage struct {
	ID       string        `json:"id"`
	Folders  []string      `json:"folders"`
	Subject  string        `json:"subject"`
	From     []restAddress `json:"from"`
	Snippet  string        `json:"snippet"`
	Unread   bool          `json:"unread"`
	Starred  bool          `json:"starred"`
	DateUnix int64         `json:"date"`
}

type restCalendar struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
	IsPrimary   bool   `json:"is_primary"`
	ReadOnly    bool   `json:"read_only"`
}

type restListResponse[T any] struct {
	Data []T `json:"data"`
}

// ListFolders returns every folder of the mailbox.
func (c *RESTClient) ListFolders(ctx context.Context) ([]types.RemoteFolder, error) {
	var resp restListResponse[restFolder]
	path := fmt.Sprintf("/v3/grants/%s/folders", c.grantID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	folders := make([]types.RemoteFolder, 0, len(resp.Data))
	for _, f := range resp.Data {
		folders = append(folders, types.RemoteFolder{
			ID:          f.ID,
			Name:        f.Name,
			ParentID:    f.ParentID,
			Attributes:  f.Attributes,
			UnreadCount: f.UnreadCount,
			TotalCount:  f.TotalCount,
			ChildCount:  f.ChildCount,
		})
	}
	return folders, nil
}

// ListMessages returns messages from the requested folders, most recent
// first, capped at opts.Limit.
func (c *RESTClient) ListMessages(ctx context.Context, opts ListMessagesOptions) ([]types.RemoteMessage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	var messages []types.RemoteMessage
	for _, folderID := range opts.FolderIDs {
		q := url.Values{}
		q.Set("in", folderID)
		q.Set("limit", strconv.Itoa(limit))
		if !opts.ReceivedAfter.IsZero() {
			q.Set("received_after", strconv.FormatInt(opts.ReceivedAfter.Unix(), 10))
		}

		var resp restListResponse[restMessage]
		path := fmt.Sprintf("/v3/grants/%s/messages?%s", c.grantID, q.Encode())
		if err := c.get(ctx, path, &resp); err != nil {
			return nil, fmt.Errorf("failed to list messages in folder %s: %w", folderID, err)
		}

		for _, m := range resp.Data {
			msg := types.RemoteMessage{
				ID:         m.ID,
				FolderID:   folderID,
				Subject:    m.Subject,
				Snippet:    m.Snippet,
				Unread:     m.Unread,
				Starred:    m.Starred,
				ReceivedAt: time.Unix(m.DateUnix, 0).UTC(),
			}
			if len(m.From) > 0 {
				msg.SenderName = m.From[0].Name
				msg.SenderEmail = m.From[0].Email
			}
			messages = append(messages, msg)
		}
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].ReceivedAt.After(messages[j].ReceivedAt)
	})
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// ListCalendars returns every calendar of the mailbox.
func (c *RESTClient) ListCalendars(ctx context.Context) ([]types.RemoteCalendar, error) {
	var resp restListResponse[restCalendar]
	path := fmt.Sprintf("/v3/grants/%s/calendars", c.grantID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	calendars := make([]types.RemoteCalendar, 0, len(resp.Data))
	for _, cal := range resp.Data {
		calendars = append(calendars, types.RemoteCalendar{
			ID:          cal.ID,
			Name:        cal.Name,
			Description: cal.Description,
			Timezone:    cal.Timezone,
			IsPrimary:   cal.IsPrimary,
			ReadOnly:    cal.ReadOnly,
		})
	}
	return calendars, nil
}

// get performs an authenticated GET request and unmarshals the JSON
// response, retrying with exponential backoff on HTTP 429.
func (c *RESTClient) get(ctx context.Context, path string, result interface{}) error {
	reqURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request GET %s: %w", path, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited on GET %s", path)
			backoff := time.Duration(1<<attempt) * time.Second
			c.logger.WithFields(logrus.Fields{
				"path":    path,
				"backoff": backoff,
			}).Warn("Rate limited, backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("GET %s returned status %d: %s", path, resp.StatusCode, truncate(string(body), 200))
		}

		if result != nil {
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("unmarshaling response: %w", err)
			}
		}
		return nil
	}
	return lastErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
