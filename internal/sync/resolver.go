package sync

import (
	"context"
	"strings"

	"github.com/easemail/mailsync/pkg/types"
)

// Resolver translates a user-facing folder filter token into concrete
// remote folder ids.
type Resolver struct {
	store Store
}

// NewResolver creates a folder resolver.
func NewResolver(st Store) *Resolver {
	return &Resolver{store: st}
}

// ResolveFilter turns a filter token into remote folder ids. Tokens that
// look like opaque remote ids pass through unchanged as a single-element
// list with no lookup. Anything else is treated as a folder kind and
// resolved to the remote ids of all active mappings of that kind across the
// user's accounts. Unknown kinds and users without folders resolve to an
// empty list, never an error.
func (r *Resolver) ResolveFilter(ctx context.Context, userID, token string) ([]string, error) {
	if isOpaqueID(token) {
		return []string{token}, nil
	}

	kind := types.FolderKind(strings.ToLower(strings.TrimSpace(token)))
	ids, err := r.store.ListFolderRemoteIDsByKind(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ResolveForAccount returns the remote id of the account's canonical folder
// of the given kind: the first active match. The second return value is
// false when the account has no folder of that kind.
func (r *Resolver) ResolveForAccount(ctx context.Context, accountID string, kind types.FolderKind) (string, bool, error) {
	return r.store.FindFolderRemoteIDByKind(ctx, accountID, kind)
}

// isOpaqueID reports whether a filter token is already a concrete remote
// folder id rather than a folder kind. Provider ids are long or hyphenated;
// kind names are short plain words.
func isOpaqueID(token string) bool {
	return len(token) > 20 || strings.Contains(token, "-")
}
