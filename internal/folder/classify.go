package folder

import (
	"strings"

	"github.com/easemail/mailsync/pkg/types"
)

// Classify determines the semantic kind of a folder from its raw attribute
// tags, falling back to the display name when the attributes are not
// recognized. It always returns a valid kind; unrecognized folders are
// KindCustom.
func Classify(attrs []string, name string) types.FolderKind {
	if kind := ClassifyAttributes(attrs); kind != types.KindCustom {
		return kind
	}
	return ClassifyName(name)
}

// ClassifyAttributes maps special-use attribute tags (RFC 6154 style, e.g.
// "\Inbox", "\Sent") to a folder kind. Checks run in fixed priority order
// and the first match wins.
func ClassifyAttributes(attrs []string) types.FolderKind {
	tags := normalizeAttrs(attrs)

	switch {
	case tags["inbox"] || tags["all"] || tags["allmail"]:
		return types.KindInbox
	case tags["sent"]:
		return types.KindSent
	case tags["drafts"] || tags["draft"]:
		return types.KindDrafts
	case tags["trash"] || tags["deleted"]:
		return types.KindTrash
	case tags["junk"] || tags["spam"]:
		return types.KindSpam
	case tags["archive"]:
		return types.KindArchive
	case tags["flagged"] || tags["starred"]:
		return types.KindStarred
	case tags["important"]:
		return types.KindImportant
	default:
		return types.KindCustom
	}
}

// ClassifyName maps a display name to a folder kind using case-insensitive
// substring matching. "inbox" and "all mail" must match exactly; the rest
// match anywhere in the name. First match wins.
func ClassifyName(name string) types.FolderKind {
	n := strings.ToLower(strings.TrimSpace(name))

	switch {
	case n == "inbox" || n == "all mail":
		return types.KindInbox
	case strings.Contains(n, "sent"):
		return types.KindSent
	case strings.Contains(n, "draft"):
		return types.KindDrafts
	case strings.Contains(n, "trash") || strings.Contains(n, "deleted"):
		return types.KindTrash
	case strings.Contains(n, "spam") || strings.Contains(n, "junk"):
		return types.KindSpam
	case strings.Contains(n, "archive"):
		return types.KindArchive
	case strings.Contains(n, "starred") || strings.Contains(n, "flagged"):
		return types.KindStarred
	case strings.Contains(n, "important"):
		return types.KindImportant
	default:
		return types.KindCustom
	}
}

// IsSystemFolder reports whether a folder with the given attributes and
// name is a system folder, i.e. classifies to anything but custom.
func IsSystemFolder(attrs []string, name string) bool {
	return Classify(attrs, name) != types.KindCustom
}

// normalizeAttrs lowercases tags and strips the leading backslashes that
// IMAP-style special-use attributes carry ("\Sent" -> "sent").
func normalizeAttrs(attrs []string) map[string]bool {
	tags := make(map[string]bool, len(attrs))
	for _, attr := range attrs {
		tag := strings.ToLower(strings.TrimSpace(attr))
		tag = strings.TrimLeft(tag, "\\")
		if tag != "" {
			tags[tag] = true
		}
	}
	return tags
}
