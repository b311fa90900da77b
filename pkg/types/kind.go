package types

// FolderKind is the semantic category assigned to a mail folder.
type FolderKind string

const (
	KindInbox     FolderKind = "inbox"
	KindSent      FolderKind = "sent"
	KindDrafts    FolderKind = "drafts"
	KindTrash     FolderKind = "trash"
	KindSpam      FolderKind = "spam"
	KindArchive   FolderKind = "archive"
	KindStarred   FolderKind = "starred"
	KindImportant FolderKind = "important"
	// KindCustom is the fallback for user-created or unrecognized folders.
	KindCustom FolderKind = "custom"
)

// Kinds lists every valid folder kind.
var Kinds = []FolderKind{
	KindInbox,
	KindSent,
	KindDrafts,
	KindTrash,
	KindSpam,
	KindArchive,
	KindStarred,
	KindImportant,
	KindCustom,
}

// IsValid reports whether k is one of the known folder kinds.
func (k FolderKind) IsValid() bool {
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// IsSystem reports whether the kind denotes a system folder. Every kind
// except custom is a system folder.
func (k FolderKind) IsSystem() bool {
	return k != KindCustom && k.IsValid()
}

func (k FolderKind) String() string {
	return string(k)
}
