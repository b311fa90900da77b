package folder

import (
	"testing"

	"github.com/easemail/mailsync/pkg/types"
)

func TestClassifyAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attrs []string
		want  types.FolderKind
	}{
		{"inbox marker", []string{`\Inbox`}, types.KindInbox},
		{"all mail marker", []string{`\All`}, types.KindInbox},
		{"sent marker", []string{`\Sent`}, types.KindSent},
		{"drafts marker", []string{`\Drafts`}, types.KindDrafts},
		{"trash marker", []string{`\Trash`}, types.KindTrash},
		{"deleted marker", []string{`\Deleted`}, types.KindTrash},
		{"junk marker", []string{`\Junk`}, types.KindSpam},
		{"spam marker", []string{`\Spam`}, types.KindSpam},
		{"archive marker", []string{`\Archive`}, types.KindArchive},
		{"flagged marker", []string{`\Flagged`}, types.KindStarred},
		{"important marker", []string{`\Important`}, types.KindImportant},
		{"case insensitive", []string{`\SENT`}, types.KindSent},
		{"no markers", []string{`\HasNoChildren`}, types.KindCustom},
		{"empty", nil, types.KindCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyAttributes(tt.attrs); got != tt.want {
				t.Errorf("ClassifyAttributes(%v) = %q, want %q", tt.attrs, got, tt.want)
			}
		})
	}
}

// The inbox marker outranks everything else in the priority order, so its
// presence decides the kind no matter what else is attached.
func TestClassifyAttributesInboxPriority(t *testing.T) {
	attrs := []string{`\Trash`, `\Important`, `\Inbox`, `\Sent`}
	if got := ClassifyAttributes(attrs); got != types.KindInbox {
		t.Errorf("ClassifyAttributes(%v) = %q, want inbox", attrs, got)
	}
}

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name string
		want types.FolderKind
	}{
		{"INBOX", types.KindInbox},
		{"inbox", types.KindInbox},
		{"All Mail", types.KindInbox},
		{"Sent Items", types.KindSent},
		{"Sent", types.KindSent},
		{"Drafts", types.KindDrafts},
		{"My Draft Folder", types.KindDrafts},
		{"Trash", types.KindTrash},
		{"Deleted Items", types.KindTrash},
		{"Spam", types.KindSpam},
		{"Junk E-mail", types.KindSpam},
		{"Archive", types.KindArchive},
		{"Starred", types.KindStarred},
		{"Flagged", types.KindStarred},
		{"Important", types.KindImportant},
		{"Projects", types.KindCustom},
		{"Inbox Zero Tips", types.KindCustom}, // exact match only for inbox
		{"", types.KindCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyName(tt.name); got != tt.want {
				t.Errorf("ClassifyName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifyNameFallback(t *testing.T) {
	// No recognized attributes: the name decides.
	if got := Classify([]string{`\HasChildren`}, "Drafts"); got != types.KindDrafts {
		t.Errorf("Classify fallback = %q, want drafts", got)
	}
	// Recognized attributes win over a misleading name.
	if got := Classify([]string{`\Sent`}, "Trash"); got != types.KindSent {
		t.Errorf("Classify attribute priority = %q, want sent", got)
	}
}

func TestIsSystemFolder(t *testing.T) {
	if !IsSystemFolder([]string{`\Inbox`}, "") {
		t.Error("inbox should be a system folder")
	}
	if !IsSystemFolder(nil, "Sent Items") {
		t.Error("name-classified sent folder should be a system folder")
	}
	if IsSystemFolder(nil, "Projects") {
		t.Error("custom folder should not be a system folder")
	}
}
