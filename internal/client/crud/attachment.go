package crud

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrAttachmentsFull is returned by Attachments.Add when Max is reached.
	ErrAttachmentsFull = errors.New("too many attachments")
	// ErrAttachmentStored is returned by Attachments.Remove for an entry the
	// server already holds. Updates only append, so it cannot be dropped here.
	ErrAttachmentStored = errors.New("stored attachments cannot be removed")
)

// Attachment is either a pending local file (Path) or a reference the server
// already holds (Ref). A pending attachment may still carry the Ref it
// replaces so the old image can be shown until the save succeeds.
type Attachment struct {
	Path string
	Ref  string
}

func Persisted(ref string) Attachment { return Attachment{Ref: ref} }

func Pending(path string) Attachment { return Attachment{Path: path} }

// IsPending reports whether the attachment must be uploaded on save.
func (a Attachment) IsPending() bool { return a.Path != "" }

func (a Attachment) IsZero() bool { return a.Path == "" && a.Ref == "" }

// Replace picks a new local file. The previous reference is kept for display.
func (a Attachment) Replace(path string) Attachment {
	return Attachment{Path: path, Ref: a.Ref}
}

// Attachments is an ordered, bounded list. Adding beyond Max is refused.
// Like Selection it is safe to copy by value.
type Attachments struct {
	Max   int
	items []Attachment
}

// NewAttachments seeds the list with persisted references.
func NewAttachments(max int, refs ...string) Attachments {
	a := Attachments{Max: max}
	for _, ref := range refs {
		if ref == "" || (max > 0 && len(a.items) >= max) {
			continue
		}
		a.items = append(a.items, Persisted(ref))
	}
	return a
}

func (a Attachments) Items() []Attachment { return slices.Clone(a.items) }

func (a Attachments) Len() int { return len(a.items) }

// Add appends a pending local file.
func (a *Attachments) Add(path string) error {
	if a.Max > 0 && len(a.items) >= a.Max {
		return fmt.Errorf("%w: at most %d", ErrAttachmentsFull, a.Max)
	}
	next := make([]Attachment, len(a.items), len(a.items)+1)
	copy(next, a.items)
	a.items = append(next, Pending(path))
	return nil
}

// Remove drops the pending attachment at index i.
func (a *Attachments) Remove(i int) error {
	if i < 0 || i >= len(a.items) {
		return fmt.Errorf("no attachment at %d", i)
	}
	if !a.items[i].IsPending() {
		return ErrAttachmentStored
	}
	a.items = slices.Delete(slices.Clone(a.items), i, i+1)
	return nil
}

// Pending returns only the attachments that still need uploading.
func (a Attachments) Pending() []Attachment {
	var out []Attachment
	for _, it := range a.items {
		if it.IsPending() {
			out = append(out, it)
		}
	}
	return out
}

func (a Attachments) HasPending() bool {
	return slices.ContainsFunc(a.items, Attachment.IsPending)
}
