// Package query owns the form state for the client: the in-progress query
// draft, the backend selection, the informational panel flags, and the
// submission-time validation rules. Nothing here performs I/O; the TUI reads
// snapshots and the api package receives the validated result.
package query

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxQueryLen is enforced at submission time only; the composer itself
	// never clamps while the user is typing.
	MaxQueryLen = 500

	MinDepth     = 1
	MaxDepth     = 20
	DefaultDepth = 5
)

// Backend selects which answer-generation backend a submission targets.
type Backend int

const (
	BackendLocal Backend = iota
	BackendRemote
)

func (b Backend) String() string {
	if b == BackendRemote {
		return "remote"
	}
	return "local"
}

// Remote reports whether the submission should set the use_openai wire flag.
func (b Backend) Remote() bool { return b == BackendRemote }

// Draft is the not-yet-submitted query and its retrieval-depth setting.
type Draft struct {
	Text           string
	RetrievalDepth int
}

// Panels tracks the two informational overlays. At most one is open at a
// time: activating one forces the other closed.
type Panels struct {
	About    bool
	Contacts bool
}

// ValidationReason discriminates pre-dispatch rejections.
type ValidationReason int

const (
	ReasonEmpty ValidationReason = iota
	ReasonTooLong
)

// ValidationError rejects a draft before any network call is made.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonTooLong:
		return fmt.Sprintf("query is too long (max %d characters)", MaxQueryLen)
	default:
		return "enter a query before submitting"
	}
}

// Normalize trims the draft text and applies the submission rules: an empty
// trimmed query and a trimmed query longer than MaxQueryLen are both
// rejected. On success it returns the trimmed text that goes on the wire.
func (d Draft) Normalize() (string, error) {
	trimmed := strings.TrimSpace(d.Text)
	if trimmed == "" {
		return "", &ValidationError{Reason: ReasonEmpty}
	}
	if utf8.RuneCountInString(trimmed) > MaxQueryLen {
		return "", &ValidationError{Reason: ReasonTooLong}
	}
	return trimmed, nil
}

// Form holds the mutable form state. All mutators are synchronous; the
// renderer and the submission pipeline only ever see value snapshots.
type Form struct {
	draft   Draft
	backend Backend
	panels  Panels

	// validationMessage is the inline rejection shown next to the composer.
	// Cleared as soon as the user edits the query again.
	validationMessage string
}

// NewForm returns a form with the retrieval depth at its default.
func NewForm() *Form {
	return &Form{draft: Draft{RetrievalDepth: DefaultDepth}}
}

// SetQueryText replaces the draft text and clears any visible validation
// message so the user is not looking at a stale rejection while editing.
func (f *Form) SetQueryText(s string) {
	f.draft.Text = s
	f.validationMessage = ""
}

// SetRetrievalDepth accepts a depth inside [MinDepth, MaxDepth]. Out-of-range
// values are ignored rather than clamped; the depth control's own bounds make
// them unreachable in practice.
func (f *Form) SetRetrievalDepth(n int) {
	if n < MinDepth || n > MaxDepth {
		return
	}
	f.draft.RetrievalDepth = n
}

// SetBackend flips the selection. It affects only submissions that have not
// been dispatched yet, never an in-flight one.
func (f *Form) SetBackend(b Backend) {
	f.backend = b
}

// ToggleAbout flips the about panel, closing contacts if it was open.
func (f *Form) ToggleAbout() {
	f.panels.About = !f.panels.About
	if f.panels.About {
		f.panels.Contacts = false
	}
}

// ToggleContacts flips the contacts panel, closing about if it was open.
func (f *Form) ToggleContacts() {
	f.panels.Contacts = !f.panels.Contacts
	if f.panels.Contacts {
		f.panels.About = false
	}
}

// RejectWith records the inline validation message for a rejected submission.
func (f *Form) RejectWith(err error) {
	if err == nil {
		f.validationMessage = ""
		return
	}
	f.validationMessage = err.Error()
}

func (f *Form) Draft() Draft { return f.draft }

func (f *Form) Backend() Backend { return f.backend }

func (f *Form) Panels() Panels { return f.panels }

func (f *Form) ValidationMessage() string { return f.validationMessage }
