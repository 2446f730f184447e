package beautify

import (
	"context"

	"github.com/cristianradulescu/beautify-ls/internal/editor"
)

// AllLanguages is the sentinel language id for providers that apply to
// every document regardless of its detected language.
const AllLanguages string = "*"

// Ranges scopes a result to a sub-span of the document. The span is
// half-open: [ReplaceStart, ReplaceEnd).
type Ranges struct {
	ReplaceStart editor.Position
	ReplaceEnd   editor.Position
}

// Result is the value a provider returns from one beautify invocation.
// ChangedText is the full new document text when Ranges is nil, or the
// replacement for exactly the Ranges span otherwise. A nil Result (or an
// empty ChangedText) means the provider handled the document itself and
// no further provider should be tried.
type Result struct {
	ChangedText string
	Ranges      *Ranges
}

// Provider is the interface for externally registered beautification
// providers. The module never formats any language itself.
type Provider interface {
	// Id returns the unique identifier of the provider
	Id() string

	// Name returns the human-readable name of the provider
	Name() string

	// Beautify produces a result for the given editor's document, or an
	// error to decline and let the next candidate run.
	Beautify(ctx context.Context, ed editor.Editor) (*Result, error)
}

// StatusReporter is the host's busy indicator. Hosts call SetBusy in
// matching true/false pairs around every beautify run, released exactly
// once on both success and failure paths.
type StatusReporter interface {
	SetBusy(busy bool, message string)
}
