package beautify

import (
	"github.com/cristianradulescu/beautify-ls/internal/editor"
)

// ApplyResult applies a provider result to the editor as one atomic
// replacement. Identical text is left alone so no undo entry appears and
// the cursor does not jump. A whole-document replacement restores the
// cursor to its previous line/column afterwards; after reformatting that
// position is a best-effort approximation, not an exact offset.
func ApplyResult(ed editor.Editor, result *Result) {
	if result == nil || result.ChangedText == "" {
		return
	}

	if result.Ranges != nil {
		r := editor.Range{
			Start: result.Ranges.ReplaceStart,
			End:   result.Ranges.ReplaceEnd,
		}
		if ed.TextInRange(r) == result.ChangedText {
			return
		}
		ed.ReplaceRange(r, result.ChangedText)
		return
	}

	if ed.Text() == result.ChangedText {
		return
	}

	cursor := ed.Cursor()
	ed.ReplaceAll(result.ChangedText)
	ed.SetCursor(cursor)
}
