package editor

// Position is a zero-based line/column location in a document.
type Position struct {
	Line int
	Ch   int
}

// Range is a half-open span [Start, End) of a document.
type Range struct {
	Start Position
	End   Position
}

// Edit is one atomic replacement performed against an editor. Every
// mutation maps to exactly one Edit, so a host can translate the buffer
// history into a single undo step.
type Edit struct {
	Range   Range
	NewText string
}

// Editor is the active document accessor owned by the host application.
// The beautify core reads and mutates documents only through it.
type Editor interface {
	Path() string
	Text() string
	TextInRange(r Range) string
	FullRange() Range

	Cursor() Position
	SetCursor(p Position)

	Selection() (Range, bool)
	SetSelection(r Range)
	ClearSelection()

	ReplaceRange(r Range, text string)
	ReplaceAll(text string)
}
