package editor

import (
	"strings"
)

// Buffer is an in-memory Editor implementation. The LSP server backs it
// with the synced document content; the CLI backs it with file content.
// It records every mutation so the host can report the applied edits.
type Buffer struct {
	path         string
	text         string
	cursor       Position
	selection    Range
	hasSelection bool
	edits        []Edit
}

func NewBuffer(path string, text string) *Buffer {
	return &Buffer{
		path: path,
		text: text,
	}
}

func (b *Buffer) Path() string {
	return b.path
}

func (b *Buffer) Text() string {
	return b.text
}

func (b *Buffer) TextInRange(r Range) string {
	start := b.offsetOf(b.clamp(r.Start))
	end := b.offsetOf(b.clamp(r.End))
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// FullRange covers the whole document, from the first character to the
// position just past the last one.
func (b *Buffer) FullRange() Range {
	lines := strings.Split(b.text, "\n")
	lastLine := len(lines) - 1
	return Range{
		Start: Position{Line: 0, Ch: 0},
		End:   Position{Line: lastLine, Ch: len(lines[lastLine])},
	}
}

func (b *Buffer) Cursor() Position {
	return b.cursor
}

// SetCursor clamps out-of-range positions to the nearest valid location.
func (b *Buffer) SetCursor(p Position) {
	b.cursor = b.clamp(p)
}

func (b *Buffer) Selection() (Range, bool) {
	return b.selection, b.hasSelection
}

func (b *Buffer) SetSelection(r Range) {
	b.selection = Range{Start: b.clamp(r.Start), End: b.clamp(r.End)}
	b.hasSelection = true
}

func (b *Buffer) ClearSelection() {
	b.selection = Range{}
	b.hasSelection = false
}

// ReplaceRange swaps the text in [r.Start, r.End) for the given text as a
// single recorded edit, leaving the rest of the document untouched.
func (b *Buffer) ReplaceRange(r Range, text string) {
	clamped := Range{Start: b.clamp(r.Start), End: b.clamp(r.End)}
	start := b.offsetOf(clamped.Start)
	end := b.offsetOf(clamped.End)
	if start > end {
		start, end = end, start
		clamped.Start, clamped.End = clamped.End, clamped.Start
	}

	b.text = b.text[:start] + text + b.text[end:]
	b.edits = append(b.edits, Edit{Range: clamped, NewText: text})
	b.cursor = b.clamp(b.cursor)
}

// ReplaceAll swaps the entire document text as a single recorded edit.
func (b *Buffer) ReplaceAll(text string) {
	full := b.FullRange()
	b.text = text
	b.edits = append(b.edits, Edit{Range: full, NewText: text})
	b.cursor = b.clamp(b.cursor)
}

// Edits returns the mutations performed on the buffer, in order.
func (b *Buffer) Edits() []Edit {
	return b.edits
}

func (b *Buffer) clamp(p Position) Position {
	lines := strings.Split(b.text, "\n")

	if p.Line < 0 {
		return Position{Line: 0, Ch: 0}
	}
	if p.Line >= len(lines) {
		lastLine := len(lines) - 1
		return Position{Line: lastLine, Ch: len(lines[lastLine])}
	}

	if p.Ch < 0 {
		p.Ch = 0
	}
	if p.Ch > len(lines[p.Line]) {
		p.Ch = len(lines[p.Line])
	}

	return p
}

// offsetOf converts a clamped position to a byte offset in the text.
func (b *Buffer) offsetOf(p Position) int {
	lines := strings.Split(b.text, "\n")

	offset := 0
	for i := 0; i < p.Line; i++ {
		offset += len(lines[i]) + 1
	}

	return offset + p.Ch
}
