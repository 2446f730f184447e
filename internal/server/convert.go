package server

import (
	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"go.lsp.dev/protocol"
)

func fromProtocolPosition(p protocol.Position) editor.Position {
	return editor.Position{Line: int(p.Line), Ch: int(p.Character)}
}

func fromProtocolRange(r protocol.Range) editor.Range {
	return editor.Range{
		Start: fromProtocolPosition(r.Start),
		End:   fromProtocolPosition(r.End),
	}
}

func toProtocolPosition(p editor.Position) protocol.Position {
	return protocol.Position{Line: uint32(p.Line), Character: uint32(p.Ch)}
}

func toProtocolRange(r editor.Range) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(r.Start),
		End:   toProtocolPosition(r.End),
	}
}

func toProtocolEdits(edits []editor.Edit) []protocol.TextEdit {
	textEdits := make([]protocol.TextEdit, 0, len(edits))
	for _, edit := range edits {
		textEdits = append(textEdits, protocol.TextEdit{
			Range:   toProtocolRange(edit.Range),
			NewText: edit.NewText,
		})
	}
	return textEdits
}
