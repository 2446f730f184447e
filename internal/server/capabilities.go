package server

import (
	"fmt"

	"github.com/cristianradulescu/beautify-ls/internal/config"
	"go.lsp.dev/protocol"
)

const (
	LspCommandPrefix    = config.Name
	LspCommandSeparator = "/"

	LspCommandNameShowConfig   = "showConfig"
	LspCommandNameBeautify     = "beautify"
	LspCommandNameToggleOnSave = "toggleOnSave"
)

func serverCapabilities() protocol.ServerCapabilities {
	return protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			Change:    protocol.TextDocumentSyncKindFull,
			OpenClose: true,
			Save:      &protocol.SaveOptions{IncludeText: true},
		},
		ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
			Commands: lspCommands(),
		},
		DocumentFormattingProvider:      true,
		DocumentRangeFormattingProvider: true,
	}
}

func serverInfo() *protocol.ServerInfo {
	return &protocol.ServerInfo{
		Name:    string(config.Name),
		Version: string(config.Version),
	}
}

func lspCommands() []string {
	return []string{
		getFullLspCommandName(LspCommandNameShowConfig),
		getFullLspCommandName(LspCommandNameBeautify),
		getFullLspCommandName(LspCommandNameToggleOnSave),
	}
}

func getFullLspCommandName(command string) string {
	return fmt.Sprintf("%s%s%s", LspCommandPrefix, LspCommandSeparator, command)
}
