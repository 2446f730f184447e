package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cristianradulescu/beautify-ls/internal/beautify"
	"github.com/cristianradulescu/beautify-ls/internal/config"
	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"github.com/cristianradulescu/beautify-ls/internal/languages"
	"github.com/cristianradulescu/beautify-ls/internal/logging"
	"github.com/cristianradulescu/beautify-ls/internal/onsave"
	"github.com/cristianradulescu/beautify-ls/internal/providers"
	"github.com/cristianradulescu/beautify-ls/internal/runner"
	"github.com/cristianradulescu/beautify-ls/internal/utils"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

const formattingDebounceInterval = 100 * time.Millisecond

// Server represents the Language Server Protocol (LSP) server
type Server struct {
	conn         jsonrpc2.Conn
	serverConfig *config.Config

	resolver     *languages.ExtensionResolver
	orchestrator *beautify.Orchestrator
	status       beautify.StatusReporter
	onSave       *onsave.Manager

	// In-memory document cache for synchronized content; the active
	// document is the one most recently opened or edited by the client.
	docMu     sync.RWMutex
	documents map[protocol.DocumentURI]string
	activeURI protocol.DocumentURI

	// Debounce for formatting (per-file) with last-wins strategy
	fmtMu     sync.Mutex
	fmtTimers map[protocol.DocumentURI]*time.Timer
	fmtGen    map[protocol.DocumentURI]uint64
}

// New creates a new LSP server instance
func New(conn jsonrpc2.Conn) *Server {
	resolver := languages.NewExtensionResolver()
	registry := beautify.NewRegistry()

	s := &Server{
		conn:         conn,
		serverConfig: &config.Config{},
		resolver:     resolver,
		orchestrator: beautify.NewOrchestrator(registry, resolver),
		status:       newProgressReporter(conn),
		documents:    make(map[protocol.DocumentURI]string),
		fmtTimers:    make(map[protocol.DocumentURI]*time.Timer),
		fmtGen:       make(map[protocol.DocumentURI]uint64),
	}
	s.onSave = onsave.NewManager(s.loadPreferenceStore(), s.notifyOnSaveState)

	return s
}

// Registry exposes provider registration to the rest of the application.
func (s *Server) Registry() *beautify.Registry {
	return s.orchestrator.Registry()
}

// RegisterBeautificationProvider adds a provider for the given language
// ids (or beautify.AllLanguages); higher priority sorts first.
func (s *Server) RegisterBeautificationProvider(provider beautify.Provider, languageIDs []string, priority int) {
	s.Registry().Register(provider, languageIDs, priority)
}

// RemoveBeautificationProvider removes a provider from exactly the named
// language buckets.
func (s *Server) RemoveBeautificationProvider(provider beautify.Provider, languageIDs []string) {
	s.Registry().Remove(provider, languageIDs)
}

func (s *Server) loadPreferenceStore() onsave.PreferenceStore {
	statePath, err := onsave.DefaultStatePath()
	if err == nil {
		store, storeErr := onsave.NewFileStore(statePath)
		if storeErr == nil {
			return store
		}
		err = storeErr
	}

	log.Printf("%s%s Preference store unavailable, settings will not persist: %v", logging.LogTagLSP, logging.LogTagServer, err)
	return onsave.NewMemoryStore()
}

func (s *Server) notifyOnSaveState(enabled bool) {
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	s.showWindowMessage(context.Background(), protocol.MessageTypeInfo, fmt.Sprintf("Beautify on save %s", state))
}

func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	log.Printf("%s%s Received request: %s", logging.LogTagLSP, logging.LogTagServer, req.Method())

	switch req.Method() {
	case protocol.MethodInitialize:
		return s.handleInitialize(ctx, reply, req)
	case protocol.MethodInitialized:
		return s.handleInitialized(ctx, reply, req)
	case protocol.MethodWorkspaceExecuteCommand:
		return s.handleExecuteCommand(ctx, reply, req)
	case protocol.MethodTextDocumentDidOpen:
		return s.handleDidOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.handleDidChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.handleDidClose(ctx, reply, req)
	case protocol.MethodTextDocumentDidSave:
		return s.handleDidSave(ctx, reply, req)
	case protocol.MethodTextDocumentFormatting:
		return s.handleDocumentFormatting(ctx, reply, req)
	case protocol.MethodTextDocumentRangeFormatting:
		return s.handleRangeFormatting(ctx, reply, req)
	case protocol.MethodShutdown:
		return s.handleShutdown(ctx, reply, req)
	case protocol.MethodExit:
		return s.handleExit(ctx, reply, req)
	case protocol.MethodCancelRequest:
		return s.handleCancelRequest(ctx, reply, req)
	default:
		log.Printf("%s%s Unhandled method: %s", logging.LogTagLSP, logging.LogTagServer, req.Method())
		return reply(ctx, nil, nil)
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	log.Printf("%s%s Handling initialize request", logging.LogTagLSP, logging.LogTagServer)

	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling initialize params: %v", logging.LogTagLSP, logging.LogTagServer, err)

		return err
	}

	log.Printf("%s%s Client info: name=%s, version=%s", logging.LogTagLSP, logging.LogTagServer, params.ClientInfo.Name, params.ClientInfo.Version)

	// Load configuration. Show warning if not found and exit
	if !s.serverConfig.IsInitialized() {
		// Determine project root from workspace folder URI or RootURI
		projectRoot := ""
		if len(params.WorkspaceFolders) > 0 && params.WorkspaceFolders[0].URI != "" {
			projectRoot = utils.URIToPath(protocol.DocumentURI(params.WorkspaceFolders[0].URI))
		} else if params.RootURI != "" {
			projectRoot = utils.URIToPath(protocol.DocumentURI(params.RootURI))
		} else {
			if cwd, cwdErr := os.Getwd(); cwdErr == nil {
				projectRoot = cwd
			}
		}
		serverConfig, err := s.serverConfig.LoadConfig(projectRoot)
		if err != nil {
			log.Printf("%s%s No config: %v", logging.LogTagLSP, logging.LogTagServer, err)
			os.Exit(0)
		}
		s.serverConfig = serverConfig

		// Register the configured beautifiers once; invalid ones are
		// reported and skipped, not fatal.
		for _, registerErr := range providers.RegisterConfigured(s.Registry(), s.serverConfig.Beautifiers, runner.NewExecCommandRunner()) {
			s.showWindowMessage(ctx, protocol.MessageTypeError, fmt.Sprintf("%v", registerErr))
		}
	}

	resp := protocol.InitializeResult{
		Capabilities: serverCapabilities(),
		ServerInfo:   serverInfo(),
	}

	return reply(ctx, resp, nil)
}

func (s *Server) handleInitialized(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	log.Printf("%s%s Client initialized successfully", logging.LogTagLSP, logging.LogTagServer)

	return reply(ctx, nil, nil)
}

func (s *Server) handleExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.ExecuteCommandParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling executeCommand params: %v", logging.LogTagLSP, logging.LogTagServer, err)
		return err
	}

	log.Printf("%s%s Executing command: %s", logging.LogTagLSP, logging.LogTagServer, params.Command)

	switch params.Command {
	case getFullLspCommandName(LspCommandNameShowConfig):
		return s.handleShowConfigCommand(ctx, reply)
	case getFullLspCommandName(LspCommandNameBeautify):
		return s.handleBeautifyCommand(ctx, reply)
	case getFullLspCommandName(LspCommandNameToggleOnSave):
		return s.handleToggleOnSaveCommand(ctx, reply)
	default:
		return reply(ctx, nil, fmt.Errorf("unknown command: %s", params.Command))
	}
}

func (s *Server) handleShowConfigCommand(ctx context.Context, reply jsonrpc2.Replier) error {
	s.showWindowMessage(ctx, protocol.MessageTypeInfo, fmt.Sprintf("Current configuration: %s", s.serverConfig.RawData))

	return reply(ctx, nil, nil)
}

// handleBeautifyCommand runs beautification against the active document
// and pushes the result back through workspace/applyEdit.
func (s *Server) handleBeautifyCommand(ctx context.Context, reply jsonrpc2.Replier) error {
	uri := s.getActiveURI()
	if uri == "" {
		s.showWindowMessage(ctx, protocol.MessageTypeWarning, "No active document to beautify")
		return reply(ctx, nil, nil)
	}

	edits, err := s.runBeautify(ctx, uri, nil)
	if err == nil {
		s.applyEditsOnClient(ctx, uri, edits)
	}

	return reply(ctx, nil, nil)
}

func (s *Server) handleToggleOnSaveCommand(ctx context.Context, reply jsonrpc2.Replier) error {
	enabled, err := s.onSave.Toggle()
	if err != nil {
		log.Printf("%s%s Failed to toggle beautify on save: %v", logging.LogTagLSP, logging.LogTagOnSave, err)
		return reply(ctx, nil, err)
	}

	return reply(ctx, enabled, nil)
}

func (s *Server) handleDidOpen(_ context.Context, _ jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling %s params: %v", logging.LogTagLSP, logging.LogTagServer, req.Method(), err)

		return err
	}

	s.setDocumentContent(params.TextDocument.URI, params.TextDocument.Text)
	s.setActiveURI(params.TextDocument.URI)
	// The client-declared language wins over extension detection.
	s.resolver.SetOverride(params.TextDocument.URI.Filename(), string(params.TextDocument.LanguageID))

	return nil
}

func (s *Server) handleDidChange(_ context.Context, _ jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling %s params: %v", logging.LogTagLSP, logging.LogTagServer, req.Method(), err)

		return err
	}

	if len(params.ContentChanges) > 0 {
		lastChange := params.ContentChanges[len(params.ContentChanges)-1]
		s.setDocumentContent(params.TextDocument.URI, lastChange.Text)
	}
	s.setActiveURI(params.TextDocument.URI)

	return nil
}

func (s *Server) handleDidSave(ctx context.Context, _ jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling %s params: %v", logging.LogTagLSP, logging.LogTagServer, req.Method(), err)

		return err
	}

	if params.Text != "" {
		s.setDocumentContent(params.TextDocument.URI, params.Text)
	}

	uri := params.TextDocument.URI
	activePath := ""
	if activeURI := s.getActiveURI(); activeURI != "" {
		activePath = activeURI.Filename()
	}
	if !s.onSave.ShouldBeautify(uri.Filename(), activePath) {
		return nil
	}

	go func() {
		edits, err := s.runBeautify(context.Background(), uri, nil)
		if err != nil {
			return
		}
		s.applyEditsOnClient(context.Background(), uri, edits)
	}()

	return nil
}

func (s *Server) handleDidClose(_ context.Context, _ jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling %s params: %v", logging.LogTagLSP, logging.LogTagServer, req.Method(), err)

		return err
	}

	s.deleteDocumentContent(params.TextDocument.URI)
	s.resolver.SetOverride(params.TextDocument.URI.Filename(), "")
	s.clearActiveURI(params.TextDocument.URI)

	return nil
}

func (s *Server) handleDocumentFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling document formatting params: %v", logging.LogTagLSP, logging.LogTagServer, err)
		return err
	}

	s.scheduleFormatting(ctx, reply, params.TextDocument.URI, nil)
	return nil
}

func (s *Server) handleRangeFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentRangeFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling range formatting params: %v", logging.LogTagLSP, logging.LogTagServer, err)
		return err
	}

	selection := params.Range
	s.scheduleFormatting(ctx, reply, params.TextDocument.URI, &selection)
	return nil
}

func (s *Server) handleShutdown(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	log.Printf("%s%s Performing cleanup before shutdown", logging.LogTagLSP, logging.LogTagServer)

	return reply(ctx, nil, nil)
}

func (s *Server) handleExit(_ context.Context, _ jsonrpc2.Replier, _ jsonrpc2.Request) error {
	log.Printf("%s%s Exiting server", logging.LogTagLSP, logging.LogTagServer)

	return s.conn.Close()
}

func (s *Server) handleCancelRequest(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params struct {
		ID interface{} `json:"id"`
	}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		log.Printf("%s%s Error unmarshaling cancel request params: %v", logging.LogTagLSP, logging.LogTagServer, err)
		return err
	}

	log.Printf("%s%s Client requested cancellation for request ID: %v", logging.LogTagLSP, logging.LogTagServer, params.ID)
	return reply(ctx, nil, nil)
}

// scheduleFormatting debounces per-URI formatting requests with a
// last-wins strategy, then runs the beautify orchestration and replies
// with the produced edits.
func (s *Server) scheduleFormatting(ctx context.Context, reply jsonrpc2.Replier, uri protocol.DocumentURI, selection *protocol.Range) {
	s.fmtMu.Lock()

	if timer, exists := s.fmtTimers[uri]; exists {
		timer.Stop()
	}

	s.fmtGen[uri]++
	gen := s.fmtGen[uri]

	s.fmtTimers[uri] = time.AfterFunc(formattingDebounceInterval, func() {
		s.fmtMu.Lock()
		delete(s.fmtTimers, uri)
		currentGen := s.fmtGen[uri]
		s.fmtMu.Unlock()

		if gen != currentGen {
			_ = reply(ctx, []protocol.TextEdit{}, nil)
			return
		}

		edits, err := s.runBeautify(ctx, uri, selection)
		if err != nil {
			// The failure was already surfaced as a window message.
			_ = reply(ctx, []protocol.TextEdit{}, nil)
			return
		}

		_ = reply(ctx, utils.EnsureTextEditsArray(edits), nil)
	})
	s.fmtMu.Unlock()
}

// runBeautify builds an editor buffer for the document, orchestrates the
// registered providers against it and returns the recorded edits. The
// busy indicator is set for the whole run and always released, also when
// no provider succeeds.
func (s *Server) runBeautify(ctx context.Context, uri protocol.DocumentURI, selection *protocol.Range) ([]protocol.TextEdit, error) {
	filePath := uri.Filename()

	content, exists := s.getDocumentContent(uri)
	if !exists {
		fileContent, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		content = string(fileContent)
	}

	buffer := editor.NewBuffer(filePath, content)
	if selection != nil {
		buffer.SetSelection(fromProtocolRange(*selection))
	}

	s.status.SetBusy(true, fmt.Sprintf("Beautifying %s", filepath.Base(filePath)))
	defer s.status.SetBusy(false, "")

	if err := s.orchestrator.Beautify(ctx, buffer); err != nil {
		s.showWindowMessage(ctx, protocol.MessageTypeWarning, exhaustionMessage(buffer))
		return nil, err
	}

	return toProtocolEdits(buffer.Edits()), nil
}

// exhaustionMessage distinguishes selection and whole-document phrasing.
func exhaustionMessage(ed editor.Editor) string {
	if _, hasSelection := ed.Selection(); hasSelection {
		return "No beautification provider could beautify the selection"
	}
	return "No beautification provider could beautify the document"
}

// applyEditsOnClient pushes server-initiated edits (command and on-save
// paths) back to the client as one workspace edit.
func (s *Server) applyEditsOnClient(ctx context.Context, uri protocol.DocumentURI, edits []protocol.TextEdit) {
	if len(edits) == 0 {
		return
	}

	params := protocol.ApplyWorkspaceEditParams{
		Edit: protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				uri: edits,
			},
		},
	}

	var result protocol.ApplyWorkspaceEditResponse
	if _, err := s.conn.Call(ctx, protocol.MethodWorkspaceApplyEdit, params, &result); err != nil {
		log.Printf("%s%s Failed to apply workspace edit: %v", logging.LogTagLSP, logging.LogTagServer, err)
		return
	}
	if !result.Applied {
		log.Printf("%s%s Client rejected workspace edit: %s", logging.LogTagLSP, logging.LogTagServer, result.FailureReason)
	}
}

func (s *Server) showWindowMessage(ctx context.Context, messageType protocol.MessageType, message string) {
	params := &protocol.ShowMessageParams{Type: messageType, Message: message}
	if err := s.conn.Notify(ctx, protocol.MethodWindowShowMessage, params); err != nil {
		log.Printf("%s%s Failed to send window message: %v", logging.LogTagLSP, logging.LogTagServer, err)
	}
}

func (s *Server) setDocumentContent(uri protocol.DocumentURI, content string) {
	s.docMu.Lock()
	defer s.docMu.Unlock()
	s.documents[uri] = content
}

func (s *Server) getDocumentContent(uri protocol.DocumentURI) (string, bool) {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	content, exists := s.documents[uri]
	return content, exists
}

func (s *Server) deleteDocumentContent(uri protocol.DocumentURI) {
	s.docMu.Lock()
	defer s.docMu.Unlock()
	delete(s.documents, uri)
}

func (s *Server) setActiveURI(uri protocol.DocumentURI) {
	s.docMu.Lock()
	defer s.docMu.Unlock()
	s.activeURI = uri
}

func (s *Server) getActiveURI() protocol.DocumentURI {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	return s.activeURI
}

func (s *Server) clearActiveURI(uri protocol.DocumentURI) {
	s.docMu.Lock()
	defer s.docMu.Unlock()
	if s.activeURI == uri {
		s.activeURI = ""
	}
}
