package server

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/cristianradulescu/beautify-ls/internal/config"
	"github.com/cristianradulescu/beautify-ls/internal/logging"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// progressReporter maps the busy signal onto LSP work-done progress. Each
// SetBusy(true) opens a progress token; the matching SetBusy(false) ends
// it, so the client's busy indicator always clears.
type progressReporter struct {
	conn jsonrpc2.Conn

	mu      sync.Mutex
	token   *protocol.ProgressToken
	counter uint64
}

func newProgressReporter(conn jsonrpc2.Conn) *progressReporter {
	return &progressReporter{
		conn: conn,
	}
}

func (p *progressReporter) SetBusy(busy bool, message string) {
	ctx := context.Background()

	if busy {
		p.mu.Lock()
		p.counter++
		token := protocol.NewProgressToken(fmt.Sprintf("%s/busy/%d", config.Name, p.counter))
		p.token = token
		p.mu.Unlock()

		if _, err := p.conn.Call(ctx, protocol.MethodWorkDoneProgressCreate, protocol.WorkDoneProgressCreateParams{Token: *token}, nil); err != nil {
			log.Printf("%s%s Failed to create progress token: %v", logging.LogTagLSP, logging.LogTagServer, err)
		}

		p.notify(ctx, *token, protocol.WorkDoneProgressBegin{
			Kind:  protocol.WorkDoneProgressKindBegin,
			Title: message,
		})
		return
	}

	p.mu.Lock()
	token := p.token
	p.token = nil
	p.mu.Unlock()
	if token == nil {
		return
	}

	p.notify(ctx, *token, protocol.WorkDoneProgressEnd{
		Kind:    protocol.WorkDoneProgressKindEnd,
		Message: message,
	})
}

func (p *progressReporter) notify(ctx context.Context, token protocol.ProgressToken, value interface{}) {
	params := protocol.ProgressParams{
		Token: token,
		Value: value,
	}
	if err := p.conn.Notify(ctx, protocol.MethodProgress, params); err != nil {
		log.Printf("%s%s Failed to send progress notification: %v", logging.LogTagLSP, logging.LogTagServer, err)
	}
}
