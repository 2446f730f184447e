package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/cristianradulescu/beautify-ls/internal/logging"
	"github.com/cristianradulescu/beautify-ls/internal/server"
	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LSP server on stdin/stdout",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	// Stdout carries the protocol; everything logged goes to stderr.
	log.SetOutput(os.Stderr)
	log.Printf("%s%s Starting beautify LSP server", logging.LogTagLSP, logging.LogTagMain)

	stream := jsonrpc2.NewStream(struct {
		io.Reader
		io.Writer
		io.Closer
	}{
		os.Stdin,  // Read from standard input.
		os.Stdout, // Write to standard output.
		os.Stdin,  // Close standard input (though typically stdin isn't closed by the server).
	})

	ctx := context.Background()
	conn := jsonrpc2.NewConn(stream)
	log.Printf("%s%s LSP server connection established", logging.LogTagLSP, logging.LogTagMain)

	lspServer := server.New(conn)
	log.Printf("%s%s Starting to handle requests...", logging.LogTagLSP, logging.LogTagMain)
	conn.Go(ctx, lspServer.Handle)

	// Wait for the connection to be done (e.g., closed by the client or an error occurs).
	log.Printf("%s%s LSP server is running, waiting for requests...", logging.LogTagLSP, logging.LogTagMain)
	<-conn.Done()

	// Check for any errors that occurred during the connection's lifetime.
	if err := conn.Err(); err != nil {
		log.Printf("%s%s LSP server stopped with error: %v", logging.LogTagLSP, logging.LogTagMain, err)
		return err
	}

	log.Printf("%s%s LSP server shutdown complete", logging.LogTagLSP, logging.LogTagMain)
	return nil
}
