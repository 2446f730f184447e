package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianradulescu/beautify-ls/internal/beautify"
	"github.com/cristianradulescu/beautify-ls/internal/config"
	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"github.com/cristianradulescu/beautify-ls/internal/languages"
	"github.com/cristianradulescu/beautify-ls/internal/providers"
	"github.com/cristianradulescu/beautify-ls/internal/runner"
	"github.com/cristianradulescu/beautify-ls/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <file> [file...]",
	Short: "Beautify files in place using the configured providers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change without rewriting them")
	fmtCmd.Flags().Bool("stdout", false, "print beautified content to stdout instead of rewriting files")
}

// cliStatus is the CLI's busy indicator; the LSP server uses work-done
// progress for the same purpose.
type cliStatus struct {
	quiet bool
}

func (s *cliStatus) SetBusy(busy bool, message string) {
	if s.quiet || !busy {
		return
	}
	color.New(color.FgCyan).Fprintf(os.Stderr, "%s...\n", message)
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}

	firstPath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	cfg := &config.Config{}
	loaded, err := cfg.LoadConfig(utils.FindProjectRoot(firstPath))
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}

	registry := beautify.NewRegistry()
	orchestrator := beautify.NewOrchestrator(registry, languages.NewExtensionResolver())
	for _, registerErr := range providers.RegisterConfigured(registry, loaded.Beautifiers, runner.NewExecCommandRunner()) {
		fmt.Fprintf(os.Stderr, "fmt: %v\n", registerErr)
	}

	status := &cliStatus{quiet: quiet}

	var hasErrors bool
	var hasChanges bool
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", arg, err)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", arg, err)
			continue
		}

		buffer := editor.NewBuffer(path, string(content))

		status.SetBusy(true, fmt.Sprintf("Beautifying %s", filepath.Base(path)))
		err = orchestrator.Beautify(cmd.Context(), buffer)
		status.SetBusy(false, "")

		if err != nil {
			if errors.Is(err, beautify.ErrNoProvider) {
				hasErrors = true
				if !quiet {
					color.New(color.FgRed).Fprintf(os.Stderr, "%s: no provider could beautify the document\n", arg)
				}
				continue
			}
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", arg, err)
			continue
		}

		changed := buffer.Text() != string(content)
		if changed {
			hasChanges = true
		}

		switch {
		case writeToStdout:
			_, _ = os.Stdout.WriteString(buffer.Text())
		case check:
			if changed && !quiet {
				color.New(color.FgYellow).Printf("%s: needs beautification\n", arg)
			}
		case changed:
			if err := os.WriteFile(path, []byte(buffer.Text()), 0o644); err != nil {
				hasErrors = true
				fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", arg, err)
				continue
			}
			if !quiet {
				color.New(color.FgGreen).Printf("%s: beautified\n", arg)
			}
		default:
			if !quiet {
				fmt.Printf("%s: unchanged\n", arg)
			}
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to beautify some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: beautification changes required")
	}
	return nil
}
