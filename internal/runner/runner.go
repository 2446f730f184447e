package runner

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/cristianradulescu/beautify-ls/internal/logging"
)

// CommandRunner executes an external beautifier binary. Stdin, when not
// empty, is fed to the process; stdout is returned verbatim.
type CommandRunner interface {
	Execute(ctx context.Context, name string, args []string, stdin string) ([]byte, error)
}

type ExecCommandRunner struct{}

func NewExecCommandRunner() *ExecCommandRunner {
	return &ExecCommandRunner{}
}

func (r *ExecCommandRunner) Execute(ctx context.Context, name string, args []string, stdin string) ([]byte, error) {
	log.Printf("%s Running cmd: %s %s", logging.LogTagCLI, name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return stdout.Bytes(), fmt.Errorf("cmd returned error %s: %s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}

// ValidateBinary checks that the configured beautifier binary exists and
// can be resolved, either as an explicit path or through PATH.
func ValidateBinary(binaryPath string) error {
	if strings.ContainsRune(binaryPath, os.PathSeparator) {
		if _, err := os.Stat(binaryPath); err != nil {
			return fmt.Errorf("binary %s not found: %w", binaryPath, err)
		}
		return nil
	}

	if _, err := exec.LookPath(binaryPath); err != nil {
		return fmt.Errorf("binary %s not found in PATH: %w", binaryPath, err)
	}

	return nil
}
