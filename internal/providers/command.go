package providers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cristianradulescu/beautify-ls/internal/beautify"
	"github.com/cristianradulescu/beautify-ls/internal/config"
	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"github.com/cristianradulescu/beautify-ls/internal/runner"
)

// Argument placeholders expanded per invocation.
const (
	FilePlaceholder   string = "$FILE"
	ConfigPlaceholder string = "$CONFIG"
)

// Command is a beautify.Provider backed by an external beautifier binary
// (gofmt, prettier, black, ...). In stdin mode the document text is piped
// to the process; otherwise the file path is passed as an argument. The
// formatted document is read from stdout.
type Command struct {
	id            string
	config        config.Beautifier
	commandRunner runner.CommandRunner
}

// NewCommand validates that the configured binary is resolvable and
// returns the provider.
func NewCommand(id string, providerConfig config.Beautifier, commandRunner runner.CommandRunner) (*Command, error) {
	if err := runner.ValidateBinary(providerConfig.Path); err != nil {
		return nil, fmt.Errorf("failed to initialize %s; error: %s", id, err)
	}

	return &Command{
		id:            id,
		config:        providerConfig,
		commandRunner: commandRunner,
	}, nil
}

func (p *Command) Id() string {
	return p.id
}

func (p *Command) Name() string {
	return p.config.Path
}

// Languages returns the language ids the provider was configured for,
// defaulting to the all-languages sentinel.
func (p *Command) Languages() []string {
	if len(p.config.Languages) == 0 {
		return []string{beautify.AllLanguages}
	}
	return p.config.Languages
}

func (p *Command) Beautify(ctx context.Context, ed editor.Editor) (*beautify.Result, error) {
	if p.config.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(p.config.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	args := p.buildArgs(ed.Path())

	stdin := ""
	if p.config.Stdin {
		stdin = ed.Text()
	}

	output, err := p.commandRunner.Execute(ctx, p.config.Path, args, stdin)
	if err != nil {
		// Decline; the orchestrator falls through to the next candidate.
		return nil, err
	}

	if len(output) == 0 {
		return nil, nil
	}

	return &beautify.Result{ChangedText: string(output)}, nil
}

func (p *Command) buildArgs(filePath string) []string {
	args := make([]string, 0, len(p.config.Args)+1)

	fileReferenced := false
	for _, arg := range p.config.Args {
		switch arg {
		case FilePlaceholder:
			args = append(args, filePath)
			fileReferenced = true
		case ConfigPlaceholder:
			args = append(args, p.config.ConfigFile)
		default:
			args = append(args, arg)
		}
	}

	// Without stdin mode the tool needs the file path to read from.
	if !p.config.Stdin && !fileReferenced {
		args = append(args, filePath)
	}

	return args
}

// RegisterConfigured builds providers for every enabled beautifier and
// registers the valid ones. Beautifiers that fail validation are skipped
// and reported in the returned errors. Registration happens in sorted id
// order so priority ties stay deterministic across runs.
func RegisterConfigured(registry *beautify.Registry, beautifiers map[string]config.Beautifier, commandRunner runner.CommandRunner) []error {
	ids := make([]string, 0, len(beautifiers))
	for id := range beautifiers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	for _, id := range ids {
		providerConfig := beautifiers[id]
		if !providerConfig.Enabled {
			continue
		}

		provider, err := NewCommand(id, providerConfig, commandRunner)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		registry.Register(provider, provider.Languages(), providerConfig.Priority)
	}

	return errs
}
