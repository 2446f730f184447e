package providers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianradulescu/beautify-ls/internal/beautify"
	"github.com/cristianradulescu/beautify-ls/internal/config"
	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"github.com/cristianradulescu/beautify-ls/internal/providers"
	"github.com/cristianradulescu/beautify-ls/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sh is used as the configured binary in tests because NewCommand
// validates that the path resolves.
func shConfig(mutate func(*config.Beautifier)) config.Beautifier {
	cfg := config.Beautifier{
		Enabled:   true,
		Path:      "sh",
		Languages: []string{"go"},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return cfg
}

func TestCommand_BeautifyStdinMode(t *testing.T) {
	mockRunner := &runner.MockCommandRunner{Output: []byte("formatted output")}

	provider, err := providers.NewCommand("gofmt", shConfig(func(cfg *config.Beautifier) {
		cfg.Stdin = true
	}), mockRunner)
	require.NoError(t, err)

	buffer := editor.NewBuffer("/project/main.go", "raw source")
	result, err := provider.Beautify(context.Background(), buffer)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "formatted output", result.ChangedText)
	assert.Nil(t, result.Ranges, "command output is whole-document text")

	require.Len(t, mockRunner.Executed, 1)
	assert.Equal(t, "raw source", mockRunner.Executed[0].Stdin)
}

func TestCommand_BeautifyFileMode(t *testing.T) {
	mockRunner := &runner.MockCommandRunner{Output: []byte("formatted")}

	provider, err := providers.NewCommand("gofmt", shConfig(nil), mockRunner)
	require.NoError(t, err)

	buffer := editor.NewBuffer("/project/main.go", "raw source")
	_, err = provider.Beautify(context.Background(), buffer)
	require.NoError(t, err)

	require.Len(t, mockRunner.Executed, 1)
	executed := mockRunner.Executed[0]
	assert.Empty(t, executed.Stdin)
	// Without a $FILE placeholder the path is appended.
	assert.Equal(t, []string{"/project/main.go"}, executed.Args)
}

func TestCommand_BuildArgsPlaceholders(t *testing.T) {
	mockRunner := &runner.MockCommandRunner{Output: []byte("x")}

	provider, err := providers.NewCommand("prettier", shConfig(func(cfg *config.Beautifier) {
		cfg.Args = []string{"--stdin-filepath", providers.FilePlaceholder, "--config", providers.ConfigPlaceholder}
		cfg.ConfigFile = ".prettierrc"
		cfg.Stdin = true
	}), mockRunner)
	require.NoError(t, err)

	buffer := editor.NewBuffer("/project/app.js", "let x=1")
	_, err = provider.Beautify(context.Background(), buffer)
	require.NoError(t, err)

	require.Len(t, mockRunner.Executed, 1)
	assert.Equal(
		t,
		[]string{"--stdin-filepath", "/project/app.js", "--config", ".prettierrc"},
		mockRunner.Executed[0].Args,
	)
}

func TestCommand_BeautifyDeclinesOnError(t *testing.T) {
	mockRunner := &runner.MockCommandRunner{Err: errors.New("syntax error on line 3")}

	provider, err := providers.NewCommand("gofmt", shConfig(nil), mockRunner)
	require.NoError(t, err)

	buffer := editor.NewBuffer("/project/main.go", "broken {{{")
	result, err := provider.Beautify(context.Background(), buffer)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCommand_EmptyOutputMeansSelfHandled(t *testing.T) {
	mockRunner := &runner.MockCommandRunner{Output: nil}

	provider, err := providers.NewCommand("inplace-tool", shConfig(nil), mockRunner)
	require.NoError(t, err)

	buffer := editor.NewBuffer("/project/main.go", "source")
	result, err := provider.Beautify(context.Background(), buffer)

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestNewCommand_MissingBinary(t *testing.T) {
	_, err := providers.NewCommand("ghost", config.Beautifier{
		Enabled: true,
		Path:    "definitely-not-a-real-beautifier",
	}, &runner.MockCommandRunner{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize ghost")
}

func TestCommand_LanguagesDefaultToAll(t *testing.T) {
	provider, err := providers.NewCommand("universal", config.Beautifier{
		Enabled: true,
		Path:    "sh",
	}, &runner.MockCommandRunner{})
	require.NoError(t, err)

	assert.Equal(t, []string{beautify.AllLanguages}, provider.Languages())
}

func TestRegisterConfigured(t *testing.T) {
	registry := beautify.NewRegistry()
	mockRunner := &runner.MockCommandRunner{Output: []byte("x")}

	errs := providers.RegisterConfigured(registry, map[string]config.Beautifier{
		"gofmt": {
			Enabled:   true,
			Path:      "sh",
			Languages: []string{"go"},
			Priority:  10,
		},
		"disabled": {
			Enabled:   false,
			Path:      "sh",
			Languages: []string{"go"},
		},
		"broken": {
			Enabled: true,
			Path:    "definitely-not-a-real-beautifier",
		},
	}, mockRunner)

	require.Len(t, errs, 1, "only the unresolvable beautifier should fail")
	assert.Contains(t, errs[0].Error(), "broken")

	candidates := registry.Candidates("go")
	require.Len(t, candidates, 1, "disabled beautifiers are not registered")
	assert.Equal(t, "gofmt", candidates[0].Id())
}
