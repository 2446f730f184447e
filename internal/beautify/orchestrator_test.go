package beautify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianradulescu/beautify-ls/internal/beautify"
	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"github.com/stretchr/testify/assert"
)

func newOrchestrator(languageID string) (*beautify.Orchestrator, *beautify.Registry) {
	registry := beautify.NewRegistry()
	orchestrator := beautify.NewOrchestrator(registry, &beautify.MockResolver{LanguageID: languageID})
	return orchestrator, registry
}

func TestOrchestrator_FirstSuccessWins(t *testing.T) {
	orchestrator, registry := newOrchestrator("go")

	declining := &beautify.MockProvider{ProviderId: "declining", Err: errors.New("cannot format this")}
	succeeding := &beautify.MockProvider{ProviderId: "succeeding", Result: &beautify.Result{ChangedText: "formatted"}}
	unreachable := &beautify.MockProvider{ProviderId: "unreachable", Result: &beautify.Result{ChangedText: "never applied"}}

	registry.Register(declining, []string{"go"}, 10)
	registry.Register(succeeding, []string{"go"}, 5)
	registry.Register(unreachable, []string{"go"}, 0)

	buffer := editor.NewBuffer("/project/main.go", "unformatted")
	err := orchestrator.Beautify(context.Background(), buffer)

	assert.NoError(t, err)
	assert.Equal(t, "formatted", buffer.Text())
	assert.Equal(t, 1, declining.Calls)
	assert.Equal(t, 1, succeeding.Calls)
	assert.Equal(t, 0, unreachable.Calls, "providers after the first success must never be invoked")
}

func TestOrchestrator_AllDecline(t *testing.T) {
	orchestrator, registry := newOrchestrator("go")

	first := &beautify.MockProvider{ProviderId: "first", Err: errors.New("nope")}
	second := &beautify.MockProvider{ProviderId: "second", Err: errors.New("also nope")}
	registry.Register(first, []string{"go"}, 1)
	registry.Register(second, []string{"go"}, 0)

	buffer := editor.NewBuffer("/project/main.go", "untouched")
	err := orchestrator.Beautify(context.Background(), buffer)

	assert.ErrorIs(t, err, beautify.ErrNoProvider)
	assert.Equal(t, "untouched", buffer.Text())
	assert.Empty(t, buffer.Edits(), "exhaustion must not mutate the document")
	assert.Equal(t, 1, first.Calls)
	assert.Equal(t, 1, second.Calls)
}

func TestOrchestrator_NilResultStopsSilently(t *testing.T) {
	orchestrator, registry := newOrchestrator("go")

	// A nil result means the provider applied the change itself.
	selfHandled := &beautify.MockProvider{ProviderId: "self-handled", Result: nil}
	fallback := &beautify.MockProvider{ProviderId: "fallback", Result: &beautify.Result{ChangedText: "fallback text"}}
	registry.Register(selfHandled, []string{"go"}, 1)
	registry.Register(fallback, []string{"go"}, 0)

	buffer := editor.NewBuffer("/project/main.go", "original")
	err := orchestrator.Beautify(context.Background(), buffer)

	assert.NoError(t, err, "a self-handled decline is not a failure")
	assert.Equal(t, "original", buffer.Text())
	assert.Equal(t, 0, fallback.Calls, "a self-handled decline stops the chain")
}

func TestOrchestrator_EmptyChangedTextStopsSilently(t *testing.T) {
	orchestrator, registry := newOrchestrator("go")

	empty := &beautify.MockProvider{ProviderId: "empty", Result: &beautify.Result{ChangedText: ""}}
	fallback := &beautify.MockProvider{ProviderId: "fallback", Result: &beautify.Result{ChangedText: "fallback text"}}
	registry.Register(empty, []string{"go"}, 1)
	registry.Register(fallback, []string{"go"}, 0)

	buffer := editor.NewBuffer("/project/main.go", "original")
	err := orchestrator.Beautify(context.Background(), buffer)

	assert.NoError(t, err)
	assert.Equal(t, "original", buffer.Text())
	assert.Equal(t, 0, fallback.Calls)
}

func TestOrchestrator_NilProviderIsSkipped(t *testing.T) {
	orchestrator, registry := newOrchestrator("go")

	registry.Register(nil, []string{"go"}, 10)
	working := &beautify.MockProvider{ProviderId: "working", Result: &beautify.Result{ChangedText: "formatted"}}
	registry.Register(working, []string{"go"}, 0)

	buffer := editor.NewBuffer("/project/main.go", "unformatted")
	err := orchestrator.Beautify(context.Background(), buffer)

	assert.NoError(t, err)
	assert.Equal(t, "formatted", buffer.Text())
}

func TestOrchestrator_NoCandidates(t *testing.T) {
	orchestrator, _ := newOrchestrator("cobol")

	buffer := editor.NewBuffer("/project/legacy.cob", "MOVE A TO B")
	err := orchestrator.Beautify(context.Background(), buffer)

	assert.ErrorIs(t, err, beautify.ErrNoProvider)
}

func TestOrchestrator_RangedResultIsApplied(t *testing.T) {
	orchestrator, registry := newOrchestrator("go")

	ranged := &beautify.MockProvider{
		ProviderId: "ranged",
		Result: &beautify.Result{
			ChangedText: "HELLO",
			Ranges: &beautify.Ranges{
				ReplaceStart: editor.Position{Line: 0, Ch: 0},
				ReplaceEnd:   editor.Position{Line: 0, Ch: 5},
			},
		},
	}
	registry.Register(ranged, []string{"go"}, 0)

	buffer := editor.NewBuffer("/project/main.go", "hello world")
	err := orchestrator.Beautify(context.Background(), buffer)

	assert.NoError(t, err)
	assert.Equal(t, "HELLO world", buffer.Text())
}
