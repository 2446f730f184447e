package beautify

import (
	"context"

	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"github.com/cristianradulescu/beautify-ls/internal/languages"
)

// MockProvider is a scripted provider for tests.
type MockProvider struct {
	ProviderId string
	Result     *Result
	Err        error
	Calls      int
}

func (m *MockProvider) Id() string {
	return m.ProviderId
}

func (m *MockProvider) Name() string {
	return m.ProviderId
}

func (m *MockProvider) Beautify(_ context.Context, _ editor.Editor) (*Result, error) {
	m.Calls++
	return m.Result, m.Err
}

// MockResolver resolves every path to a fixed language id.
type MockResolver struct {
	LanguageID string
}

func (m *MockResolver) LanguageForPath(_ string) languages.Language {
	return languages.Language{ID: m.LanguageID}
}
