package beautify

import (
	"context"
	"errors"
	"log"

	"github.com/cristianradulescu/beautify-ls/internal/editor"
	"github.com/cristianradulescu/beautify-ls/internal/languages"
	"github.com/cristianradulescu/beautify-ls/internal/logging"
)

// ErrNoProvider is returned when every candidate declined and none
// produced a usable result for the document.
var ErrNoProvider = errors.New("no provider could beautify the document")

// Orchestrator resolves the candidate provider list for a document and
// tries each candidate in priority order until one yields a usable
// result, then applies that result to the editor.
type Orchestrator struct {
	registry  *Registry
	languages languages.Resolver
}

func NewOrchestrator(registry *Registry, resolver languages.Resolver) *Orchestrator {
	return &Orchestrator{
		registry:  registry,
		languages: resolver,
	}
}

func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Beautify runs the candidate providers for the editor's document
// strictly one at a time: each provider's outcome is observed before the
// next is tried, so priority and fallback stay meaningful and nothing
// races on editor state.
//
// A provider error is an expected decline and moves on to the next
// candidate. A nil result (or empty changed text) means the provider
// handled the document itself: no replacement happens, no further
// candidate runs, and no error is reported. The first non-empty result
// is applied and wins. ErrNoProvider is returned only on exhaustion.
func (o *Orchestrator) Beautify(ctx context.Context, ed editor.Editor) error {
	lang := o.languages.LanguageForPath(ed.Path())
	candidates := o.registry.Candidates(lang.ID)

	for _, provider := range candidates {
		if provider == nil {
			// Malformed registration, not a formatting failure.
			log.Printf("%s%s Skipping malformed provider registration for language %q", logging.LogTagLSP, logging.LogTagBeautify, lang.ID)
			continue
		}

		result, err := provider.Beautify(ctx, ed)
		if err != nil {
			log.Printf("%s%s Provider %s declined: %v", logging.LogTagLSP, logging.LogTagBeautify, provider.Id(), err)
			continue
		}

		if result == nil || result.ChangedText == "" {
			log.Printf("%s%s Provider %s handled the document itself", logging.LogTagLSP, logging.LogTagBeautify, provider.Id())
			return nil
		}

		ApplyResult(ed, result)
		return nil
	}

	return ErrNoProvider
}
