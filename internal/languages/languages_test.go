package languages_test

import (
	"testing"

	"github.com/cristianradulescu/beautify-ls/internal/languages"
)

func TestExtensionResolver_LanguageForPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "go file",
			path:     "/home/user/project/main.go",
			expected: "go",
		},
		{
			name:     "uppercase extension",
			path:     "/home/user/project/INDEX.HTML",
			expected: "html",
		},
		{
			name:     "yaml alias",
			path:     "deploy.yml",
			expected: "yaml",
		},
		{
			name:     "unknown extension",
			path:     "picture.webp",
			expected: "",
		},
		{
			name:     "no extension",
			path:     "Makefile",
			expected: "",
		},
	}

	resolver := languages.NewExtensionResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang := resolver.LanguageForPath(tt.path)
			if lang.ID != tt.expected {
				t.Errorf("LanguageForPath(%s) = %q; expected %q", tt.path, lang.ID, tt.expected)
			}
		})
	}
}

func TestExtensionResolver_Overrides(t *testing.T) {
	resolver := languages.NewExtensionResolver()

	// The host may declare a languageId that contradicts the extension.
	resolver.SetOverride("/project/config.txt", "yaml")
	if lang := resolver.LanguageForPath("/project/config.txt"); lang.ID != "yaml" {
		t.Errorf("override not applied, got %q", lang.ID)
	}

	// Overrides only affect the exact path they were set for.
	if lang := resolver.LanguageForPath("/project/other.txt"); lang.ID != "" {
		t.Errorf("unrelated path resolved to %q; expected no language", lang.ID)
	}

	resolver.SetOverride("/project/config.txt", "")
	if lang := resolver.LanguageForPath("/project/config.txt"); lang.ID != "" {
		t.Errorf("cleared override still resolves to %q", lang.ID)
	}
}
