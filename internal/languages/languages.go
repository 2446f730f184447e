package languages

import (
	"path/filepath"
	"strings"
	"sync"
)

// Language identifies the language of a document.
type Language struct {
	ID string
}

// Resolver maps a file path to a language. The LSP server overlays the
// client-declared languageId from didOpen; the CLI relies on extensions.
type Resolver interface {
	LanguageForPath(path string) Language
}

// Language ids follow the LSP languageId conventions.
var extensions = map[string]string{
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".css":   "css",
	".go":    "go",
	".html":  "html",
	".java":  "java",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "javascriptreact",
	".lua":   "lua",
	".md":    "markdown",
	".php":   "php",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".sh":    "shellscript",
	".sql":   "sql",
	".ts":    "typescript",
	".tsx":   "typescriptreact",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
	".zig":   "zig",
}

// ExtensionResolver resolves languages from file extensions, with optional
// per-document overrides declared by the host.
type ExtensionResolver struct {
	mu        sync.RWMutex
	overrides map[string]string
}

func NewExtensionResolver() *ExtensionResolver {
	return &ExtensionResolver{
		overrides: make(map[string]string),
	}
}

// SetOverride pins a language id for a specific path, taking precedence
// over the extension table. An empty id removes the override.
func (r *ExtensionResolver) SetOverride(path string, languageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if languageID == "" {
		delete(r.overrides, path)
		return
	}
	r.overrides[path] = languageID
}

func (r *ExtensionResolver) LanguageForPath(path string) Language {
	r.mu.RLock()
	id, ok := r.overrides[path]
	r.mu.RUnlock()
	if ok {
		return Language{ID: id}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if id, ok := extensions[ext]; ok {
		return Language{ID: id}
	}

	return Language{}
}
