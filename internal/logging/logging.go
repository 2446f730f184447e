package logging

// Log tags keep the single shared logger greppable per subsystem.
const (
	LogTagLSP      string = "[lsp]"
	LogTagMain     string = "[main]"
	LogTagServer   string = "[server]"
	LogTagBeautify string = "[beautify]"
	LogTagRegistry string = "[registry]"
	LogTagOnSave   string = "[onsave]"
	LogTagCLI      string = "[cli]"
)
