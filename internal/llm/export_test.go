package llm

// Exports for testing.

var (
	WithChatCompleter = withChatCompleter
	StripFences       = stripFences
)
