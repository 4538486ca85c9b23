// Package config resolves, parses, validates, and defaults addtwo configuration.
package config

// Config is the fully materialized runtime configuration used by addtwo.
type Config struct {
	Prompt PromptConfig
	Log    LogConfig
}

// PromptConfig controls the instructional line printed before reading input.
type PromptConfig struct {
	Enable bool
}

// LogConfig controls the JSONL runtime log sink.
type LogConfig struct {
	Enable bool
	Level  string
	Path   string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
