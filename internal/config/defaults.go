package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Prompt: PromptConfig{Enable: true},
		Log: LogConfig{
			Enable: true,
			Level:  "info",
		},
	}
}
