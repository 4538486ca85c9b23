package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if level == "" {
		return nil, fmt.Errorf("log.level must not be empty")
	}
	if _, ok := validLogLevels[level]; !ok {
		return nil, fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}

	if path := strings.TrimSpace(cfg.Log.Path); path != "" && !filepath.IsAbs(path) {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("log.path %q is relative; it resolves against the working directory", path),
		})
	}
	if !cfg.Log.Enable && strings.TrimSpace(cfg.Log.Path) != "" {
		warnings = append(warnings, Warning{Message: "log.path is set but log.enable=false; no log file is written"})
	}

	return warnings, nil
}
