package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tailscale/hujson"
)

type jsoncConfig struct {
	Prompt *jsoncPrompt `json:"prompt"`
	Log    *jsoncLog    `json:"log"`
}

type jsoncPrompt struct {
	Enable *bool `json:"enable"`
}

type jsoncLog struct {
	Enable *bool   `json:"enable"`
	Level  *string `json:"level"`
	Path   *string `json:"path"`
}

func parseJSONC(content string, base Config) (Config, []Warning, error) {
	normalized, err := normalizeJSONC(content)
	if err != nil {
		return Config{}, nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload jsoncConfig
	if err := decoder.Decode(&payload); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}

	cfg := base
	payload.applyTo(&cfg)

	warnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, warnings, nil
}

func (payload jsoncConfig) applyTo(cfg *Config) {
	if payload.Prompt != nil && payload.Prompt.Enable != nil {
		cfg.Prompt.Enable = *payload.Prompt.Enable
	}

	if payload.Log != nil {
		if payload.Log.Enable != nil {
			cfg.Log.Enable = *payload.Log.Enable
		}
		if payload.Log.Level != nil {
			cfg.Log.Level = strings.ToLower(strings.TrimSpace(*payload.Log.Level))
		}
		if payload.Log.Path != nil {
			cfg.Log.Path = strings.TrimSpace(*payload.Log.Path)
		}
	}
}

// normalizeJSONC blanks comments and trailing commas, keeping byte offsets
// stable so decode errors still point at the original text.
func normalizeJSONC(content string) ([]byte, error) {
	normalized, err := hujson.Standardize([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	return normalized, nil
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content []byte, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(content, syntaxErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(content, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	return err
}

func offsetToLineCol(content []byte, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := min(int(offset), len(content))
	line, col := 1, 1
	for _, ch := range content[:max(limit-1, 0)] {
		if ch == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
