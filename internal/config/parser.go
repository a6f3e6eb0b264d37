package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Parse decodes TOML content over base and validates the result.
// Unknown keys become warnings rather than errors.
func Parse(content string, base Config) (Config, []Warning, error) {
	cfg := base
	meta, err := toml.Decode(content, &cfg)
	if err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return Config{}, nil, fmt.Errorf("line %d: %s", parseErr.Position.Line, parseErr.Message)
		}
		return Config{}, nil, err
	}

	warnings := make([]Warning, 0)
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, Warning{Key: key.String(), Message: "unknown key ignored"})
	}

	cfg.Output = strings.TrimSpace(cfg.Output)
	cfg.Notify.Urgency = strings.ToLower(strings.TrimSpace(cfg.Notify.Urgency))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	validated, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, append(warnings, validated...), nil
}
