package config

import (
	"fmt"
	"strings"
)

var (
	validUrgencies = map[string]struct{}{"low": {}, "normal": {}, "critical": {}}
	validLevels    = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if strings.TrimSpace(cfg.Output) == "" {
		return nil, fmt.Errorf("output must not be empty")
	}
	if _, ok := validUrgencies[cfg.Notify.Urgency]; !ok {
		return nil, fmt.Errorf("notify.urgency must be one of: low, normal, critical")
	}
	if cfg.Notify.TimeoutMS < 0 {
		return nil, fmt.Errorf("notify.timeout_ms must be >= 0")
	}
	if cfg.Notify.Enable && strings.TrimSpace(cfg.Notify.AppName) == "" {
		return nil, fmt.Errorf("notify.app_name must not be empty when notify.enable=true")
	}
	if _, ok := validLevels[cfg.Log.Level]; !ok {
		return nil, fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}

	if cfg.Notify.Enable && strings.TrimSpace(cfg.Notify.Title) == "" {
		warnings = append(warnings, Warning{Key: "notify.title", Message: "empty; the default title is used"})
	}
	if !cfg.Notify.Enable && !cfg.Sound.Enable {
		warnings = append(warnings, Warning{Message: "notify and sound are both disabled; errors only reach the log"})
	}

	return warnings, nil
}
