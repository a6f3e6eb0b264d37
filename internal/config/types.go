// Package config resolves, parses, validates, and defaults niri-output-toggle configuration.
package config

// AppName names the config and state directories.
const AppName = "niri-output-toggle"

// Config is the fully materialized runtime configuration.
type Config struct {
	Output string       `toml:"output"`
	Notify NotifyConfig `toml:"notify"`
	Sound  SoundConfig  `toml:"sound"`
	Log    LogConfig    `toml:"log"`
}

// NotifyConfig controls desktop notifications for diagnostics.
type NotifyConfig struct {
	Enable    bool   `toml:"enable"`
	AppName   string `toml:"app_name"`
	Title     string `toml:"title"`
	Urgency   string `toml:"urgency"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// SoundConfig controls audio cues on transitions and errors.
type SoundConfig struct {
	Enable bool `toml:"enable"`
}

// LogConfig controls the JSONL runtime log.
type LogConfig struct {
	Level string `toml:"level"`
}

// Warning is a non-fatal parse/validation message.
// Key names the dotted TOML key it concerns, when there is one.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	if w.Key == "" {
		return w.Message
	}
	return w.Key + ": " + w.Message
}
