package config

// DefaultOutput is the output toggled when neither flag nor config names one.
const DefaultOutput = "HDMI-A-1"

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Output: DefaultOutput,
		Notify: NotifyConfig{
			Enable:    true,
			AppName:   AppName,
			Title:     "Output switch error",
			Urgency:   "normal",
			TimeoutMS: 3000,
		},
		Sound: SoundConfig{Enable: false},
		Log:   LogConfig{Level: "info"},
	}
}
