package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// SocketEnv is the environment variable niri exports with its control-socket path.
const SocketEnv = "NIRI_SOCKET"

// ErrSocketUnset means the control-socket endpoint is not configured.
var ErrSocketUnset = errors.New(SocketEnv + " is not set")

// SocketPath returns the control-socket endpoint from the environment.
func SocketPath() (string, error) {
	path := strings.TrimSpace(os.Getenv(SocketEnv))
	if path == "" {
		return "", ErrSocketUnset
	}
	return path, nil
}

// ResolvePath applies CLI/XDG fallback rules for config.toml location.
func ResolvePath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}
	if strings.TrimSpace(xdg.ConfigHome) == "" {
		return "", errors.New("unable to resolve XDG config home")
	}
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml"), nil
}
