// Package profile loads the CLI settings and the configured controller
// authentication profiles.
package profile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/cockroachdb/errors"
)

// Settings are read from the environment.
type Settings struct {
	// ConfigPath is the profiles file. A leading ~ is expanded.
	ConfigPath string `env:"UNIPY_CONFIG" envDefault:"~/.config/unipy/profiles.yaml"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"UNIPY_LOG_LEVEL" envDefault:"warn"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (*Settings, error) {
	settings := &Settings{}
	if err := env.Parse(settings); err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}

	path, err := expandHome(settings.ConfigPath)
	if err != nil {
		return nil, err
	}
	settings.ConfigPath = path

	return settings, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
