// Package config loads the two configuration layers that feed version
// resolution: the user's global configuration under ~/.stackforge and the
// per-project state file written into every generated tree.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Global is the user-level configuration. Every field is optional; a missing
// config file yields the zero value.
type Global struct {
	// Versions are user-wide version-key overrides, the third rung of the
	// version precedence chain.
	Versions map[string]string

	// DefaultFlags are feature flags applied to every invocation unless the
	// command line names its own.
	DefaultFlags []string
}

// LoadGlobal reads ~/.stackforge/config.toml plus STACKFORGE_* environment
// variables. A missing file is not an error.
func LoadGlobal() (*Global, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Global{}, nil
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(home, ".stackforge"))
	v.SetEnvPrefix("STACKFORGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	return &Global{
		Versions:     v.GetStringMapString("versions"),
		DefaultFlags: v.GetStringSlice("default_flags"),
	}, nil
}
