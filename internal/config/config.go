// Package config loads tool configuration from, in increasing precedence:
// built-in defaults, a YAML config file, REVISE_* environment variables, and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the tool's settings.
type Config struct {
	// DBPath is the SQLite database file holding subjects and cards.
	DBPath string `koanf:"db_path" validate:"required"`
	// DecksDir, when set, is a default directory of markdown deck files
	// offered for import.
	DecksDir string `koanf:"decks_dir"`
	// ReposDir is where git deck repositories are cloned.
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:   "revise.db",
		ReposDir: "repos",
	}
}

// Flags returns the flag set Load understands. Callers parse it themselves so
// they can add their own flags alongside.
func Flags() *pflag.FlagSet {
	f := pflag.NewFlagSet("revise", pflag.ContinueOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("db", Default().DBPath, "Path to the SQLite database file")
	f.String("decks", "", "Directory of markdown deck files to offer for import")
	f.String("repos", Default().ReposDir, "Directory git deck repositories are cloned into")
	return f
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"db":    "db_path",
	"decks": "decks_dir",
	"repos": "repos_dir",
}

// Load builds the configuration from defaults, the config file named by the
// parsed flag set (if any), environment, and flags. A missing config file is
// only an error when it was named explicitly.
func Load(flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	configFile, _ := flags.GetString("config")
	explicit := configFile != ""
	if configFile == "" {
		configFile = "revise.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	// REVISE_DB_PATH=... -> db_path
	err := k.Load(env.Provider("REVISE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "REVISE_"))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment config: %w", err)
	}

	err = k.Load(posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
		if mapped, ok := flagKeys[key]; ok {
			return mapped, value
		}
		return "", nil // not a config flag
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load flag config: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
