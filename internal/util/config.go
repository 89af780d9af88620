package util

import (
	"fmt"
	"github.com/BurntSushi/toml"
	"sort"
	"strings"
)

// Configuration is assembled from an optional TOML file and then overridden
// by command line flags.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	LogFormat string `toml:"log_format"`

	// Bindings lists YAML files loaded into the root environment in order.
	Bindings []string `toml:"bindings"`
	Database Database `toml:"database"`

	HistoryFile string `toml:"history_file"`
	NoColor     bool   `toml:"no_color"`
}

// Database configures an SQL bindings source. An empty Driver disables it.
type Database struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
	Query  string `toml:"query"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		LogLevel:  "none",
		LogFormat: "json",
	}
}

// LoadConfiguration decodes path over the defaults. Unknown keys are an
// error so that typos do not go unnoticed.
func LoadConfiguration(path string) (Configuration, error) {
	config := DefaultConfiguration()

	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return config, fmt.Errorf("load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return config, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return config, nil
}
