package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source is one configured sheet: the published CSV URL and the name used
// for both the output file and the checksum store key.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config is the YAML configuration for a sync run. Timeout and Interval are
// in seconds, matching the cron-friendly deployment this tool is meant for.
type Config struct {
	OutputDir string `yaml:"output"`
	StateFile string `yaml:"state"`
	LogFile   string `yaml:"logfile"`
	Timeout   int    `yaml:"timeout"`
	Interval  int    `yaml:"interval"`

	// Sources is an ordered list - sheets are synced in the order they are
	// configured.
	Sources []Source `yaml:"sources"`

	// ForcedWidths maps sheet name to column name to a minimum column width
	// for the generated 2DA.
	ForcedWidths map[string]map[string]int `yaml:"forced_widths"`
}

// Load reads the YAML configuration, applies defaults and environment
// overrides (SHEETS2DA_OUTPUT_DIR, SHEETS2DA_STATE_FILE; a .env file is
// honoured when present) and validates the source list.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := Config{
		StateFile: "sync_state.json",
		LogFile:   "sync.log",
		Timeout:   30,
		Interval:  300,
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration %s (%v)", path, err)
	}

	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration %s (%v)", path, err)
	}

	if v := os.Getenv("SHEETS2DA_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	if v := os.Getenv("SHEETS2DA_STATE_FILE"); v != "" {
		cfg.StateFile = v
	}

	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("no output directory configured")
	}

	names := map[string]bool{}
	for _, source := range cfg.Sources {
		if source.Name == "" {
			return nil, fmt.Errorf("source with missing name")
		}

		if names[source.Name] {
			return nil, fmt.Errorf("duplicate source name '%s'", source.Name)
		}

		names[source.Name] = true
	}

	return &cfg, nil
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}
