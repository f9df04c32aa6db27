package config

import (
	"os"

	"github.com/dmitrijs2005/answerbook/internal/models"
)

// Config holds runtime settings for the answerbook client.
type Config struct {
	DBPath    string
	ExportDir string
	SortOrder models.SortOrder
	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "answerbook.db"
	c.ExportDir = "."
	c.SortOrder = models.SortNone
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, the config file, the environment
// and args (usually os.Args[1:]), later sources overriding earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotEnvFile, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if _, err := models.ParseSortOrder(string(cfg.SortOrder)); err != nil {
		return nil, err
	}
	return cfg, nil
}
