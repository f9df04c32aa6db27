package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/answerbook/internal/flagx"
	"github.com/dmitrijs2005/answerbook/internal/models"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a config file. Empty fields leave the
// current value untouched.
type FileConfig struct {
	DBPath    string `json:"db_path" yaml:"db_path"`
	ExportDir string `json:"export_dir" yaml:"export_dir"`
	SortOrder string `json:"sort_order" yaml:"sort_order"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	set(&cfg.DBPath, fc.DBPath)
	set(&cfg.ExportDir, fc.ExportDir)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)
	if fc.SortOrder != "" {
		cfg.SortOrder = models.SortOrder(fc.SortOrder)
	}
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
