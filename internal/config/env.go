package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/answerbook/internal/models"
	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

const (
	envDB        = "ANSWERBOOK_DB"
	envExportDir = "ANSWERBOOK_EXPORT_DIR"
	envSort      = "ANSWERBOOK_SORT"
	envLogLevel  = "ANSWERBOOK_LOG_LEVEL"
	envLogFormat = "ANSWERBOOK_LOG_FORMAT"
)

// parseEnv overlays cfg with ANSWERBOOK_* variables. Entries from the dotenv
// file are used only where lookup finds nothing. A missing dotenv file is
// not an error.
func parseEnv(cfg *Config, dotenv string, lookup func(string) (string, bool)) error {
	fileVars := map[string]string{}
	if dotenv != "" {
		vars, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", dotenv, err)
		}
	}

	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return fileVars[key]
	}

	set(&cfg.DBPath, get(envDB))
	set(&cfg.ExportDir, get(envExportDir))
	set(&cfg.LogLevel, get(envLogLevel))
	set(&cfg.LogFormat, get(envLogFormat))
	if v := get(envSort); v != "" {
		cfg.SortOrder = models.SortOrder(v)
	}
	return nil
}
