package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/answerbook/internal/flagx"
	"github.com/dmitrijs2005/answerbook/internal/models"
)

// parseFlags populates cfg from command-line flags. Only the flags handled
// here are passed to the flag set; see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-e", "-s", "-l"})

	fs := flag.NewFlagSet("answerbook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the answers database")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for exported files")
	order := fs.String("s", string(cfg.SortOrder), "sort order (name-asc, name-desc)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.SortOrder = models.SortOrder(*order)
	return nil
}
