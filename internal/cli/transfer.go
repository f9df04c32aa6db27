package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/answerbook/internal/filex"
)

// writeClipboard is a test seam for clipboard.WriteAll.
var writeClipboard = clipboard.WriteAll

// exportDir returns the directory argument or the configured default.
func (a *App) exportDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if a.config != nil && a.config.ExportDir != "" {
		return a.config.ExportDir
	}
	return "."
}

func (a *App) Copy(ctx context.Context, args []string) error {
	id, err := parseID(args, "copy")
	if err != nil {
		return a.fail(err)
	}
	ans, err := a.kb.Get(id)
	if err != nil {
		return a.fail(err)
	}

	if err := writeClipboard(ans.Content); err != nil {
		return a.fail(fmt.Errorf("copy to clipboard: %w", err))
	}
	a.println("Copied to clipboard.")
	return nil
}

// Export writes a dated backup of every answer.
func (a *App) Export(ctx context.Context, args []string) error {
	data, name, err := a.kb.Export()
	if err != nil {
		return a.fail(err)
	}
	path, err := filex.WriteFileAtomic(a.exportDir(args), name, data)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Exported to %s\n", path)
	return nil
}

// ExportOne writes a single answer to its own file.
func (a *App) ExportOne(ctx context.Context, args []string) error {
	id, err := parseID(args, "exportone")
	if err != nil {
		return a.fail(err)
	}
	data, name, err := a.kb.ExportAnswer(id)
	if err != nil {
		return a.fail(err)
	}
	path, err := filex.WriteFileAtomic(a.exportDir(args[1:]), name, data)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Exported to %s\n", path)
	return nil
}

// Import merges a backup file into the collection.
func (a *App) Import(ctx context.Context, args []string) error {
	path := strings.Join(args, " ")
	if path == "" {
		return a.fail(usage("import <file>"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return a.fail(err)
	}

	stats, err := a.kb.Import(ctx, data)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Imported %d new and %d replaced answers.\n", stats.Added, stats.Replaced)
	return nil
}
