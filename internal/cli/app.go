package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/answerbook/internal/common"
	"github.com/dmitrijs2005/answerbook/internal/config"
	"github.com/dmitrijs2005/answerbook/internal/logging"
	"github.com/dmitrijs2005/answerbook/internal/repositories/kv"
	"github.com/dmitrijs2005/answerbook/internal/services"
	"github.com/dmitrijs2005/answerbook/internal/storage"
)

type App struct {
	config *config.Config
	kb     services.KnowledgeService
	logger logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	// category is the selected filter: "all", "Favoriten" or a category name.
	category string
	query    string
	// pendingDelete is the id awaiting confirmation, 0 when none.
	pendingDelete int64
}

// NewApp opens the database named in c and loads the knowledge base.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	kb := services.NewKnowledgeBase(kv.NewSQLiteStore(db), logger, services.WithOrder(c.SortOrder))
	if err := kb.Open(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		kb:       kb,
		logger:   logger,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		category: common.CategoryAll,
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Error(ctx, "close database", "error", err)
		}
	}()

	a.println("Welcome to answerbook (type 'help' for commands)")
	prompt := a.prompt
	if !isTerminal(int(os.Stdin.Fd())) {
		prompt = nil
	}
	runREPL(ctx, a, prompt, a.reader)
}

// prompt shows the active filter and query.
func (a *App) prompt() string {
	s := "ab"
	if a.category != common.CategoryAll {
		s += " [" + a.category + "]"
	}
	if a.query != "" {
		s += fmt.Sprintf(" %q", a.query)
	}
	return s + "> "
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail reports err to the user and returns it.
func (a *App) fail(err error) error {
	a.println("Error:", err.Error())
	return err
}
