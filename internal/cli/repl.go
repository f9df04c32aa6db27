package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// execIface defines the command surface the REPL dispatches to. The real App
// type satisfies it; tests can provide a lightweight stub.
type execIface interface {
	Help(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	AddCategory(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	ExportOne(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	println(args ...any)
}

const helpText = `Available commands:
  list                     list answers matching the current filter and search
  filter <all|Favoriten|category>
  search [query]           set the search query (no query clears it)
  show <id>                print one answer
  add                      create an answer
  edit <id>                change title, category or content
  delete <id>              delete an answer (asks for confirmation)
  fav <id>                 toggle favorite
  sort <name-asc|name-desc>
  categories               categories with answer counts
  addcat                   register a new category
  copy <id>                copy the answer content to the clipboard
  export [dir]             write a full backup
  exportone <id> [dir]     write a single answer
  import <file>            merge a backup into the collection
  exit | quit`

// runREPL reads commands line by line from reader and dispatches them to a.
// The first token is the command, the rest its arguments; "search" keeps the
// remainder of the line as one query. prompt, when non-nil, is printed before
// each read. The loop ends on EOF, on a read error, on context cancellation,
// or when the user types "exit" or "quit".
//
// Handlers report their own errors to the user; the loop keeps running.
func runREPL(ctx context.Context, a execIface, prompt func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt != nil {
			a.println(prompt())
		}

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			_ = a.Help(ctx, args)
		case "l", "list":
			_ = a.List(ctx, args)
		case "filter":
			_ = a.Filter(ctx, args)
		case "search":
			query := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))
			_ = a.Search(ctx, []string{query})
		case "show":
			_ = a.Show(ctx, args)
		case "add":
			_ = a.Add(ctx, args)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "fav":
			_ = a.Favorite(ctx, args)
		case "sort":
			_ = a.Sort(ctx, args)
		case "categories":
			_ = a.Categories(ctx, args)
		case "addcat":
			_ = a.AddCategory(ctx, args)
		case "copy":
			_ = a.Copy(ctx, args)
		case "export":
			_ = a.Export(ctx, args)
		case "exportone":
			_ = a.ExportOne(ctx, args)
		case "import":
			_ = a.Import(ctx, args)
		case "exit", "quit":
			a.println("Bye!")
			return
		default:
			a.println("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
