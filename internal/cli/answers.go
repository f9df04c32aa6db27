package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/answerbook/internal/common"
	"github.com/dmitrijs2005/answerbook/internal/models"
)

var errUsage = errors.New("usage")

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

// parseID reads the answer id from the first argument.
func parseID(args []string, cmd string) (int64, error) {
	if len(args) == 0 {
		return 0, usage(cmd + " <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", common.ErrValidation, args[0])
	}
	return id, nil
}

func (a *App) Help(ctx context.Context, args []string) error {
	a.println(helpText)
	return nil
}

// List prints the answers that pass the current category filter and query.
func (a *App) List(ctx context.Context, args []string) error {
	answers := a.kb.Filter(a.query, a.category)
	if len(answers) == 0 {
		a.println("No answers found.")
		return nil
	}
	for _, ans := range answers {
		a.println(ans)
	}
	return nil
}

func (a *App) Filter(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		return a.fail(usage("filter <all|Favoriten|category>"))
	}
	if name != common.CategoryAll && name != common.CategoryFavorites && !slices.Contains(a.kb.Categories(), name) {
		return a.fail(fmt.Errorf("%w: category %q", common.ErrNotFound, name))
	}
	a.category = name
	return a.List(ctx, nil)
}

func (a *App) Search(ctx context.Context, args []string) error {
	a.query = strings.TrimSpace(strings.Join(args, " "))
	return a.List(ctx, nil)
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show")
	if err != nil {
		return a.fail(err)
	}
	ans, err := a.kb.Get(id)
	if err != nil {
		return a.fail(err)
	}

	fav := "no"
	if ans.Favorite {
		fav = "yes"
	}
	a.printf("Id: %d\nTitle: %s\nCategory: %s\nFavorite: %s\n\n%s\n", ans.Id, ans.Title, ans.Category, fav, ans.Content)
	return nil
}

// checkCategory accepts registered categories and the migration default.
func (a *App) checkCategory(name string) error {
	if name == common.CategoryUncategorized || slices.Contains(a.kb.Categories(), name) {
		return nil
	}
	return fmt.Errorf("%w: unknown category %q, register it with addcat first", common.ErrValidation, name)
}

func (a *App) Add(ctx context.Context, args []string) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return a.fail(err)
	}
	category, err := GetSimpleText(a.reader, "Category ("+strings.Join(a.kb.Categories(), ", ")+")", a.out)
	if err != nil {
		return a.fail(err)
	}
	if err := a.checkCategory(category); err != nil {
		return a.fail(err)
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return a.fail(err)
	}

	ans, err := a.kb.Create(ctx, title, content, category)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Answer %d created.\n", ans.Id)
	return nil
}

// Edit prompts for every field; an empty reply keeps the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit")
	if err != nil {
		return a.fail(err)
	}
	cur, err := a.kb.Get(id)
	if err != nil {
		return a.fail(err)
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", cur.Title), a.out)
	if err != nil {
		return a.fail(err)
	}
	if title == "" {
		title = cur.Title
	}

	category, err := GetSimpleText(a.reader, fmt.Sprintf("Category [%s]", cur.Category), a.out)
	if err != nil {
		return a.fail(err)
	}
	if category == "" {
		category = cur.Category
	}
	if category != cur.Category {
		if err := a.checkCategory(category); err != nil {
			return a.fail(err)
		}
	}

	content, err := GetMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil && !errors.Is(err, io.EOF) {
		return a.fail(err)
	}
	if strings.TrimSpace(content) == "" {
		content = cur.Content
	}

	if _, err := a.kb.Update(ctx, id, title, content, category); err != nil {
		return a.fail(err)
	}
	a.printf("Answer %d updated.\n", id)
	return nil
}

// Delete asks for confirmation before removing the answer. An unknown id is
// not an error; there is simply nothing to delete.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete")
	if err != nil {
		return a.fail(err)
	}
	ans, err := a.kb.Get(id)
	if errors.Is(err, common.ErrNotFound) {
		a.printf("Nothing to delete: no answer %d.\n", id)
		return nil
	}
	if err != nil {
		return a.fail(err)
	}

	a.pendingDelete = id
	defer func() { a.pendingDelete = 0 }()

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", ans.Title), a.out)
	if err != nil {
		return a.fail(err)
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	removed, err := a.kb.Delete(ctx, a.pendingDelete)
	if err != nil {
		return a.fail(err)
	}
	if removed {
		a.println("Deleted.")
	}
	return nil
}

// Favorite toggles the flag and redraws just that answer. An unknown id
// changes nothing.
func (a *App) Favorite(ctx context.Context, args []string) error {
	id, err := parseID(args, "fav")
	if err != nil {
		return a.fail(err)
	}
	_, found, err := a.kb.ToggleFavorite(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	if !found {
		a.printf("Nothing to do: no answer %d.\n", id)
		return nil
	}

	ans, err := a.kb.Get(id)
	if err != nil {
		return a.fail(err)
	}
	a.println(ans)
	return nil
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.fail(usage("sort <name-asc|name-desc>"))
	}
	order, err := models.ParseSortOrder(args[0])
	if err != nil {
		return a.fail(err)
	}
	if order == models.SortNone {
		return a.fail(usage("sort <name-asc|name-desc>"))
	}
	if err := a.kb.Sort(ctx, order); err != nil {
		return a.fail(err)
	}
	return a.List(ctx, nil)
}
