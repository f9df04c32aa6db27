package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/answerbook/internal/common"
)

// Categories prints the sidebar: total, favorites and every category with
// its answer count.
func (a *App) Categories(ctx context.Context, args []string) error {
	c := a.kb.Counts()

	a.printf("%-24s %d\n", common.CategoryAll, c.Total)
	a.printf("%-24s %d\n", common.CategoryFavorites, c.Favorites)
	for _, name := range a.kb.Categories() {
		a.printf("%-24s %d\n", name, c.PerCategory[name])
	}
	return nil
}

// AddCategory registers the name given as arguments or asks for one.
func (a *App) AddCategory(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		var err error
		name, err = GetSimpleText(a.reader, "New category name", a.out)
		if err != nil {
			return a.fail(err)
		}
	}

	if err := a.kb.AddCategory(ctx, name); err != nil {
		return a.fail(err)
	}
	a.printf("Category %q added.\n", strings.TrimSpace(name))
	return nil
}
