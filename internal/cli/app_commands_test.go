package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/answerbook/internal/backup"
	"github.com/dmitrijs2005/answerbook/internal/common"
	"github.com/dmitrijs2005/answerbook/internal/config"
	"github.com/dmitrijs2005/answerbook/internal/logging"
	"github.com/dmitrijs2005/answerbook/internal/models"
	"github.com/dmitrijs2005/answerbook/internal/repositories/kv"
	"github.com/dmitrijs2005/answerbook/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

var testNow = time.UnixMilli(1_700_000_000_000)

const (
	welcomeID = 1_700_000_000_000
	refundID  = 1_700_000_000_001
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(t *testing.T, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	kb := services.NewKnowledgeBase(kv.NewMemoryStore(), logging.Nop(),
		services.WithNow(func() time.Time { return testNow }))
	require.NoError(t, kb.Open(context.Background()))

	var out bytes.Buffer
	return &App{
		config:   &config.Config{ExportDir: t.TempDir()},
		kb:       kb,
		logger:   logging.Nop(),
		reader:   readerFromLines(lines...),
		out:      &out,
		category: common.CategoryAll,
	}, &out
}

// failingKB rejects every import.
type failingKB struct {
	services.KnowledgeService
}

func (failingKB) Import(ctx context.Context, document []byte) (backup.MergeStats, error) {
	return backup.MergeStats{}, common.ErrPersistence
}

// ------------ tests ------------

func TestList_Default(t *testing.T) {
	app, out := newTestApp(t)
	require.NoError(t, app.List(context.Background(), nil))

	assert.Contains(t, out.String(), "Welcome Message")
	assert.Contains(t, out.String(), "Refund Request")
}

func TestSearch_SetsQuery(t *testing.T) {
	app, out := newTestApp(t)
	require.NoError(t, app.Search(context.Background(), []string{"refund"}))

	assert.Equal(t, "refund", app.query)
	assert.Contains(t, out.String(), "Refund Request")
	assert.NotContains(t, out.String(), "Welcome Message")
	assert.Contains(t, app.prompt(), `"refund"`)

	out.Reset()
	require.NoError(t, app.Search(context.Background(), []string{""}))
	assert.Empty(t, app.query)
	assert.Contains(t, out.String(), "Welcome Message")
}

func TestFilter_FavoritesAndCategories(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Filter(ctx, []string{common.CategoryFavorites}))
	assert.Contains(t, out.String(), "No answers found.")

	require.NoError(t, app.Favorite(ctx, []string{"1700000000000"}))
	out.Reset()
	require.NoError(t, app.List(ctx, nil))
	assert.Contains(t, out.String(), "Welcome Message")
	assert.NotContains(t, out.String(), "Refund Request")

	out.Reset()
	require.NoError(t, app.Filter(ctx, []string{"Billing"}))
	assert.Contains(t, out.String(), "Refund Request")
	assert.Equal(t, "ab [Billing]> ", app.prompt())

	err := app.Filter(ctx, []string{"Nope"})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "Billing", app.category, "failed filter keeps the selection")
}

func TestShow(t *testing.T) {
	app, out := newTestApp(t)
	require.NoError(t, app.Show(context.Background(), []string{"1700000000001"}))

	assert.Contains(t, out.String(), "Title: Refund Request")
	assert.Contains(t, out.String(), "Category: Billing")
	assert.Contains(t, out.String(), "within 2-3 business days")

	assert.ErrorIs(t, app.Show(context.Background(), []string{"42"}), common.ErrNotFound)
	assert.ErrorIs(t, app.Show(context.Background(), []string{"abc"}), common.ErrValidation)
	assert.ErrorIs(t, app.Show(context.Background(), nil), errUsage)
}

func TestAdd_CreatesAnswer(t *testing.T) {
	app, out := newTestApp(t,
		"Late delivery", // title
		"General",       // category
		"Hello,",        // content
		"",
		"Sorry for the delay.",
		".",
	)
	require.NoError(t, app.Add(context.Background(), nil))
	assert.Contains(t, out.String(), "created.")

	got := app.kb.Filter("late delivery", common.CategoryAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Hello,\n\nSorry for the delay.", got[0].Content)
	assert.Equal(t, "General", got[0].Category)
}

func TestAdd_RejectsUnknownCategory(t *testing.T) {
	app, _ := newTestApp(t, "Title", "Widgets", "body", ".")
	err := app.Add(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Len(t, app.kb.All(), 2)
}

func TestAdd_RejectsBlankTitle(t *testing.T) {
	app, out := newTestApp(t, "", "General", "body", ".")
	err := app.Add(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, out.String(), "Error:")
}

func TestEdit_EmptyRepliesKeepValues(t *testing.T) {
	app, _ := newTestApp(t,
		"Refunds", // new title
		"",        // keep category
		".",       // keep content
	)
	require.NoError(t, app.Edit(context.Background(), []string{"1700000000001"}))

	got, err := app.kb.Get(refundID)
	require.NoError(t, err)
	assert.Equal(t, "Refunds", got.Title)
	assert.Equal(t, "Billing", got.Category)
	assert.Contains(t, got.Content, "refund request")
}

func TestEdit_ReplacesContent(t *testing.T) {
	app, _ := newTestApp(t, "", "General", "New text", ".")
	require.NoError(t, app.Edit(context.Background(), []string{"1700000000001"}))

	got, err := app.kb.Get(refundID)
	require.NoError(t, err)
	assert.Equal(t, "Refund Request", got.Title)
	assert.Equal(t, "General", got.Category)
	assert.Equal(t, "New text", got.Content)
}

func TestDelete_Confirmation(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		app, out := newTestApp(t, "n")
		require.NoError(t, app.Delete(context.Background(), []string{"1700000000000"}))
		assert.Contains(t, out.String(), "Cancelled.")
		assert.Len(t, app.kb.All(), 2)
		assert.Zero(t, app.pendingDelete)
	})

	t.Run("confirmed", func(t *testing.T) {
		app, out := newTestApp(t, "y")
		require.NoError(t, app.Delete(context.Background(), []string{"1700000000000"}))
		assert.Contains(t, out.String(), "Deleted.")
		assert.Len(t, app.kb.All(), 1)
		assert.Zero(t, app.pendingDelete)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		app, out := newTestApp(t)
		require.NoError(t, app.Delete(context.Background(), []string{"5"}))
		assert.Contains(t, out.String(), "Nothing to delete: no answer 5.")
		assert.NotContains(t, out.String(), "Error:")
		assert.Len(t, app.kb.All(), 2)
	})
}

func TestFavorite_RedrawsRow(t *testing.T) {
	app, out := newTestApp(t)
	require.NoError(t, app.Favorite(context.Background(), []string{"1700000000001"}))
	assert.Contains(t, out.String(), "* 1700000000001 [Billing] Refund Request")

	out.Reset()
	require.NoError(t, app.Favorite(context.Background(), []string{"9"}))
	assert.Equal(t, "Nothing to do: no answer 9.\n", out.String())
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"-4"}, "show")
	require.NoError(t, err)
	assert.Equal(t, int64(-4), id)

	_, err = parseID([]string{"0"}, "show")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = parseID([]string{"x"}, "show")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSort(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Sort(ctx, []string{"name-asc"}))
	all := app.kb.All()
	assert.Equal(t, "Refund Request", all[0].Title)
	assert.Equal(t, models.SortNameAsc, app.kb.SortOrder())

	assert.ErrorIs(t, app.Sort(ctx, []string{"newest"}), common.ErrValidation)
	assert.ErrorIs(t, app.Sort(ctx, nil), errUsage)
}

func TestCategoriesAndAddCategory(t *testing.T) {
	app, out := newTestApp(t, "Shipping")
	ctx := context.Background()

	require.NoError(t, app.AddCategory(ctx, []string{"Customer", "Care"}))
	require.NoError(t, app.AddCategory(ctx, nil))
	assert.ErrorIs(t, app.AddCategory(ctx, []string{"Billing"}), common.ErrDuplicate)
	assert.ErrorIs(t, app.AddCategory(ctx, []string{common.CategoryFavorites}), common.ErrValidation)

	out.Reset()
	require.NoError(t, app.Categories(ctx, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"all", "2"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Favoriten", "0"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Billing", "1"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Customer", "Care", "0"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"General", "1"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"Shipping", "0"}, strings.Fields(lines[5]))
}

func TestCopy(t *testing.T) {
	old := writeClipboard
	t.Cleanup(func() { writeClipboard = old })

	var copied string
	writeClipboard = func(s string) error { copied = s; return nil }

	app, out := newTestApp(t)
	require.NoError(t, app.Copy(context.Background(), []string{"1700000000000"}))
	assert.True(t, strings.HasPrefix(copied, "Hello,\n\nThank you for your message."))
	assert.Contains(t, out.String(), "Copied")

	writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	assert.Error(t, app.Copy(context.Background(), []string{"1700000000000"}))
}

func TestExport_WritesDatedBackup(t *testing.T) {
	app, out := newTestApp(t)
	dir := t.TempDir()

	require.NoError(t, app.Export(context.Background(), []string{dir}))

	path := filepath.Join(dir, backup.BackupFileName(testNow.UTC()))
	assert.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var answers []models.Answer
	require.NoError(t, json.Unmarshal(data, &answers))
	assert.Len(t, answers, 2)
}

func TestExport_DefaultsToConfiguredDir(t *testing.T) {
	app, _ := newTestApp(t)
	require.NoError(t, app.Export(context.Background(), nil))

	_, err := os.Stat(filepath.Join(app.config.ExportDir, backup.BackupFileName(testNow.UTC())))
	assert.NoError(t, err)
}

func TestExportOne(t *testing.T) {
	app, _ := newTestApp(t)
	dir := t.TempDir()

	require.NoError(t, app.ExportOne(context.Background(), []string{"1700000000001", dir}))

	data, err := os.ReadFile(filepath.Join(dir, "answer-refund_request.json"))
	require.NoError(t, err)
	var answers []models.Answer
	require.NoError(t, json.Unmarshal(data, &answers))
	require.Len(t, answers, 1)
	assert.Equal(t, int64(refundID), answers[0].Id)
}

func TestImport(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":1700000000000,"title":"Welcome v2","content":"hi","category":"General"},
		{"id":5,"title":"Widgets","content":"w","category":"Widgets"}
	]`), 0o600))

	require.NoError(t, app.Import(ctx, []string{path}))
	assert.Contains(t, out.String(), "Imported 1 new and 1 replaced answers.")
	assert.Contains(t, app.kb.Categories(), "Widgets")

	got, err := app.kb.Get(welcomeID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome v2", got.Title)
}

func TestImport_Errors(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, app.Import(ctx, nil), errUsage)
	assert.ErrorIs(t, app.Import(ctx, []string{filepath.Join(t.TempDir(), "missing.json")}), os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":1}`), 0o600))
	assert.ErrorIs(t, app.Import(ctx, []string{bad}), common.ErrFormat)
	assert.Len(t, app.kb.All(), 2)

	app.kb = failingKB{KnowledgeService: app.kb}
	err := app.Import(ctx, []string{bad})
	assert.ErrorIs(t, err, common.ErrPersistence)
}
