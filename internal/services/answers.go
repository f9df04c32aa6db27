package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/answerbook/internal/common"
	"github.com/dmitrijs2005/answerbook/internal/logging"
	"github.com/dmitrijs2005/answerbook/internal/models"
	"github.com/dmitrijs2005/answerbook/internal/repositories/kv"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// seedAnswers is the example data written to an empty store.
var seedAnswers = []models.Answer{
	{
		Title:    "Welcome Message",
		Content:  "Hello,\n\nThank you for your message. We are happy to help you.\n\nBest regards\nYour Support Team",
		Category: "General",
	},
	{
		Title:    "Refund Request",
		Content:  "Hello,\n\nThank you for your refund request. We are processing your request and will get back to you within 2-3 business days.\n\nBest regards\nYour Support Team",
		Category: "Billing",
	},
}

// seedCategories is the category list persisted together with seedAnswers.
var seedCategories = []string{"General", "Billing"}

// AnswerStore owns the answer collection and its durable entry.
type AnswerStore struct {
	repo     kv.Repository
	logger   logging.Logger
	now      func() time.Time
	collator *collate.Collator
	order    models.SortOrder
	answers  []models.Answer
}

// AnswerStoreOption customizes an AnswerStore.
type AnswerStoreOption func(*AnswerStore)

// WithClock replaces time.Now as the source of new ids.
func WithClock(now func() time.Time) AnswerStoreOption {
	return func(s *AnswerStore) { s.now = now }
}

// WithSortOrder sets the order re-applied after every create, update and
// import. It does not reorder anything by itself.
func WithSortOrder(o models.SortOrder) AnswerStoreOption {
	return func(s *AnswerStore) { s.order = o }
}

func NewAnswerStore(repo kv.Repository, logger logging.Logger, opts ...AnswerStoreOption) *AnswerStore {
	s := &AnswerStore{
		repo:     repo,
		logger:   logger.With("component", "answers"),
		now:      time.Now,
		collator: collate.New(language.English),
		answers:  []models.Answer{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the durable entry. An absent entry is seeded with example data;
// a present one is migrated in memory.
func (s *AnswerStore) Load(ctx context.Context) error {
	data, err := s.repo.Get(ctx, common.KeyAnswers)
	if err != nil {
		return fmt.Errorf("%w: load answers: %w", common.ErrPersistence, err)
	}
	if data == nil {
		return s.seed(ctx)
	}

	var stored []models.Answer
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("%w: stored answers: %w", common.ErrParse, err)
	}
	if stored == nil {
		stored = []models.Answer{}
	}
	migrate(stored)
	s.answers = stored

	s.logger.Debug(ctx, "answers loaded", "count", len(stored))
	return nil
}

func (s *AnswerStore) seed(ctx context.Context) error {
	now := s.now().UnixMilli()
	next := models.Clone(seedAnswers)
	for i := range next {
		next[i].Id = now + int64(i)
	}

	cats, err := json.Marshal(seedCategories)
	if err != nil {
		return fmt.Errorf("%w: encode categories: %w", common.ErrPersistence, err)
	}
	if err := s.repo.Set(ctx, common.KeyCategories, cats); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info(ctx, "answers seeded", "count", len(next))
	return nil
}

// migrate applies Answer.Migrate to every element.
func migrate(answers []models.Answer) {
	for i := range answers {
		answers[i].Migrate()
	}
}

// Save overwrites the durable entry with the in-memory collection.
func (s *AnswerStore) Save(ctx context.Context) error {
	return s.write(ctx, s.repo, s.answers)
}

// All returns a copy of the collection in stored order.
func (s *AnswerStore) All() []models.Answer {
	return models.Clone(s.answers)
}

// Get returns the answer with the given id.
func (s *AnswerStore) Get(id int64) (models.Answer, error) {
	idx := models.IndexOf(s.answers, id)
	if idx < 0 {
		return models.Answer{}, fmt.Errorf("%w: answer %d", common.ErrNotFound, id)
	}
	return s.answers[idx], nil
}

// Order returns the remembered sort order.
func (s *AnswerStore) Order() models.SortOrder {
	return s.order
}

// Create validates the fields, appends a new answer and persists.
func (s *AnswerStore) Create(ctx context.Context, title, content, category string) (models.Answer, error) {
	in, err := newAnswerInput(title, content, category)
	if err != nil {
		return models.Answer{}, err
	}

	id, err := nextID(s.answers, s.now())
	if err != nil {
		return models.Answer{}, err
	}
	a := models.Answer{
		Id:       id,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}
	next := append(models.Clone(s.answers), a)
	s.applyOrder(next)

	if err := s.commit(ctx, next); err != nil {
		return models.Answer{}, err
	}
	s.logger.Info(ctx, "answer created", "id", a.Id, "category", a.Category)
	return a, nil
}

// Update replaces title, content and category of an existing answer. Id and
// favorite flag are untouched.
func (s *AnswerStore) Update(ctx context.Context, id int64, title, content, category string) (models.Answer, error) {
	idx := models.IndexOf(s.answers, id)
	if idx < 0 {
		return models.Answer{}, fmt.Errorf("%w: answer %d", common.ErrNotFound, id)
	}
	in, err := newAnswerInput(title, content, category)
	if err != nil {
		return models.Answer{}, err
	}

	next := models.Clone(s.answers)
	next[idx].Title = in.Title
	next[idx].Content = in.Content
	next[idx].Category = in.Category
	updated := next[idx]
	s.applyOrder(next)

	if err := s.commit(ctx, next); err != nil {
		return models.Answer{}, err
	}
	s.logger.Info(ctx, "answer updated", "id", id)
	return updated, nil
}

// Delete removes an answer. An unknown id is a no-op and reports false.
func (s *AnswerStore) Delete(ctx context.Context, id int64) (bool, error) {
	idx := models.IndexOf(s.answers, id)
	if idx < 0 {
		s.logger.Warn(ctx, "delete of unknown answer ignored", "id", id)
		return false, nil
	}

	next := slices.Delete(models.Clone(s.answers), idx, idx+1)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Info(ctx, "answer deleted", "id", id)
	return true, nil
}

// ToggleFavorite flips the favorite flag and returns its new value so a
// caller can redraw just that answer. found is false for an unknown id, in
// which case nothing changes.
func (s *AnswerStore) ToggleFavorite(ctx context.Context, id int64) (favorite bool, found bool, err error) {
	idx := models.IndexOf(s.answers, id)
	if idx < 0 {
		s.logger.Warn(ctx, "favorite toggle of unknown answer ignored", "id", id)
		return false, false, nil
	}

	next := models.Clone(s.answers)
	next[idx].Favorite = !next[idx].Favorite
	if err := s.commit(ctx, next); err != nil {
		return false, true, err
	}
	return next[idx].Favorite, true, nil
}

// Sort reorders the collection by title and persists the new order. The order
// is remembered and re-applied by later mutations.
func (s *AnswerStore) Sort(ctx context.Context, order models.SortOrder) error {
	if _, err := models.ParseSortOrder(string(order)); err != nil {
		return err
	}
	if order == models.SortNone {
		return fmt.Errorf("%w: sort order must be %s or %s", common.ErrValidation, models.SortNameAsc, models.SortNameDesc)
	}

	next := models.Clone(s.answers)
	s.sortAnswers(next, order)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.order = order
	return nil
}

// Filter returns the answers matching query and category. It never mutates.
func (s *AnswerStore) Filter(query, category string) []models.Answer {
	return FilterAnswers(s.answers, query, category)
}

// Replace installs a complete new collection. Answers without an id (zero)
// receive a fresh one; the remembered sort order is applied.
func (s *AnswerStore) Replace(ctx context.Context, answers []models.Answer) error {
	next, err := s.prepare(answers)
	if err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// FilterAnswers applies the category filter and then the text query.
// category "all" (or empty) keeps everything, "Favoriten" keeps favorites,
// anything else must match exactly. A blank query keeps everything.
func FilterAnswers(answers []models.Answer, query, category string) []models.Answer {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		switch category {
		case "", common.CategoryAll:
		case common.CategoryFavorites:
			if !a.Favorite {
				continue
			}
		default:
			if a.Category != category {
				continue
			}
		}
		if q != "" && !a.Matches(q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// nextID derives an id from now, bumped past every existing id. It fails
// once an existing id sits at the top of the int64 range.
func nextID(existing []models.Answer, now time.Time) (int64, error) {
	id := now.UnixMilli()
	for _, a := range existing {
		if a.Id == math.MaxInt64 {
			return 0, fmt.Errorf("%w: answer id space exhausted", common.ErrValidation)
		}
		if a.Id >= id {
			id = a.Id + 1
		}
	}
	return id, nil
}

// prepare migrates answers, gives id-less ones a fresh id and applies the
// remembered order. Any non-zero id is kept as the answer's identity.
func (s *AnswerStore) prepare(answers []models.Answer) ([]models.Answer, error) {
	next := models.Clone(answers)
	for i := range next {
		next[i].Migrate()
		if next[i].Id == 0 {
			id, err := nextID(next, s.now())
			if err != nil {
				return nil, err
			}
			next[i].Id = id
		}
	}
	s.applyOrder(next)
	return next, nil
}

func (s *AnswerStore) applyOrder(list []models.Answer) {
	if s.order != models.SortNone {
		s.sortAnswers(list, s.order)
	}
}

func (s *AnswerStore) sortAnswers(list []models.Answer, order models.SortOrder) {
	slices.SortStableFunc(list, func(a, b models.Answer) int {
		if order == models.SortNameDesc {
			return s.collator.CompareString(b.Title, a.Title)
		}
		return s.collator.CompareString(a.Title, b.Title)
	})
}

// write persists list to repo without touching memory.
func (s *AnswerStore) write(ctx context.Context, repo kv.Repository, list []models.Answer) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: encode answers: %w", common.ErrPersistence, err)
	}
	if err := repo.Set(ctx, common.KeyAnswers, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return nil
}

// install swaps a persisted collection into memory.
func (s *AnswerStore) install(list []models.Answer) {
	s.answers = list
}

func (s *AnswerStore) commit(ctx context.Context, next []models.Answer) error {
	if err := s.write(ctx, s.repo, next); err != nil {
		s.logger.Error(ctx, "answers not saved", "error", err)
		return err
	}
	s.install(next)
	return nil
}
