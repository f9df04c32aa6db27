package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/answerbook/internal/backup"
	"github.com/dmitrijs2005/answerbook/internal/common"
	"github.com/dmitrijs2005/answerbook/internal/logging"
	"github.com/dmitrijs2005/answerbook/internal/models"
	"github.com/dmitrijs2005/answerbook/internal/repositories/kv"
)

// KnowledgeBase is the single entry point to answers and categories. All
// methods are safe for concurrent use; calls are serialized.
type KnowledgeBase struct {
	mu         sync.Mutex
	store      kv.Store
	logger     logging.Logger
	now        func() time.Time
	answers    *AnswerStore
	categories *CategoryRegistry
}

// Option customizes a KnowledgeBase.
type Option func(*options)

type options struct {
	now   func() time.Time
	order models.SortOrder
}

// WithNow sets the clock used for ids and backup file names.
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithOrder sets the remembered sort order.
func WithOrder(order models.SortOrder) Option {
	return func(o *options) { o.order = order }
}

func NewKnowledgeBase(store kv.Store, logger logging.Logger, opts ...Option) *KnowledgeBase {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	answers := NewAnswerStore(store, logger, WithClock(o.now), WithSortOrder(o.order))
	return &KnowledgeBase{
		store:      store,
		logger:     logger,
		now:        o.now,
		answers:    answers,
		categories: NewCategoryRegistry(store, answers, logger),
	}
}

// Open loads answers and then categories.
func (kb *KnowledgeBase) Open(ctx context.Context) error {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if err := kb.answers.Load(ctx); err != nil {
		return fmt.Errorf("open answers: %w", err)
	}
	if err := kb.categories.Load(ctx); err != nil {
		return fmt.Errorf("open categories: %w", err)
	}
	return nil
}

func (kb *KnowledgeBase) All() []models.Answer {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.All()
}

func (kb *KnowledgeBase) Get(id int64) (models.Answer, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.Get(id)
}

func (kb *KnowledgeBase) Filter(query, category string) []models.Answer {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.Filter(query, category)
}

func (kb *KnowledgeBase) Create(ctx context.Context, title, content, category string) (models.Answer, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.Create(ctx, title, content, category)
}

func (kb *KnowledgeBase) Update(ctx context.Context, id int64, title, content, category string) (models.Answer, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.Update(ctx, id, title, content, category)
}

func (kb *KnowledgeBase) Delete(ctx context.Context, id int64) (bool, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.Delete(ctx, id)
}

func (kb *KnowledgeBase) ToggleFavorite(ctx context.Context, id int64) (bool, bool, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.ToggleFavorite(ctx, id)
}

func (kb *KnowledgeBase) Sort(ctx context.Context, order models.SortOrder) error {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.Sort(ctx, order)
}

func (kb *KnowledgeBase) SortOrder() models.SortOrder {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.answers.Order()
}

// Categories returns the effective categories.
func (kb *KnowledgeBase) Categories() []string {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.categories.GetAll()
}

func (kb *KnowledgeBase) AddCategory(ctx context.Context, name string) error {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.categories.AddCategory(ctx, name)
}

// Counts summarizes the collection per effective category.
func (kb *KnowledgeBase) Counts() models.Counts {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	all := kb.answers.All()
	c := models.Counts{
		Total:       len(all),
		PerCategory: make(map[string]int),
	}
	for _, name := range kb.categories.GetAll() {
		c.PerCategory[name] = 0
	}
	for _, a := range all {
		if a.Favorite {
			c.Favorites++
		}
		if a.Category == common.CategoryFavorites {
			continue
		}
		c.PerCategory[a.Category]++
	}
	return c
}

// Export encodes every answer and suggests a dated file name.
func (kb *KnowledgeBase) Export() ([]byte, string, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	data, err := backup.Export(kb.answers.All())
	if err != nil {
		return nil, "", err
	}
	return data, backup.BackupFileName(kb.now().UTC()), nil
}

// ExportAnswer encodes a single answer as a one-element backup document.
func (kb *KnowledgeBase) ExportAnswer(id int64) ([]byte, string, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	a, err := kb.answers.Get(id)
	if err != nil {
		return nil, "", err
	}
	data, err := backup.Export([]models.Answer{a})
	if err != nil {
		return nil, "", err
	}
	return data, backup.AnswerFileName(a.Title), nil
}

// Import merges a backup document into the collection. Answers and
// categories are written in one transaction; on any error neither changes.
func (kb *KnowledgeBase) Import(ctx context.Context, document []byte) (backup.MergeStats, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	imported, err := backup.Decode(document)
	if err != nil {
		kb.logger.Warn(ctx, "import rejected", "error", err)
		return backup.MergeStats{}, err
	}

	merged, stats := backup.Merge(kb.answers.All(), imported)
	nextAnswers, err := kb.answers.prepare(merged)
	if err != nil {
		kb.logger.Warn(ctx, "import rejected", "error", err)
		return backup.MergeStats{}, err
	}
	nextCategories := EffectiveCategories(kb.categories.Stored(), nextAnswers)

	err = kb.store.Atomic(ctx, func(ctx context.Context, tx kv.Repository) error {
		if err := kb.answers.write(ctx, tx, nextAnswers); err != nil {
			return err
		}
		return kb.categories.write(ctx, tx, nextCategories)
	})
	if err != nil {
		if !errors.Is(err, common.ErrPersistence) {
			err = fmt.Errorf("%w: import: %w", common.ErrPersistence, err)
		}
		kb.logger.Error(ctx, "import not saved", "error", err)
		return backup.MergeStats{}, err
	}

	kb.answers.install(nextAnswers)
	kb.categories.install(nextCategories)

	kb.logger.Info(ctx, "answers imported", "added", stats.Added, "replaced", stats.Replaced)
	return stats, nil
}
