package services

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/answerbook/internal/common"
	"github.com/dmitrijs2005/answerbook/internal/logging"
	"github.com/dmitrijs2005/answerbook/internal/models"
	"github.com/dmitrijs2005/answerbook/internal/repositories/kv"
)

// AnswerSource exposes the current answers to the registry.
type AnswerSource interface {
	All() []models.Answer
}

// CategoryRegistry keeps the persisted list of user-defined categories.
type CategoryRegistry struct {
	repo    kv.Repository
	answers AnswerSource
	logger  logging.Logger
	stored  []string
}

func NewCategoryRegistry(repo kv.Repository, answers AnswerSource, logger logging.Logger) *CategoryRegistry {
	return &CategoryRegistry{
		repo:    repo,
		answers: answers,
		logger:  logger.With("component", "categories"),
		stored:  []string{},
	}
}

// Load reads the stored list, reconciles it with the categories used by the
// loaded answers and persists the result. The answers must be loaded first.
func (r *CategoryRegistry) Load(ctx context.Context) error {
	data, err := r.repo.Get(ctx, common.KeyCategories)
	if err != nil {
		return fmt.Errorf("%w: load categories: %w", common.ErrPersistence, err)
	}

	var stored []string
	if data != nil {
		if err := json.Unmarshal(data, &stored); err != nil {
			return fmt.Errorf("%w: stored categories: %w", common.ErrParse, err)
		}
	}

	next := EffectiveCategories(stored, r.answers.All())
	if err := r.write(ctx, r.repo, next); err != nil {
		return err
	}
	r.install(next)

	r.logger.Debug(ctx, "categories loaded", "count", len(next))
	return nil
}

// Stored returns a copy of the persisted registry.
func (r *CategoryRegistry) Stored() []string {
	return slices.Clone(r.stored)
}

// GetAll returns the effective categories: the registry plus every category
// referenced by an answer.
func (r *CategoryRegistry) GetAll() []string {
	return EffectiveCategories(r.stored, r.answers.All())
}

// AddCategory registers a new category name. Names are case-sensitive.
func (r *CategoryRegistry) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if slices.Contains(r.GetAll(), name) {
		return fmt.Errorf("%w: category %q", common.ErrDuplicate, name)
	}

	next := append(slices.Clone(r.stored), name)
	slices.Sort(next)
	if err := r.write(ctx, r.repo, next); err != nil {
		r.logger.Error(ctx, "categories not saved", "error", err)
		return err
	}
	r.install(next)

	r.logger.Info(ctx, "category added", "name", name)
	return nil
}

// EffectiveCategories merges stored names with the categories used by answers,
// dropping blanks and the favorites sentinel, sorted and de-duplicated.
func EffectiveCategories(stored []string, answers []models.Answer) []string {
	set := make(map[string]struct{}, len(stored)+len(answers))
	for _, c := range stored {
		set[c] = struct{}{}
	}
	for _, a := range answers {
		set[a.Category] = struct{}{}
	}
	delete(set, "")
	delete(set, common.CategoryFavorites)

	out := slices.Sorted(maps.Keys(set))
	if out == nil {
		out = []string{}
	}
	return out
}

func (r *CategoryRegistry) write(ctx context.Context, repo kv.Repository, list []string) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: encode categories: %w", common.ErrPersistence, err)
	}
	if err := repo.Set(ctx, common.KeyCategories, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *CategoryRegistry) install(list []string) {
	r.stored = list
}
