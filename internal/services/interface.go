package services

import (
	"context"

	"github.com/dmitrijs2005/answerbook/internal/backup"
	"github.com/dmitrijs2005/answerbook/internal/models"
)

// KnowledgeService is the surface the terminal client works against.
type KnowledgeService interface {
	All() []models.Answer
	Get(id int64) (models.Answer, error)
	Filter(query, category string) []models.Answer
	Create(ctx context.Context, title, content, category string) (models.Answer, error)
	Update(ctx context.Context, id int64, title, content, category string) (models.Answer, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ToggleFavorite(ctx context.Context, id int64) (favorite bool, found bool, err error)
	Sort(ctx context.Context, order models.SortOrder) error
	SortOrder() models.SortOrder

	Categories() []string
	AddCategory(ctx context.Context, name string) error
	Counts() models.Counts

	Export() ([]byte, string, error)
	ExportAnswer(id int64) ([]byte, string, error)
	Import(ctx context.Context, document []byte) (backup.MergeStats, error)
}

var _ KnowledgeService = (*KnowledgeBase)(nil)
