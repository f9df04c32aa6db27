package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/answerbook/internal/logging"
	"github.com/dmitrijs2005/answerbook/internal/models"
	"github.com/dmitrijs2005/answerbook/internal/repositories/kv"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// flakyStore fails writes to the keys listed in failKeys.
type flakyStore struct {
	*kv.MemoryStore
	failKeys map[string]bool
	writes   int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: kv.NewMemoryStore(), failKeys: map[string]bool{}}
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failKeys[key] {
		return errDiskFull
	}
	s.writes++
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *flakyStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx kv.Repository) error) error {
	return s.MemoryStore.Atomic(ctx, func(ctx context.Context, _ kv.Repository) error {
		return fn(ctx, s)
	})
}

var testNow = time.UnixMilli(1_700_000_000_000)

func fixedClock() time.Time { return testNow }

func openKB(t *testing.T, store kv.Store, opts ...Option) *KnowledgeBase {
	t.Helper()
	opts = append([]Option{WithNow(fixedClock)}, opts...)
	kb := NewKnowledgeBase(store, logging.Nop(), opts...)
	require.NoError(t, kb.Open(context.Background()))
	return kb
}

func loadedAnswers(t *testing.T, store kv.Repository, opts ...AnswerStoreOption) *AnswerStore {
	t.Helper()
	opts = append([]AnswerStoreOption{WithClock(fixedClock)}, opts...)
	s := NewAnswerStore(store, logging.Nop(), opts...)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func titles(list []models.Answer) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Title)
	}
	return out
}
