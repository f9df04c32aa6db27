package kv

import (
	"context"
)

// Repository reads and writes named durable entries.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Store is a Repository that can also apply several writes atomically.
type Store interface {
	Repository
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}
