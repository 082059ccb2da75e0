package ports

import (
	"context"

	"rendervault/internal/domain"
)

// PoolIndex is the persistent registry of pools, partitioned by category.
// It is the single source of truth for which pools exist.
type PoolIndex interface {
	// Lifecycle
	Close() error

	// Row operations
	Insert(ctx context.Context, category domain.Category, name, root string) error
	Delete(ctx context.Context, category domain.Category, name string) error

	// Queries, sorted by name ascending
	Select(ctx context.Context, category domain.Category) ([]domain.Pool, error)
	Get(ctx context.Context, category domain.Category, name string) (domain.Pool, error)
	SelectAll(ctx context.Context) (map[domain.Category][]domain.Pool, error)

	// Bulk import of category -> name -> root, skipping duplicates
	Import(ctx context.Context, entries map[domain.Category]map[string]string) (*domain.ImportStats, error)

	// Batch updates
	BeginTx(ctx context.Context) (IndexTx, error)
}

// IndexTx represents a transaction over the pool index
type IndexTx interface {
	Exists(category domain.Category, name string) (bool, error)
	Insert(category domain.Category, name, root string) error
	Delete(category domain.Category, name string) (int64, error)

	// Transaction control
	Commit() error
	Rollback() error
}
