package commands

import (
	"context"

	"rendervault/internal/domain"
)

// Registry is the part of application.Registry the commands drive
type Registry interface {
	CreatePool(ctx context.Context, category domain.Category, name, root string) (domain.Pool, error)
	DeletePool(ctx context.Context, category domain.Category, name string) (domain.Pool, error)
	ListPools(ctx context.Context, category domain.Category) ([]domain.Pool, error)
	AllPools(ctx context.Context) (map[domain.Category][]domain.Pool, error)
	Assets(ctx context.Context, category domain.Category, name string) ([]domain.Asset, error)
	FindAsset(ctx context.Context, category domain.Category, pool, stem string) (domain.Asset, error)

	DeleteAsset(category domain.Category, assetPath string) (*domain.DeleteReport, error)
	ArchiveAsset(category domain.Category, assetPath string) (*domain.ArchiveEntry, error)
	ArchivedVersions(assetPath string) ([]domain.ArchiveEntry, error)
	RestoreVersion(category domain.Category, assetPath string, version int, keepCurrent bool) (*domain.ArchiveEntry, error)

	AddTag(assetPath, tag string) (domain.Metadata, error)
	RemoveTag(assetPath, tag string) (domain.Metadata, error)
	SetNotes(assetPath, notes string) (domain.Metadata, error)
	FilterByTag(ctx context.Context, category domain.Category, name, tag string) ([]domain.Asset, error)
}
