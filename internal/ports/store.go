package ports

import "rendervault/internal/domain"

// AssetStore defines the filesystem side of a pool: layout, assets and archive
type AssetStore interface {
	// Layout operations
	CreatePoolLayout(category domain.Category, root string) error
	RemovePoolLayout(category domain.Category, root string) error
	CheckPoolLayout(category domain.Category, root string) domain.PoolHealth

	// Enumeration; for the utility category root is the built-in directory
	Enumerate(category domain.Category, root string) ([]domain.Asset, error)

	// Lifecycle operations
	DeleteAsset(category domain.Category, assetPath string) (*domain.DeleteReport, error)
	ArchiveAsset(category domain.Category, assetPath string) (*domain.ArchiveEntry, error)
	ArchivedVersions(assetPath string) ([]domain.ArchiveEntry, error)
	RestoreVersion(category domain.Category, assetPath string, version int) (*domain.ArchiveEntry, error)
}

// MetadataStore reads and writes per-asset JSON sidecars
type MetadataStore interface {
	// Load returns the sidecar at path, writing the default record first if absent
	Load(path string) (domain.Metadata, error)

	// Save overwrites the sidecar at path
	Save(path string, m domain.Metadata) error

	// Tagged returns the stems of sidecars in dir carrying tag, sorted
	Tagged(dir, tag string) ([]string, error)
}

// ThumbnailGenerator renders a preview image for a source file
type ThumbnailGenerator interface {
	Generate(src, dst string, size int) error
}
