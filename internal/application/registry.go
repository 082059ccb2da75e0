package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"rendervault/internal/domain"
	"rendervault/internal/logging"
	"rendervault/internal/ports"
)

// Options holds the settings the registry needs from configuration
type Options struct {
	UtilityDir string // built-in directory listed by the utility category
}

// Deps groups the collaborators of a Registry. Revealer may be nil.
type Deps struct {
	Index    ports.PoolIndex
	Store    ports.AssetStore
	Metadata ports.MetadataStore
	Revealer ports.Revealer
}

// Registry is the single entry point for pool and asset operations
// across every category.
type Registry struct {
	opts     Options
	index    ports.PoolIndex
	store    ports.AssetStore
	metadata ports.MetadataStore
	revealer ports.Revealer
	log      zerolog.Logger
}

// NewRegistry creates a registry over the given collaborators
func NewRegistry(opts Options, deps Deps, log zerolog.Logger) *Registry {
	return &Registry{
		opts:     opts,
		index:    deps.Index,
		store:    deps.Store,
		metadata: deps.Metadata,
		revealer: deps.Revealer,
		log:      logging.Component(log, "registry"),
	}
}

// CreatePool scaffolds the pool layout under root and indexes it.
// An existing name or layout is rejected before anything is written.
func (r *Registry) CreatePool(ctx context.Context, category domain.Category, name, root string) (domain.Pool, error) {
	if category == domain.CategoryUtility {
		return domain.Pool{}, &UnsupportedError{Category: category, Op: "create pool"}
	}
	if err := ValidateCategory("category", category, true); err != nil {
		return domain.Pool{}, err
	}
	if err := ValidatePoolName("poolName", name); err != nil {
		return domain.Pool{}, err
	}
	if err := ValidateRequired("poolRoot", root); err != nil {
		return domain.Pool{}, err
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return domain.Pool{}, &ValidationError{Field: "poolRoot", Message: err.Error()}
	}

	if _, err := r.index.Get(ctx, category, name); err == nil {
		r.log.Error().Stringer("category", category).Str("name", name).Msg("can't create pool, name already indexed")
		return domain.Pool{}, fmt.Errorf("%w: %s pool %q", ErrAlreadyExists, category, name)
	} else if !errors.Is(err, ErrNotFound) {
		return domain.Pool{}, err
	}

	if err := r.store.CreatePoolLayout(category, root); err != nil {
		r.log.Error().Err(err).Stringer("category", category).Str("name", name).Msg("can't scaffold pool")
		return domain.Pool{}, err
	}

	if err := r.index.Insert(ctx, category, name, root); err != nil {
		// The layout stays on disk; the index and filesystem are not coupled
		r.log.Error().Err(err).Stringer("category", category).Str("name", name).Str("path", root).
			Msg("pool scaffolded but not indexed")
		return domain.Pool{}, err
	}

	pool := domain.Pool{Category: category, Name: name, Root: root}
	r.log.Info().Stringer("category", category).Str("name", name).Str("path", root).Msg("created pool")
	return pool, nil
}

// DeletePool removes the pool's layout and its index row.
// A layout already gone from disk is logged and the row is still removed.
func (r *Registry) DeletePool(ctx context.Context, category domain.Category, name string) (domain.Pool, error) {
	if category == domain.CategoryUtility {
		return domain.Pool{}, &UnsupportedError{Category: category, Op: "delete pool"}
	}
	if err := ValidateCategory("category", category, true); err != nil {
		return domain.Pool{}, err
	}
	if err := ValidateRequired("poolName", name); err != nil {
		return domain.Pool{}, err
	}

	pool, err := r.index.Get(ctx, category, name)
	if err != nil {
		return domain.Pool{}, err
	}

	if err := r.store.RemovePoolLayout(category, pool.Root); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return domain.Pool{}, err
		}
		r.log.Warn().Str("path", pool.Dir()).Msg("pool layout already missing, removing index row")
	}

	if err := r.index.Delete(ctx, category, name); err != nil {
		return domain.Pool{}, err
	}

	r.log.Info().Stringer("category", category).Str("name", name).Msg("deleted pool")
	return pool, nil
}

// ListPools returns the pools of a category sorted by name
func (r *Registry) ListPools(ctx context.Context, category domain.Category) ([]domain.Pool, error) {
	if err := ValidateCategory("category", category, true); err != nil {
		return nil, err
	}
	return r.index.Select(ctx, category)
}

// AllPools returns every category's pools
func (r *Registry) AllPools(ctx context.Context) (map[domain.Category][]domain.Pool, error) {
	return r.index.SelectAll(ctx)
}

// Pool returns a single pool by name
func (r *Registry) Pool(ctx context.Context, category domain.Category, name string) (domain.Pool, error) {
	if err := ValidateCategory("category", category, true); err != nil {
		return domain.Pool{}, err
	}
	if err := ValidateRequired("poolName", name); err != nil {
		return domain.Pool{}, err
	}
	return r.index.Get(ctx, category, name)
}

// Assets enumerates a pool. For the utility category name is ignored
// and the built-in directory is listed.
func (r *Registry) Assets(ctx context.Context, category domain.Category, name string) ([]domain.Asset, error) {
	if category == domain.CategoryUtility {
		if r.opts.UtilityDir == "" {
			return nil, &ValidationError{Field: "utility_dir", Message: "utility directory is not configured"}
		}
		return r.store.Enumerate(category, r.opts.UtilityDir)
	}

	pool, err := r.Pool(ctx, category, name)
	if err != nil {
		return nil, err
	}
	return r.store.Enumerate(category, pool.Root)
}

// FindAsset returns the asset with the given stem in a pool
func (r *Registry) FindAsset(ctx context.Context, category domain.Category, pool, stem string) (domain.Asset, error) {
	assets, err := r.Assets(ctx, category, pool)
	if err != nil {
		return domain.Asset{}, err
	}
	for _, a := range assets {
		if a.Stem == stem {
			return a, nil
		}
	}
	return domain.Asset{}, fmt.Errorf("%w: asset %q in %s pool %q", ErrNotFound, stem, category, pool)
}

// DeleteAsset removes an asset and its satellite files
func (r *Registry) DeleteAsset(category domain.Category, assetPath string) (*domain.DeleteReport, error) {
	if category == domain.CategoryUtility {
		return nil, &UnsupportedError{Category: category, Op: "delete asset"}
	}
	if err := ValidateRequired("assetPath", assetPath); err != nil {
		return nil, err
	}
	return r.store.DeleteAsset(category, assetPath)
}

// ArchiveAsset copies an asset into its versioned archive
func (r *Registry) ArchiveAsset(category domain.Category, assetPath string) (*domain.ArchiveEntry, error) {
	if err := ValidateRequired("assetPath", assetPath); err != nil {
		return nil, err
	}
	return r.store.ArchiveAsset(category, assetPath)
}

// ArchivedVersions lists the archived copies of an asset
func (r *Registry) ArchivedVersions(assetPath string) ([]domain.ArchiveEntry, error) {
	if err := ValidateRequired("assetPath", assetPath); err != nil {
		return nil, err
	}
	return r.store.ArchivedVersions(assetPath)
}

// RestoreVersion copies an archived version back over the asset.
// With keepCurrent set the current file is archived first.
func (r *Registry) RestoreVersion(category domain.Category, assetPath string, version int, keepCurrent bool) (*domain.ArchiveEntry, error) {
	if err := ValidateRequired("assetPath", assetPath); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, &ValidationError{Field: "version", Message: fmt.Sprintf("version must be positive, got: %d", version)}
	}

	if keepCurrent {
		if _, err := r.store.ArchiveAsset(category, assetPath); err != nil {
			return nil, err
		}
	}
	return r.store.RestoreVersion(category, assetPath, version)
}

// MetadataPath returns where the sidecar of an asset lives
func (r *Registry) MetadataPath(assetPath string) string {
	return domain.MetadataPath(assetPath)
}

// Metadata loads the sidecar of an asset, creating it on first access
func (r *Registry) Metadata(assetPath string) (domain.Metadata, error) {
	if err := ValidateRequired("assetPath", assetPath); err != nil {
		return domain.Metadata{}, err
	}
	return r.metadata.Load(domain.MetadataPath(assetPath))
}

// SaveMetadata overwrites the sidecar of an asset
func (r *Registry) SaveMetadata(assetPath string, m domain.Metadata) error {
	if err := ValidateRequired("assetPath", assetPath); err != nil {
		return err
	}
	return r.metadata.Save(domain.MetadataPath(assetPath), m)
}

// AddTag adds a tag to an asset's sidecar
func (r *Registry) AddTag(assetPath, tag string) (domain.Metadata, error) {
	if err := ValidateRequired("tag", tag); err != nil {
		return domain.Metadata{}, err
	}
	return r.updateMetadata(assetPath, func(m *domain.Metadata) {
		m.Tags = m.Tags.Add(tag)
	})
}

// RemoveTag removes a tag from an asset's sidecar
func (r *Registry) RemoveTag(assetPath, tag string) (domain.Metadata, error) {
	if err := ValidateRequired("tag", tag); err != nil {
		return domain.Metadata{}, err
	}
	return r.updateMetadata(assetPath, func(m *domain.Metadata) {
		m.Tags = m.Tags.Remove(tag)
	})
}

// SetNotes replaces the notes of an asset's sidecar
func (r *Registry) SetNotes(assetPath, notes string) (domain.Metadata, error) {
	return r.updateMetadata(assetPath, func(m *domain.Metadata) {
		m.Notes = notes
	})
}

// SetRenderer records the renderer an asset was authored for
func (r *Registry) SetRenderer(assetPath string, renderer domain.Renderer) (domain.Metadata, error) {
	return r.updateMetadata(assetPath, func(m *domain.Metadata) {
		m.Renderer = renderer.String()
	})
}

func (r *Registry) updateMetadata(assetPath string, update func(*domain.Metadata)) (domain.Metadata, error) {
	m, err := r.Metadata(assetPath)
	if err != nil {
		return domain.Metadata{}, err
	}
	update(&m)
	if err := r.SaveMetadata(assetPath, m); err != nil {
		return domain.Metadata{}, err
	}
	return m, nil
}

// FilterByTag returns the assets of a pool whose sidecar carries tag
func (r *Registry) FilterByTag(ctx context.Context, category domain.Category, name, tag string) ([]domain.Asset, error) {
	if err := ValidateRequired("tag", tag); err != nil {
		return nil, err
	}
	if category == domain.CategoryUtility {
		return nil, &UnsupportedError{Category: category, Op: "filter by tag"}
	}

	pool, err := r.Pool(ctx, category, name)
	if err != nil {
		return nil, err
	}
	l, err := domain.LayoutFor(category)
	if err != nil {
		return nil, err
	}

	stems, err := r.metadata.Tagged(l.Subdir(pool.Root, domain.DirMetadata), tag)
	if err != nil {
		return nil, err
	}
	tagged := make(map[string]bool, len(stems))
	for _, s := range stems {
		tagged[s] = true
	}

	assets, err := r.store.Enumerate(category, pool.Root)
	if err != nil {
		return nil, err
	}

	matched := []domain.Asset{}
	for _, a := range assets {
		if tagged[a.Stem] {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// MissingThumbnails returns the assets of a pool that have no thumbnail yet
func (r *Registry) MissingThumbnails(ctx context.Context, category domain.Category, name string) ([]domain.Asset, error) {
	assets, err := r.Assets(ctx, category, name)
	if err != nil {
		return nil, err
	}

	missing := []domain.Asset{}
	for _, a := range assets {
		if !a.HasThumbnail() {
			missing = append(missing, a)
		}
	}
	return missing, nil
}

// Reconcile checks every indexed pool against its layout on disk.
// Nothing is repaired.
func (r *Registry) Reconcile(ctx context.Context) (*domain.ReconcileReport, error) {
	all, err := r.index.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.ReconcileReport{}
	for _, category := range domain.PoolCategories() {
		for _, pool := range all[category] {
			report.Checked++
			h := r.store.CheckPoolLayout(category, pool.Root)
			h.Pool = pool
			if !h.Healthy() {
				r.log.Warn().Stringer("category", category).Str("name", pool.Name).
					Bool("root_missing", h.RootMissing).Strs("missing", h.Missing).Msg("pool layout incomplete")
				report.Unhealthy = append(report.Unhealthy, h)
			}
		}
	}
	return report, nil
}

// RevealPool shows the pool folder in the system file manager
func (r *Registry) RevealPool(ctx context.Context, category domain.Category, name string) error {
	if r.revealer == nil {
		return fmt.Errorf("%w: no file manager available", ErrNotSupported)
	}
	pool, err := r.Pool(ctx, category, name)
	if err != nil {
		return err
	}
	return r.revealer.Reveal(pool.Dir())
}

// Import bulk-loads pools into the index
func (r *Registry) Import(ctx context.Context, entries map[domain.Category]map[string]string) (*domain.ImportStats, error) {
	return r.index.Import(ctx, entries)
}
