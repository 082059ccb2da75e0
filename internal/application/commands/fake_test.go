package commands

import (
	"context"
	"fmt"

	"rendervault/internal/domain"
)

// fakeRegistry records calls and serves canned pools and assets
type fakeRegistry struct {
	pools  map[domain.Category][]domain.Pool
	assets map[string][]domain.Asset // by pool name
	tags   map[string]domain.Tags    // by asset path
	calls  []string
	err    error
	report *domain.DeleteReport
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		pools:  map[domain.Category][]domain.Pool{},
		assets: map[string][]domain.Asset{},
		tags:   map[string]domain.Tags{},
	}
}

func (f *fakeRegistry) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeRegistry) CreatePool(_ context.Context, c domain.Category, name, root string) (domain.Pool, error) {
	f.record("create %s %s %s", c, name, root)
	if f.err != nil {
		return domain.Pool{}, f.err
	}
	return domain.Pool{Category: c, Name: name, Root: root}, nil
}

func (f *fakeRegistry) DeletePool(_ context.Context, c domain.Category, name string) (domain.Pool, error) {
	f.record("delete %s %s", c, name)
	if f.err != nil {
		return domain.Pool{}, f.err
	}
	return domain.Pool{Category: c, Name: name, Root: "/r"}, nil
}

func (f *fakeRegistry) ListPools(_ context.Context, c domain.Category) ([]domain.Pool, error) {
	return f.pools[c], f.err
}

func (f *fakeRegistry) AllPools(context.Context) (map[domain.Category][]domain.Pool, error) {
	return f.pools, f.err
}

func (f *fakeRegistry) Assets(_ context.Context, _ domain.Category, name string) ([]domain.Asset, error) {
	assets, ok := f.assets[name]
	if !ok {
		return nil, fmt.Errorf("%w: pool %s", domain.ErrNotFound, name)
	}
	return assets, nil
}

func (f *fakeRegistry) FindAsset(ctx context.Context, c domain.Category, pool, stem string) (domain.Asset, error) {
	assets, err := f.Assets(ctx, c, pool)
	if err != nil {
		return domain.Asset{}, err
	}
	for _, a := range assets {
		if a.Stem == stem {
			return a, nil
		}
	}
	return domain.Asset{}, domain.ErrNotFound
}

func (f *fakeRegistry) DeleteAsset(c domain.Category, path string) (*domain.DeleteReport, error) {
	f.record("delete asset %s", path)
	return f.report, f.err
}

func (f *fakeRegistry) ArchiveAsset(c domain.Category, path string) (*domain.ArchiveEntry, error) {
	f.record("archive %s", path)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ArchiveEntry{Stem: domain.Stem(path), Version: 3, Path: "/a/" + domain.ArchiveStem(domain.Stem(path), 3)}, nil
}

func (f *fakeRegistry) ArchivedVersions(path string) ([]domain.ArchiveEntry, error) {
	return nil, f.err
}

func (f *fakeRegistry) RestoreVersion(c domain.Category, path string, version int, keep bool) (*domain.ArchiveEntry, error) {
	f.record("restore %s %d %t", path, version, keep)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ArchiveEntry{Stem: domain.Stem(path), Version: version}, nil
}

func (f *fakeRegistry) AddTag(path, tag string) (domain.Metadata, error) {
	f.tags[path] = f.tags[path].Add(tag)
	return domain.Metadata{Tags: f.tags[path]}, f.err
}

func (f *fakeRegistry) RemoveTag(path, tag string) (domain.Metadata, error) {
	f.tags[path] = f.tags[path].Remove(tag)
	return domain.Metadata{Tags: f.tags[path]}, f.err
}

func (f *fakeRegistry) SetNotes(path, notes string) (domain.Metadata, error) {
	f.record("notes %s %s", path, notes)
	return domain.Metadata{Notes: notes}, f.err
}

func (f *fakeRegistry) FilterByTag(_ context.Context, _ domain.Category, name, tag string) ([]domain.Asset, error) {
	var out []domain.Asset
	for _, a := range f.assets[name] {
		if f.tags[a.Path].Has(tag) {
			out = append(out, a)
		}
	}
	return out, f.err
}
