package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"rendervault/internal/domain"
	"rendervault/internal/logging"
	"rendervault/internal/ports"
)

// Repository implements ports.AssetStore using the filesystem
type Repository struct {
	log zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per asset path, guards archive versioning
}

// Ensure Repository implements AssetStore
var _ ports.AssetStore = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository(log zerolog.Logger) *Repository {
	return &Repository{
		log:   logging.Component(log, "store"),
		locks: make(map[string]*sync.Mutex),
	}
}

// CreateFolder creates exactly one directory level at path
func (r *Repository) CreateFolder(path string) error {
	if path == "" {
		r.log.Error().Msg("can't create folder, no path given")
		return domain.NewPathError("create folder", path, domain.ErrInvalidArgument, nil)
	}
	if _, err := os.Stat(path); err == nil {
		r.log.Error().Str("path", path).Msg("can't create folder, it already exists")
		return domain.NewPathError("create folder", path, domain.ErrAlreadyExists, nil)
	}

	if err := os.Mkdir(path, 0o755); err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("can't create folder")
		kind := domain.ErrIOFailure
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.ErrNotFound
		}
		return domain.NewPathError("create folder", path, kind, err)
	}

	r.log.Debug().Str("path", path).Msg("created folder")
	return nil
}

// RemoveFolder removes the directory tree at path
func (r *Repository) RemoveFolder(path string) error {
	if path == "" {
		r.log.Error().Msg("can't remove folder, no path given")
		return domain.NewPathError("remove folder", path, domain.ErrInvalidArgument, nil)
	}
	if _, err := os.Stat(path); err != nil {
		r.log.Error().Str("path", path).Msg("can't remove folder, it does not exist")
		return domain.NewPathError("remove folder", path, domain.ErrNotFound, nil)
	}

	if err := os.RemoveAll(path); err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("can't remove folder")
		return domain.NewPathError("remove folder", path, domain.ErrIOFailure, err)
	}

	r.log.Info().Str("path", path).Msg("removed folder")
	return nil
}

// CreatePoolLayout creates the pool folder under root and its subdirectories.
// Folders created before a failure are kept.
func (r *Repository) CreatePoolLayout(category domain.Category, root string) error {
	l, err := domain.LayoutFor(category)
	if err != nil {
		return err
	}
	if !l.Indexed {
		return fmt.Errorf("%w: %s has no pool layout", domain.ErrNotSupported, category)
	}
	if root == "" {
		return domain.NewPathError("create pool", root, domain.ErrInvalidArgument, nil)
	}

	if err := r.CreateFolder(l.PoolDir(root)); err != nil {
		return err
	}

	var errs []error
	for _, sub := range l.Subdirs {
		if err := r.CreateFolder(l.Subdir(root, sub)); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	r.log.Info().Stringer("category", category).Str("path", l.PoolDir(root)).Msg("created pool layout")
	return nil
}

// RemovePoolLayout removes the pool folder under root
func (r *Repository) RemovePoolLayout(category domain.Category, root string) error {
	l, err := domain.LayoutFor(category)
	if err != nil {
		return err
	}
	if !l.Indexed {
		return fmt.Errorf("%w: %s has no pool layout", domain.ErrNotSupported, category)
	}
	if root == "" {
		return domain.NewPathError("remove pool", root, domain.ErrInvalidArgument, nil)
	}
	return r.RemoveFolder(l.PoolDir(root))
}

// CheckPoolLayout reports which expected pool directories are missing
func (r *Repository) CheckPoolLayout(category domain.Category, root string) domain.PoolHealth {
	h := domain.PoolHealth{Pool: domain.Pool{Category: category, Root: root}}

	l, err := domain.LayoutFor(category)
	if err != nil || !l.Indexed {
		h.RootMissing = true
		return h
	}

	if !isDir(root) {
		h.RootMissing = true
		return h
	}

	expected := append([]string{l.PoolDir(root)}, subdirPaths(l, root)...)
	for _, dir := range expected {
		if !isDir(dir) {
			h.Missing = append(h.Missing, dir)
		}
	}
	return h
}

// Enumerate lists the assets of a pool paired with their thumbnails.
// For the utility category root is the built-in directory itself.
func (r *Repository) Enumerate(category domain.Category, root string) ([]domain.Asset, error) {
	l, err := domain.LayoutFor(category)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, domain.NewPathError("list assets", root, domain.ErrInvalidArgument, nil)
	}

	assetDir := root
	var thumbs map[string]string
	if l.Indexed {
		assetDir = l.AssetPath(root)
		thumbs = thumbnailIndex(l.Subdir(root, domain.DirThumbnails))
	}

	entries, err := os.ReadDir(assetDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Error().Str("path", assetDir).Msg("can't list assets, directory does not exist")
			return nil, domain.NewPathError("list assets", assetDir, domain.ErrNotFound, err)
		}
		r.log.Error().Err(err).Str("path", assetDir).Msg("can't list assets")
		return nil, domain.NewPathError("list assets", assetDir, domain.ErrIOFailure, err)
	}

	var assets []domain.Asset
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !l.Accepts(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}

		stem := domain.Stem(entry.Name())
		assets = append(assets, domain.Asset{
			Stem:          stem,
			Path:          filepath.Join(assetDir, entry.Name()),
			Extension:     filepath.Ext(entry.Name()),
			Size:          info.Size(),
			ThumbnailPath: thumbs[stem],
		})
	}

	sort.SliceStable(assets, func(i, j int) bool {
		a, b := filepath.Base(assets[i].Path), filepath.Base(assets[j].Path)
		if la, lb := strings.ToLower(a), strings.ToLower(b); la != lb {
			return la < lb
		}
		return a < b
	})

	return assets, nil
}

// DeleteAsset removes an asset and every stem-matching entry in its side
// directories: thumbnails, textures, archive, metadata, then the asset file.
// The first failure stops the batch; the report lists what was removed.
func (r *Repository) DeleteAsset(category domain.Category, assetPath string) (*domain.DeleteReport, error) {
	l, err := domain.LayoutFor(category)
	if err != nil {
		return nil, err
	}
	if !l.Indexed {
		return nil, fmt.Errorf("%w: can't delete %s assets", domain.ErrNotSupported, category)
	}
	if assetPath == "" {
		r.log.Error().Msg("can't delete asset, no path given")
		return nil, domain.NewPathError("delete asset", assetPath, domain.ErrInvalidArgument, nil)
	}

	info, err := os.Stat(assetPath)
	if err != nil {
		r.log.Error().Str("path", assetPath).Msg("can't delete asset, it does not exist")
		return nil, domain.NewPathError("delete asset", assetPath, domain.ErrNotFound, nil)
	}
	if info.IsDir() {
		return nil, domain.NewPathError("delete asset", assetPath, domain.ErrInvalidArgument, errors.New("is a directory"))
	}

	stem := domain.Stem(assetPath)
	report := &domain.DeleteReport{Asset: assetPath}

	var plan []domain.DeleteStep
	for _, dir := range l.DeleteDirs {
		matches, err := sideMatches(domain.SiblingDir(assetPath, dir), stem, isTreeDir(dir))
		if err != nil {
			r.log.Error().Err(err).Str("path", assetPath).Msg("can't delete asset, side directory unreadable")
			return report, domain.NewPathError("delete asset", assetPath, domain.ErrIOFailure, err)
		}
		for _, m := range matches {
			plan = append(plan, domain.DeleteStep{Kind: stepKind(dir), Path: m})
		}
	}
	plan = append(plan, domain.DeleteStep{Kind: "asset", Path: assetPath})

	for _, step := range plan {
		if err := removeStep(step); err != nil {
			r.log.Error().Err(err).Str("kind", step.Kind).Str("path", step.Path).
				Int("completed", len(report.Steps)).Msg("asset deletion stopped")
			return report, domain.NewPathError("delete "+step.Kind, step.Path, domain.ErrIOFailure, err)
		}
		report.Steps = append(report.Steps, step)
		r.log.Info().Str("kind", step.Kind).Str("path", step.Path).Msg("deleted")
	}

	return report, nil
}

// ArchiveAsset copies an asset to Archive/<stem>/<stem>_<NNN><ext>
// with NNN one above the highest existing version.
func (r *Repository) ArchiveAsset(category domain.Category, assetPath string) (*domain.ArchiveEntry, error) {
	l, err := domain.LayoutFor(category)
	if err != nil {
		return nil, err
	}
	if !l.Archivable {
		return nil, fmt.Errorf("%w: %s assets can't be archived", domain.ErrNotSupported, category)
	}
	if assetPath == "" {
		return nil, domain.NewPathError("archive asset", assetPath, domain.ErrInvalidArgument, nil)
	}

	info, err := os.Stat(assetPath)
	if err != nil || !info.Mode().IsRegular() {
		r.log.Error().Str("path", assetPath).Msg("can't archive asset, it does not exist")
		return nil, domain.NewPathError("archive asset", assetPath, domain.ErrNotFound, err)
	}

	lock := r.lockFor(assetPath)
	lock.Lock()
	defer lock.Unlock()

	stem := domain.Stem(assetPath)
	archiveRoot := filepath.Join(domain.SiblingDir(assetPath, domain.DirArchive), stem)
	if err := os.MkdirAll(archiveRoot, 0o755); err != nil {
		r.log.Error().Err(err).Str("path", archiveRoot).Msg("can't create archive directory")
		return nil, domain.NewPathError("create archive", archiveRoot, domain.ErrIOFailure, err)
	}

	entries, err := os.ReadDir(archiveRoot)
	if err != nil {
		return nil, domain.NewPathError("read archive", archiveRoot, domain.ErrIOFailure, err)
	}
	stems := make([]string, 0, len(entries))
	for _, e := range entries {
		stems = append(stems, domain.Stem(e.Name()))
	}

	version := domain.NextVersion(stems)
	dst := filepath.Join(archiveRoot, domain.ArchiveStem(stem, version)+filepath.Ext(assetPath))
	if err := copyFile(assetPath, dst, info); err != nil {
		r.log.Error().Err(err).Str("src", assetPath).Str("dst", dst).Msg("can't archive asset")
		return nil, domain.NewPathError("archive asset", assetPath, domain.ErrIOFailure, err)
	}

	r.log.Info().Str("src", assetPath).Str("dst", dst).Int("version", version).Msg("archived asset")
	return &domain.ArchiveEntry{Stem: stem, Version: version, Path: dst}, nil
}

// ArchivedVersions lists the archived copies of an asset sorted by version
func (r *Repository) ArchivedVersions(assetPath string) ([]domain.ArchiveEntry, error) {
	if assetPath == "" {
		return nil, domain.NewPathError("list archive", assetPath, domain.ErrInvalidArgument, nil)
	}

	stem := domain.Stem(assetPath)
	archiveRoot := filepath.Join(domain.SiblingDir(assetPath, domain.DirArchive), stem)

	entries, err := os.ReadDir(archiveRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.ArchiveEntry{}, nil
		}
		return nil, domain.NewPathError("list archive", archiveRoot, domain.ErrIOFailure, err)
	}

	versions := make([]domain.ArchiveEntry, 0, len(entries))
	for _, e := range entries {
		v, _ := domain.ParseVersion(domain.Stem(e.Name()))
		versions = append(versions, domain.ArchiveEntry{
			Stem:    stem,
			Version: v,
			Path:    filepath.Join(archiveRoot, e.Name()),
		})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].Version != versions[j].Version {
			return versions[i].Version < versions[j].Version
		}
		return versions[i].Path < versions[j].Path
	})
	return versions, nil
}

// RestoreVersion copies an archived version back over the asset file.
// The archive itself is left as is.
func (r *Repository) RestoreVersion(category domain.Category, assetPath string, version int) (*domain.ArchiveEntry, error) {
	l, err := domain.LayoutFor(category)
	if err != nil {
		return nil, err
	}
	if !l.Archivable {
		return nil, fmt.Errorf("%w: %s assets have no archive", domain.ErrNotSupported, category)
	}

	versions, err := r.ArchivedVersions(assetPath)
	if err != nil {
		return nil, err
	}

	var entry *domain.ArchiveEntry
	for i := range versions {
		if versions[i].Version == version {
			entry = &versions[i]
			break
		}
	}
	if entry == nil {
		return nil, domain.NewPathError("restore "+domain.ArchiveStem(domain.Stem(assetPath), version), assetPath, domain.ErrNotFound, nil)
	}

	info, err := os.Stat(entry.Path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, domain.NewPathError("restore asset", entry.Path, domain.ErrNotFound, err)
	}

	lock := r.lockFor(assetPath)
	lock.Lock()
	defer lock.Unlock()

	tmp := assetPath + ".restore"
	os.Remove(tmp)
	if err := copyFile(entry.Path, tmp, info); err != nil {
		r.log.Error().Err(err).Str("src", entry.Path).Str("dst", assetPath).Msg("can't restore asset")
		return nil, domain.NewPathError("restore asset", assetPath, domain.ErrIOFailure, err)
	}
	if err := os.Rename(tmp, assetPath); err != nil {
		os.Remove(tmp)
		return nil, domain.NewPathError("restore asset", assetPath, domain.ErrIOFailure, err)
	}

	r.log.Info().Str("src", entry.Path).Str("dst", assetPath).Int("version", version).Msg("restored asset")
	return entry, nil
}

func (r *Repository) lockFor(path string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := filepath.Clean(path)
	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	return m
}

// Helper functions

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func subdirPaths(l domain.Layout, root string) []string {
	paths := make([]string, 0, len(l.Subdirs))
	for _, sub := range l.Subdirs {
		paths = append(paths, l.Subdir(root, sub))
	}
	return paths
}

// thumbnailIndex maps stems to thumbnail files. A missing directory yields an empty map.
func thumbnailIndex(dir string) map[string]string {
	thumbs := make(map[string]string)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return thumbs
	}
	for _, e := range entries {
		if e.IsDir() || !domain.IsThumbnail(e.Name()) {
			continue
		}
		// Entries are name-sorted, so the last extension wins (.png over .jpg)
		thumbs[domain.Stem(e.Name())] = filepath.Join(dir, e.Name())
	}
	return thumbs
}

// sideMatches returns the entries of dir belonging to stem. Tree side
// directories hold one subdirectory named exactly stem; flat ones hold
// regular files whose stem equals stem. A missing directory has no matches.
func sideMatches(dir, stem string, tree bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var matches []string
	for _, e := range entries {
		if tree {
			if e.IsDir() && e.Name() == stem {
				matches = append(matches, filepath.Join(dir, e.Name()))
			}
			continue
		}
		if !e.IsDir() && domain.Stem(e.Name()) == stem {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	return matches, nil
}

// isTreeDir reports whether a side directory keeps one subdirectory per asset
func isTreeDir(dir string) bool {
	return dir == domain.DirTextures || dir == domain.DirArchive
}

// removeStep unlinks flat files and removes texture and archive trees
func removeStep(step domain.DeleteStep) error {
	switch step.Kind {
	case "texture", "archive":
		return os.RemoveAll(step.Path)
	default:
		return os.Remove(step.Path)
	}
}

func stepKind(dir string) string {
	switch dir {
	case domain.DirThumbnails:
		return "thumbnail"
	case domain.DirTextures:
		return "texture"
	case domain.DirArchive:
		return "archive"
	case domain.DirMetadata:
		return "metadata"
	default:
		return strings.ToLower(dir)
	}
}

// copyFile copies src to a new file dst keeping mode and modification time
func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
