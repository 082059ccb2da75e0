package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendervault/internal/domain"
)

func newTestRepo() *Repository {
	return NewRepository(zerolog.Nop())
}

// setupMaterialPool creates a material pool under a temp root
func setupMaterialPool(t *testing.T) (*Repository, string, domain.Layout) {
	t.Helper()

	root := t.TempDir()
	repo := newTestRepo()
	require.NoError(t, repo.CreatePoolLayout(domain.CategoryMaterial, root))

	l, err := domain.LayoutFor(domain.CategoryMaterial)
	require.NoError(t, err)
	return repo, root, l
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be gone", path)
}

func TestCreateFolder(t *testing.T) {
	repo := newTestRepo()
	root := t.TempDir()

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", domain.ErrInvalidArgument},
		{"existing path", root, domain.ErrAlreadyExists},
		{"missing parent", filepath.Join(root, "a", "b"), domain.ErrNotFound},
		{"one level", filepath.Join(root, "a"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CreateFolder(tt.path)
			if tt.want == nil {
				require.NoError(t, err)
				assert.DirExists(t, tt.path)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRemoveFolder(t *testing.T) {
	repo := newTestRepo()
	root := t.TempDir()
	dir := filepath.Join(root, "pool")
	writeFile(t, filepath.Join(dir, "nested", "file.txt"), "x")

	assert.ErrorIs(t, repo.RemoveFolder(""), domain.ErrInvalidArgument)
	assert.ErrorIs(t, repo.RemoveFolder(filepath.Join(root, "nope")), domain.ErrNotFound)

	require.NoError(t, repo.RemoveFolder(dir))
	assertMissing(t, dir)
}

func TestCreatePoolLayout_Material(t *testing.T) {
	_, root, _ := setupMaterialPool(t)

	for _, sub := range []string{"Materials", "Textures", "Thumbnails", "Metadata"} {
		assert.DirExists(t, filepath.Join(root, "MaterialPool", sub))
	}
	assertMissing(t, filepath.Join(root, "MaterialPool", "Archive"))
}

func TestCreatePoolLayout_EveryCategory(t *testing.T) {
	for _, c := range domain.PoolCategories() {
		t.Run(c.String(), func(t *testing.T) {
			root := t.TempDir()
			repo := newTestRepo()
			require.NoError(t, repo.CreatePoolLayout(c, root))

			l, _ := domain.LayoutFor(c)
			h := repo.CheckPoolLayout(c, root)
			assert.True(t, h.Healthy(), "missing: %v", h.Missing)
			assert.DirExists(t, l.AssetPath(root))
		})
	}
}

func TestCreatePoolLayout_ExistingPoolUnchanged(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	marker := filepath.Join(l.AssetPath(root), "granite.mb")
	writeFile(t, marker, "scene")
	require.NoError(t, os.Remove(l.Subdir(root, domain.DirMetadata)))

	err := repo.CreatePoolLayout(domain.CategoryMaterial, root)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Nothing was recreated or touched
	assert.FileExists(t, marker)
	assertMissing(t, l.Subdir(root, domain.DirMetadata))
}

func TestCreatePoolLayout_Utility(t *testing.T) {
	err := newTestRepo().CreatePoolLayout(domain.CategoryUtility, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotSupported)
}

func TestRemovePoolLayout(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	require.NoError(t, repo.RemovePoolLayout(domain.CategoryMaterial, root))
	assertMissing(t, l.PoolDir(root))
	assert.DirExists(t, root)

	assert.ErrorIs(t, repo.RemovePoolLayout(domain.CategoryMaterial, root), domain.ErrNotFound)
}

func TestCheckPoolLayout(t *testing.T) {
	repo, root, l := setupMaterialPool(t)
	require.NoError(t, os.Remove(l.Subdir(root, domain.DirThumbnails)))

	h := repo.CheckPoolLayout(domain.CategoryMaterial, root)
	assert.False(t, h.Healthy())
	assert.Equal(t, []string{l.Subdir(root, domain.DirThumbnails)}, h.Missing)

	h = repo.CheckPoolLayout(domain.CategoryMaterial, filepath.Join(root, "gone"))
	assert.True(t, h.RootMissing)
}

func TestEnumerate_PairsThumbnails(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	writeFile(t, filepath.Join(l.AssetPath(root), "granite.mb"), "12345")
	writeFile(t, filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite.png"), "png")

	assets, err := repo.Enumerate(domain.CategoryMaterial, root)
	require.NoError(t, err)
	require.Len(t, assets, 1)

	a := assets[0]
	assert.Equal(t, "granite", a.Stem)
	assert.Equal(t, filepath.Join(l.AssetPath(root), "granite.mb"), a.Path)
	assert.Equal(t, filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite.png"), a.ThumbnailPath)
	assert.Equal(t, int64(5), a.Size)
}

func TestEnumerate_LastThumbnailWins(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	writeFile(t, filepath.Join(l.AssetPath(root), "granite.mb"), "scene")
	writeFile(t, filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite.jpg"), "jpg")
	writeFile(t, filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite.png"), "png")

	assets, err := repo.Enumerate(domain.CategoryMaterial, root)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite.png"), assets[0].ThumbnailPath)
}

func TestEnumerate_SortedCaseInsensitive(t *testing.T) {
	repo, root, l := setupMaterialPool(t)
	dir := l.AssetPath(root)
	thumbs := l.Subdir(root, domain.DirThumbnails)

	for _, name := range []string{"zinc.mb", "Brick.MA", "asphalt.ma", "Marble.mb", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.mb"), 0o755))
	writeFile(t, filepath.Join(thumbs, "zinc.JPEG"), "x")
	writeFile(t, filepath.Join(thumbs, "Marble.jpg"), "x")
	writeFile(t, filepath.Join(thumbs, "asphalt.gif"), "x")

	assets, err := repo.Enumerate(domain.CategoryMaterial, root)
	require.NoError(t, err)

	var stems []string
	withThumb := map[string]bool{}
	for _, a := range assets {
		stems = append(stems, a.Stem)
		withThumb[a.Stem] = a.HasThumbnail()
	}
	assert.Equal(t, []string{"asphalt", "Brick", "Marble", "zinc"}, stems)
	assert.Equal(t, map[string]bool{"asphalt": false, "Brick": false, "Marble": true, "zinc": true}, withThumb)
}

func TestEnumerate_MissingDirectories(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	require.NoError(t, os.RemoveAll(l.Subdir(root, domain.DirThumbnails)))
	writeFile(t, filepath.Join(l.AssetPath(root), "granite.mb"), "x")

	assets, err := repo.Enumerate(domain.CategoryMaterial, root)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.False(t, assets[0].HasThumbnail())

	_, err = repo.Enumerate(domain.CategoryMaterial, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnumerate_Utility(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"setup.py", "rig.mb", "config.json", "readme.md"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}

	assets, err := newTestRepo().Enumerate(domain.CategoryUtility, dir)
	require.NoError(t, err)

	var names []string
	for _, a := range assets {
		names = append(names, filepath.Base(a.Path))
	}
	assert.Equal(t, []string{"config.json", "rig.mb", "setup.py"}, names)
}

func TestDeleteAsset_Cascade(t *testing.T) {
	root := t.TempDir()
	repo := newTestRepo()
	require.NoError(t, repo.CreatePoolLayout(domain.CategoryModel, root))
	l, _ := domain.LayoutFor(domain.CategoryModel)

	asset := filepath.Join(l.AssetPath(root), "granite.mb")
	thumb := filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite.png")
	texture := filepath.Join(l.Subdir(root, domain.DirTextures), "granite")
	meta := filepath.Join(l.Subdir(root, domain.DirMetadata), "granite.json")
	other := filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite_old.png")

	writeFile(t, asset, "scene")
	writeFile(t, thumb, "png")
	writeFile(t, filepath.Join(texture, "albedo.png"), "tex")
	writeFile(t, meta, "{}")
	writeFile(t, other, "png")

	archived, err := repo.ArchiveAsset(domain.CategoryModel, asset)
	require.NoError(t, err)

	report, err := repo.DeleteAsset(domain.CategoryModel, asset)
	require.NoError(t, err)

	var kinds []string
	for _, s := range report.Steps {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"thumbnail", "texture", "archive", "metadata", "asset"}, kinds)

	for _, p := range []string{asset, thumb, texture, meta, filepath.Dir(archived.Path)} {
		assertMissing(t, p)
	}
	assert.FileExists(t, other)

	assets, err := repo.Enumerate(domain.CategoryModel, root)
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestDeleteAsset_MaterialScenario(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	asset := filepath.Join(l.AssetPath(root), "granite.mb")
	thumb := filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite.png")
	meta := filepath.Join(l.Subdir(root, domain.DirMetadata), "granite.json")
	writeFile(t, asset, "scene")
	writeFile(t, thumb, "png")
	writeFile(t, meta, "{}")

	archived, err := repo.ArchiveAsset(domain.CategoryMaterial, asset)
	require.NoError(t, err)

	_, err = repo.DeleteAsset(domain.CategoryMaterial, asset)
	require.NoError(t, err)
	for _, p := range []string{asset, thumb, meta, archived.Path} {
		assertMissing(t, p)
	}

	// Second call has nothing left to do
	report, err := repo.DeleteAsset(domain.CategoryMaterial, asset)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, report)
}

// modelAssetFiles writes an asset with a thumbnail, texture folder, metadata
// and one archived version, returning every path it owns
func modelAssetFiles(t *testing.T, repo *Repository, root, stem string) []string {
	t.Helper()
	l, _ := domain.LayoutFor(domain.CategoryModel)

	asset := filepath.Join(l.AssetPath(root), stem+".mb")
	thumb := filepath.Join(l.Subdir(root, domain.DirThumbnails), stem+".png")
	texture := filepath.Join(l.Subdir(root, domain.DirTextures), stem)
	meta := filepath.Join(l.Subdir(root, domain.DirMetadata), stem+".json")

	writeFile(t, asset, "scene")
	writeFile(t, thumb, "png")
	writeFile(t, filepath.Join(texture, "albedo.png"), "tex")
	writeFile(t, meta, "{}")

	archived, err := repo.ArchiveAsset(domain.CategoryModel, asset)
	require.NoError(t, err)
	return []string{asset, thumb, texture, meta, filepath.Dir(archived.Path)}
}

func TestDeleteAsset_DottedStems(t *testing.T) {
	root := t.TempDir()
	repo := newTestRepo()
	require.NoError(t, repo.CreatePoolLayout(domain.CategoryModel, root))

	oak := modelAssetFiles(t, repo, root, "oak")
	oakWood := modelAssetFiles(t, repo, root, "oak.wood")

	report, err := repo.DeleteAsset(domain.CategoryModel, oak[0])
	require.NoError(t, err)
	assert.Len(t, report.Steps, 5)
	for _, p := range oak {
		assertMissing(t, p)
	}
	for _, p := range oakWood {
		_, err := os.Stat(p)
		assert.NoError(t, err, "oak.wood must survive deleting oak")
	}

	report, err = repo.DeleteAsset(domain.CategoryModel, oakWood[0])
	require.NoError(t, err)

	var kinds []string
	for _, s := range report.Steps {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"thumbnail", "texture", "archive", "metadata", "asset"}, kinds)
	for _, p := range oakWood {
		assertMissing(t, p)
	}
}

func TestDeleteAsset_StopsAtFirstFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	repo := newTestRepo()
	require.NoError(t, repo.CreatePoolLayout(domain.CategoryModel, root))
	l, _ := domain.LayoutFor(domain.CategoryModel)

	files := modelAssetFiles(t, repo, root, "granite")
	archiveDir := l.Subdir(root, domain.DirArchive)
	require.NoError(t, os.Chmod(archiveDir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(archiveDir, 0o755) })

	report, err := repo.DeleteAsset(domain.CategoryModel, files[0])
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIOFailure))

	require.NotNil(t, report)
	require.Len(t, report.Steps, 2)
	assert.Equal(t, "thumbnail", report.Steps[0].Kind)
	assert.Equal(t, "texture", report.Steps[1].Kind)

	assert.FileExists(t, files[0])
	assert.FileExists(t, files[3])
	assert.DirExists(t, files[4])
}

func TestDeleteAsset_LeavesStrayDirectories(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	asset := filepath.Join(l.AssetPath(root), "granite.mb")
	stray := filepath.Join(l.Subdir(root, domain.DirThumbnails), "granite")
	writeFile(t, asset, "scene")
	writeFile(t, filepath.Join(stray, "keep.png"), "png")

	report, err := repo.DeleteAsset(domain.CategoryMaterial, asset)
	require.NoError(t, err)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, "asset", report.Steps[0].Kind)
	assert.FileExists(t, filepath.Join(stray, "keep.png"))
}

func TestDeleteAsset_InvalidInput(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.DeleteAsset(domain.CategoryMaterial, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = repo.DeleteAsset(domain.CategoryUtility, "/x/y.py")
	assert.ErrorIs(t, err, domain.ErrNotSupported)
}

func TestArchiveAsset_Versions(t *testing.T) {
	repo, root, l := setupMaterialPool(t)
	asset := filepath.Join(l.AssetPath(root), "granite.mb")
	writeFile(t, asset, "scene v1")

	first, err := repo.ArchiveAsset(domain.CategoryMaterial, asset)
	require.NoError(t, err)
	second, err := repo.ArchiveAsset(domain.CategoryMaterial, asset)
	require.NoError(t, err)

	archiveDir := filepath.Join(l.Subdir(root, domain.DirArchive), "granite")
	assert.Equal(t, filepath.Join(archiveDir, "granite_001.mb"), first.Path)
	assert.Equal(t, filepath.Join(archiveDir, "granite_002.mb"), second.Path)

	data, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.Equal(t, "scene v1", string(data))

	// Source is untouched
	assert.FileExists(t, asset)
}

func TestArchiveAsset_ContinuesAfterHighestVersion(t *testing.T) {
	repo, root, l := setupMaterialPool(t)
	asset := filepath.Join(l.AssetPath(root), "my_rock.ma")
	writeFile(t, asset, "scene")

	archiveDir := filepath.Join(l.Subdir(root, domain.DirArchive), "my_rock")
	writeFile(t, filepath.Join(archiveDir, "my_rock_002.ma"), "old")
	writeFile(t, filepath.Join(archiveDir, "my_rock_007.ma"), "old")
	writeFile(t, filepath.Join(archiveDir, "notes.txt"), "ignored")

	for want := 8; want <= 10; want++ {
		entry, err := repo.ArchiveAsset(domain.CategoryMaterial, asset)
		require.NoError(t, err)
		assert.Equal(t, want, entry.Version)
		assert.Equal(t, domain.ArchiveStem("my_rock", want)+".ma", filepath.Base(entry.Path))
	}
}

func TestArchiveAsset_PreservesModTime(t *testing.T) {
	repo, root, l := setupMaterialPool(t)
	asset := filepath.Join(l.AssetPath(root), "granite.mb")
	writeFile(t, asset, "scene")

	past := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(asset, past, past))

	entry, err := repo.ArchiveAsset(domain.CategoryMaterial, asset)
	require.NoError(t, err)

	info, err := os.Stat(entry.Path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past))
}

func TestArchiveAsset_Concurrent(t *testing.T) {
	repo, root, l := setupMaterialPool(t)
	asset := filepath.Join(l.AssetPath(root), "granite.mb")
	writeFile(t, asset, "scene")

	const n = 8
	done := make(chan int, n)
	for i := 0; i < n; i++ {
		go func() {
			entry, err := repo.ArchiveAsset(domain.CategoryMaterial, asset)
			if err != nil {
				done <- -1
				return
			}
			done <- entry.Version
		}()
	}

	seen := map[int]bool{}
	for i := 0; i < n; i++ {
		v := <-done
		require.Positive(t, v)
		assert.False(t, seen[v], "version %d assigned twice", v)
		seen[v] = true
	}

	versions, err := repo.ArchivedVersions(asset)
	require.NoError(t, err)
	require.Len(t, versions, n)
	for i, v := range versions {
		assert.Equal(t, i+1, v.Version)
	}
}

func TestArchiveAsset_Errors(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	_, err := repo.ArchiveAsset(domain.CategoryHDRI, filepath.Join(root, "sky.hdr"))
	assert.ErrorIs(t, err, domain.ErrNotSupported)

	_, err = repo.ArchiveAsset(domain.CategoryMaterial, filepath.Join(l.AssetPath(root), "missing.mb"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchivedVersions_MissingArchive(t *testing.T) {
	repo, root, l := setupMaterialPool(t)

	versions, err := repo.ArchivedVersions(filepath.Join(l.AssetPath(root), "granite.mb"))
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestRestoreVersion(t *testing.T) {
	repo, root, l := setupMaterialPool(t)
	asset := filepath.Join(l.AssetPath(root), "granite.mb")
	writeFile(t, asset, "v1")

	_, err := repo.ArchiveAsset(domain.CategoryMaterial, asset)
	require.NoError(t, err)
	writeFile(t, asset, "v2")

	entry, err := repo.RestoreVersion(domain.CategoryMaterial, asset, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Version)

	data, err := os.ReadFile(asset)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
	assert.FileExists(t, entry.Path)

	_, err = repo.RestoreVersion(domain.CategoryMaterial, asset, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.RestoreVersion(domain.CategoryHDRI, asset, 1)
	assert.ErrorIs(t, err, domain.ErrNotSupported)
}
