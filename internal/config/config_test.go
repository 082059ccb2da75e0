package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendervault/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultIndexPath(), cfg.IndexPath)
	assert.Equal(t, 350, cfg.ThumbnailSize)
	assert.Equal(t, 2, cfg.ThumbnailWorkers)
	assert.Equal(t, "hdri", cfg.ThumbnailTarget)
	assert.Equal(t, "mayapy", cfg.Render.Interpreter)
	assert.Equal(t, 350, cfg.Render.ResolutionX)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rendervault.yaml")
	content := `index_path: /srv/vault/index.db
thumbnail_size: 512
render:
  renderer: arnold
  resolution_x: 640
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("RENDERVAULT_THUMBNAIL_WORKERS", "6")
	t.Setenv("RENDERVAULT_RENDER_CAMERA", "persp")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/vault/index.db", cfg.IndexPath)
	assert.Equal(t, 512, cfg.ThumbnailSize)
	assert.Equal(t, 6, cfg.ThumbnailWorkers)
	assert.Equal(t, "arnold", cfg.Render.Renderer)
	assert.Equal(t, 640, cfg.Render.ResolutionX)
	assert.Equal(t, 350, cfg.Render.ResolutionY)
	assert.Equal(t, "persp", cfg.Render.Camera)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thumbnail_size: 0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "thumbnail_size")

	require.NoError(t, os.WriteFile(path, []byte("render:\n  renderer: cycles\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "render.renderer")

	require.NoError(t, os.WriteFile(path, []byte("thumbnail_category: textures\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "thumbnail_category")
}

func TestTypedAccessors(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	category, err := cfg.ThumbnailCategory()
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryHDRI, category)

	renderer, err := cfg.Render.RendererValue()
	require.NoError(t, err)
	assert.Equal(t, domain.RendererVRay, renderer)

	assert.Equal(t, filepath.Join(DataDir(), "logs"), cfg.LogDir())
	cfg.LogFile = "/var/log/rv/rendervault.log"
	assert.Equal(t, "/var/log/rv", cfg.LogDir())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "vault"), ExpandHome("~/vault"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
}
