package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendervault/internal/domain"
)

func TestMetadataLoad_SelfHealing(t *testing.T) {
	store := NewMetadataStore(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "MaterialPool", "Metadata", "granite.json")

	m, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMetadata(), m)
	assert.FileExists(t, path)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	again, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, again)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMetadataLoad_LegacyAndPartial(t *testing.T) {
	store := NewMetadataStore(zerolog.Nop())
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    domain.Metadata
	}{
		{
			name:    "legacy empty tags",
			content: `{"name": "granite", "tags": "", "notes": "rough"}`,
			want:    domain.Metadata{Name: "granite", Tags: domain.Tags{}, Notes: "rough"},
		},
		{
			name:    "comma tags",
			content: `{"tags": "stone, grey"}`,
			want:    domain.Metadata{Tags: domain.Tags{"stone", "grey"}},
		},
		{
			name:    "unknown keys",
			content: `{"renderer": "vray", "rating": 5}`,
			want:    domain.Metadata{Renderer: "vray", Tags: domain.Tags{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, filepath.Base(t.Name())+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := store.Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataLoad_Corrupt(t *testing.T) {
	store := NewMetadataStore(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(path)
	assert.ErrorIs(t, err, domain.ErrIOFailure)
}

func TestMetadataSave_Overwrites(t *testing.T) {
	store := NewMetadataStore(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "granite.json")

	require.NoError(t, store.Save(path, domain.Metadata{Name: "granite", Tags: domain.Tags{"a"}, Notes: "first"}))
	require.NoError(t, store.Save(path, domain.Metadata{Name: "granite"}))

	got, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Metadata{Name: "granite", Tags: domain.Tags{}}, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"name\": \"granite\"")
	assert.Contains(t, string(data), `"tags": []`)
}

func TestMetadataTagged(t *testing.T) {
	store := NewMetadataStore(zerolog.Nop())
	dir := t.TempDir()

	require.NoError(t, store.Save(filepath.Join(dir, "granite.json"), domain.Metadata{Tags: domain.Tags{"stone", "grey"}}))
	require.NoError(t, store.Save(filepath.Join(dir, "basalt.json"), domain.Metadata{Tags: domain.Tags{"stone"}}))
	require.NoError(t, store.Save(filepath.Join(dir, "oak.json"), domain.Metadata{Tags: domain.Tags{"wood"}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("nope"), 0o644))

	stems, err := store.Tagged(dir, "stone")
	require.NoError(t, err)
	assert.Equal(t, []string{"basalt", "granite"}, stems)

	stems, err = store.Tagged(filepath.Join(dir, "missing"), "stone")
	require.NoError(t, err)
	assert.Empty(t, stems)

	_, err = store.Tagged(dir, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
