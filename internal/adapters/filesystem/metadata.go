package filesystem

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"rendervault/internal/domain"
	"rendervault/internal/logging"
	"rendervault/internal/ports"
)

// MetadataStore implements ports.MetadataStore with JSON sidecar files
type MetadataStore struct {
	log zerolog.Logger
}

// Ensure MetadataStore implements ports.MetadataStore
var _ ports.MetadataStore = (*MetadataStore)(nil)

// NewMetadataStore creates a sidecar store
func NewMetadataStore(log zerolog.Logger) *MetadataStore {
	return &MetadataStore{log: logging.Component(log, "metadata")}
}

// Load reads the sidecar at path. A missing sidecar is created with
// default fields first, along with its Metadata directory.
func (s *MetadataStore) Load(path string) (domain.Metadata, error) {
	if path == "" {
		return domain.Metadata{}, domain.NewPathError("load metadata", path, domain.ErrInvalidArgument, nil)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			s.log.Error().Err(err).Str("path", path).Msg("can't create metadata directory")
			return domain.Metadata{}, domain.NewPathError("create metadata directory", filepath.Dir(path), domain.ErrIOFailure, err)
		}
		if err := s.Save(path, domain.DefaultMetadata()); err != nil {
			return domain.Metadata{}, err
		}
		s.log.Debug().Str("path", path).Msg("created default metadata")
	}

	m, err := readSidecar(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("can't read metadata")
		return domain.Metadata{}, domain.NewPathError("load metadata", path, domain.ErrIOFailure, err)
	}
	return m, nil
}

// Save overwrites the sidecar at path with indented JSON
func (s *MetadataStore) Save(path string, m domain.Metadata) error {
	if path == "" {
		return domain.NewPathError("save metadata", path, domain.ErrInvalidArgument, nil)
	}
	if m.Tags == nil {
		m.Tags = domain.Tags{}
	}

	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return domain.NewPathError("encode metadata", path, domain.ErrInvalidArgument, err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("can't write metadata")
		kind := domain.ErrIOFailure
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.ErrNotFound
		}
		return domain.NewPathError("save metadata", path, kind, err)
	}

	s.log.Debug().Str("path", path).Msg("saved metadata")
	return nil
}

// Tagged scans the sidecars in dir and returns the stems of those carrying tag.
// Unreadable sidecars are skipped; a missing directory yields no stems.
func (s *MetadataStore) Tagged(dir, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, domain.NewPathError("filter metadata", dir, domain.ErrInvalidArgument, errors.New("empty tag"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, domain.NewPathError("filter metadata", dir, domain.ErrIOFailure, err)
	}

	stems := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}

		path := filepath.Join(dir, e.Name())
		m, err := readSidecar(path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable metadata")
			continue
		}
		if m.Tags.Has(tag) {
			stems = append(stems, domain.Stem(e.Name()))
		}
	}

	sort.Strings(stems)
	return stems, nil
}

func readSidecar(path string) (domain.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Metadata{}, err
	}

	m := domain.DefaultMetadata()
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Metadata{}, err
	}
	if m.Tags == nil {
		m.Tags = domain.Tags{}
	}
	return m, nil
}
