package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"rendervault/internal/domain"
)

// Import inserts every entry in a single transaction.
// Names already indexed in their category are skipped and counted.
func (idx *Index) Import(ctx context.Context, entries map[domain.Category]map[string]string) (*domain.ImportStats, error) {
	start := time.Now()
	stats := &domain.ImportStats{}

	for category := range entries {
		if l, err := domain.LayoutFor(category); err != nil || !l.Indexed {
			return nil, fmt.Errorf("%w: cannot import pools for %s", domain.ErrInvalidArgument, category)
		}
	}

	tx, err := idx.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, category := range domain.PoolCategories() {
		pools, ok := entries[category]
		if !ok {
			continue
		}

		// Deterministic order keeps IDs stable across runs
		names := make([]string, 0, len(pools))
		for name := range pools {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			root := pools[name]
			if name == "" || root == "" {
				stats.Skipped++
				continue
			}

			exists, err := tx.Exists(category, name)
			if err != nil {
				return nil, idx.fail("import", category, name, err)
			}
			if exists {
				idx.log.Debug().Stringer("category", category).Str("name", name).Msg("skipping indexed pool")
				stats.Skipped++
				continue
			}

			if err := tx.Insert(category, name, root); err != nil {
				return nil, idx.fail("import", category, name, err)
			}
			stats.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, idx.fail("import", domain.CategoryUnknown, "", err)
	}

	stats.Duration = time.Since(start)
	idx.log.Info().Int("inserted", stats.Inserted).Int("skipped", stats.Skipped).Msg("imported pools")
	return stats, nil
}

// LoadImportFile reads a JSON document of the form
// {"materials": {"Rocks": "/proj"}, "models": {...}, ...}
func LoadImportFile(path string) (map[domain.Category]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewPathError("read import file", path, domain.ErrNotFound, err)
	}

	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewPathError("parse import file", path, domain.ErrInvalidArgument, err)
	}

	entries := make(map[domain.Category]map[string]string, len(raw))
	for key, pools := range raw {
		category, err := domain.ParseCategory(key)
		if err != nil {
			return nil, err
		}
		if entries[category] == nil {
			entries[category] = map[string]string{}
		}
		for name, root := range pools {
			entries[category][name] = root
		}
	}
	return entries, nil
}
