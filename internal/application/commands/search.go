package commands

import (
	"context"
	"errors"
	"sort"
	"strings"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

// SearchResult is an asset matched by name, with a relevance score
type SearchResult struct {
	Pool  domain.Pool
	Asset domain.Asset
	Score int
}

// SearchCommand searches asset names across indexed pools with fuzzy matching.
// A zero Category searches every category.
type SearchCommand struct {
	reg      Registry
	Category domain.Category
	Query    string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(reg Registry, category domain.Category, query string) *SearchCommand {
	return &SearchCommand{
		reg:      reg,
		Category: category,
		Query:    query,
	}
}

// Execute runs the search command and returns scored, sorted results.
// Pools whose folders are missing are skipped.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	all, err := c.reg.AllPools(ctx)
	if err != nil {
		return nil, err
	}

	categories := domain.PoolCategories()
	if c.Category != domain.CategoryUnknown {
		categories = []domain.Category{c.Category}
	}

	var results []SearchResult
	for _, category := range categories {
		for _, pool := range all[category] {
			assets, err := c.reg.Assets(ctx, category, pool.Name)
			if errors.Is(err, application.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			for _, a := range assets {
				if score := FuzzyScore(a.Stem, c.Query); score > 0 {
					results = append(results, SearchResult{Pool: pool, Asset: a, Score: score})
				}
			}
		}
	}

	// Sort by score descending, then by name
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return strings.ToLower(results[i].Asset.Stem) < strings.ToLower(results[j].Asset.Stem)
	})

	return results, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && isSeparator(target[i-1]) {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '.' || b == '-' || b == '_'
}

// FilterByTagCommand lists the assets of a pool carrying a tag
type FilterByTagCommand struct {
	reg      Registry
	Category domain.Category
	Pool     string
	Tag      string
}

// NewFilterByTagCommand creates a new FilterByTagCommand
func NewFilterByTagCommand(reg Registry, category domain.Category, pool, tag string) *FilterByTagCommand {
	return &FilterByTagCommand{
		reg:      reg,
		Category: category,
		Pool:     pool,
		Tag:      tag,
	}
}

// Validate checks if the filter is valid
func (c *FilterByTagCommand) Validate() error {
	if err := application.ValidateCategory("category", c.Category, true); err != nil {
		return err
	}
	if err := application.ValidateRequired("poolName", c.Pool); err != nil {
		return err
	}
	return application.ValidateRequired("tag", c.Tag)
}

// Execute runs the filter command
func (c *FilterByTagCommand) Execute(ctx context.Context) ([]domain.Asset, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.reg.FilterByTag(ctx, c.Category, c.Pool, strings.TrimSpace(c.Tag))
}
