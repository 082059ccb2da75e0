package commands

import (
	"context"
	"testing"

	"rendervault/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "granite",
			query:     "granite",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "granite_rough",
			query:     "granite",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "red_granite",
			query:     "granite",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "granite",
			query:   "gra",
			wantMin: 100, // should be high due to prefix
		},
		{
			name:      "no match",
			target:    "granite",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "granite",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "GRANITE",
			query:   "granite",
			wantMin: 100,
		},
		{
			name:    "after underscore",
			target:  "wood_oak_planks",
			query:   "wop",
			wantMin: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	// Test that better matches score higher
	query := "granite"

	exactScore := FuzzyScore("granite", query)
	prefixScore := FuzzyScore("granite tiles", query)
	containsScore := FuzzyScore("red granite", query)
	fuzzyScore := FuzzyScore("g.r.a.n.i.t.e", query)

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestSearchCommand(t *testing.T) {
	reg := newFakeRegistry()
	reg.pools[domain.CategoryMaterial] = []domain.Pool{
		{Category: domain.CategoryMaterial, Name: "Rocks"},
		{Category: domain.CategoryMaterial, Name: "Gone"},
	}
	reg.pools[domain.CategoryModel] = []domain.Pool{{Category: domain.CategoryModel, Name: "Props"}}
	reg.assets["Rocks"] = []domain.Asset{{Stem: "red_granite"}, {Stem: "basalt"}, {Stem: "granite"}}
	reg.assets["Props"] = []domain.Asset{{Stem: "granite_bench"}}

	results, err := NewSearchCommand(reg, domain.CategoryUnknown, "granite").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var stems []string
	for _, r := range results {
		stems = append(stems, r.Asset.Stem)
	}
	want := []string{"granite", "granite_bench", "red_granite"}
	if len(stems) != len(want) {
		t.Fatalf("expected %v, got %v", want, stems)
	}
	for i := range want {
		if stems[i] != want[i] {
			t.Errorf("result %d: expected %s, got %s", i, want[i], stems[i])
		}
	}

	// Narrowed to one category
	results, err = NewSearchCommand(reg, domain.CategoryModel, "granite").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 1 || results[0].Pool.Name != "Props" {
		t.Errorf("expected only the Props match, got %+v", results)
	}

	// Short queries return nothing
	results, _ = NewSearchCommand(reg, domain.CategoryUnknown, "g").Execute(context.Background())
	if results != nil {
		t.Errorf("expected nil for short query, got %v", results)
	}
}

func TestFilterByTagCommand(t *testing.T) {
	reg := newFakeRegistry()
	reg.assets["Rocks"] = []domain.Asset{{Stem: "granite", Path: "/g.mb"}, {Stem: "oak", Path: "/o.mb"}}
	reg.tags["/g.mb"] = domain.Tags{"stone"}

	if err := (&FilterByTagCommand{Category: domain.CategoryMaterial, Pool: "Rocks"}).Validate(); err == nil {
		t.Error("expected error for empty tag")
	}

	assets, err := NewFilterByTagCommand(reg, domain.CategoryMaterial, "Rocks", " stone ").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(assets) != 1 || assets[0].Stem != "granite" {
		t.Errorf("expected granite, got %+v", assets)
	}
}
