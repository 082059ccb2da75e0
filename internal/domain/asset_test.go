package domain

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		stem   string
		want   int
		wantOK bool
	}{
		{"granite_001", 1, true},
		{"granite_042", 42, true},
		{"rough_granite_007", 7, true},
		{"granite_1000", 1000, true},
		{"granite", 0, false},
		{"granite_", 0, false},
		{"granite_v2", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			got, ok := ParseVersion(tt.stem)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseVersion(%q) = %d, %v; want %d, %v", tt.stem, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{"empty", nil, 1},
		{"contiguous", []string{"g_001", "g_002"}, 3},
		{"gaps use max", []string{"g_001", "g_007", "g_003"}, 8},
		{"ignores junk", []string{"notes", "g_002"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextVersion(tt.existing); got != tt.want {
				t.Errorf("NextVersion(%v) = %d, want %d", tt.existing, got, tt.want)
			}
		})
	}
}

func TestArchiveStem(t *testing.T) {
	if got := ArchiveStem("granite", 2); got != "granite_002" {
		t.Errorf("ArchiveStem = %s, want granite_002", got)
	}
	e := ArchiveEntry{Stem: "granite", Version: 12}
	if got := e.Label(); got != "granite_012" {
		t.Errorf("Label = %s, want granite_012", got)
	}
}

func TestSiblingPaths(t *testing.T) {
	asset := filepath.Join("proj", "MaterialPool", "Materials", "granite.mb")

	if got, want := Stem(asset), "granite"; got != want {
		t.Errorf("Stem = %s, want %s", got, want)
	}
	if got, want := MetadataPath(asset), filepath.Join("proj", "MaterialPool", "Metadata", "granite.json"); got != want {
		t.Errorf("MetadataPath = %s, want %s", got, want)
	}
	if got, want := ThumbnailPath(asset), filepath.Join("proj", "MaterialPool", "Thumbnails", "granite.jpg"); got != want {
		t.Errorf("ThumbnailPath = %s, want %s", got, want)
	}
}

func TestTags_UnmarshalLenient(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{"array", `["stone","rough"]`, []string{"stone", "rough"}},
		{"empty string", `""`, []string{}},
		{"comma string", `"stone, rough ,stone"`, []string{"stone", "rough"}},
		{"duplicates in array", `["a","a","b"]`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags Tags
			if err := json.Unmarshal([]byte(tt.json), &tags); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if strings.Join(tags, "|") != strings.Join(tt.want, "|") || len(tags) != len(tt.want) {
				t.Errorf("got %v, want %v", tags, tt.want)
			}
		})
	}

	var tags Tags
	if err := json.Unmarshal([]byte(`42`), &tags); err == nil {
		t.Error("expected error for numeric tags")
	}
}

func TestTags_MarshalNilAsList(t *testing.T) {
	data, err := json.Marshal(Metadata{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"tags":[]`) {
		t.Errorf("expected empty tag list in %s", data)
	}
}

func TestTags_AddRemove(t *testing.T) {
	tags := Tags{}.Add("stone").Add("stone").Add(" rough ")
	if len(tags) != 2 || !tags.Has("rough") {
		t.Fatalf("unexpected tags %v", tags)
	}
	removed := tags.Remove("stone")
	if removed.Has("stone") || !tags.Has("stone") {
		t.Errorf("Remove should not mutate the receiver: %v / %v", tags, removed)
	}
}

func TestParseRenderer(t *testing.T) {
	for in, want := range map[string]Renderer{
		"": RendererDefault, "VRay": RendererVRay, "2": RendererArnold, "redshift": RendererRedshift,
	} {
		got, err := ParseRenderer(in)
		if err != nil || got != want {
			t.Errorf("ParseRenderer(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseRenderer("cycles"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPathError_Is(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewPathError("create folder", "/x", ErrIOFailure, cause)

	if !errors.Is(err, ErrIOFailure) {
		t.Error("expected errors.Is(err, ErrIOFailure)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("unexpected ErrNotFound match")
	}
	if !strings.Contains(err.Error(), "create folder /x") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
