package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Renderer identifies the renderer an asset was authored for
type Renderer int

const (
	RendererDefault Renderer = iota
	RendererVRay
	RendererArnold
	RendererRedshift
)

func (r Renderer) String() string {
	switch r {
	case RendererVRay:
		return "vray"
	case RendererArnold:
		return "arnold"
	case RendererRedshift:
		return "redshift"
	default:
		return "default"
	}
}

// ParseRenderer accepts a renderer name or its numeric value
func ParseRenderer(s string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "0":
		return RendererDefault, nil
	case "vray", "v-ray", "1":
		return RendererVRay, nil
	case "arnold", "2":
		return RendererArnold, nil
	case "redshift", "3":
		return RendererRedshift, nil
	}
	return RendererDefault, fmt.Errorf("%w: unknown renderer %q", ErrInvalidArgument, s)
}

// Tags is a set-like list of tag strings.
// It decodes from a JSON array, an empty string, or a comma-separated string.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler
func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = normalizeTags(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tags must be a list or a string: %w", err)
	}
	*t = normalizeTags(strings.Split(s, ","))
	return nil
}

// MarshalJSON always writes a list, never null
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// Has reports whether the tag is present
func (t Tags) Has(tag string) bool {
	return slices.Contains(t, strings.TrimSpace(tag))
}

// Add returns the tags with tag appended if absent
func (t Tags) Add(tag string) Tags {
	tag = strings.TrimSpace(tag)
	if tag == "" || t.Has(tag) {
		return t
	}
	return append(t, tag)
}

// Remove returns the tags without tag
func (t Tags) Remove(tag string) Tags {
	tag = strings.TrimSpace(tag)
	return slices.DeleteFunc(slices.Clone(t), func(s string) bool { return s == tag })
}

func normalizeTags(in []string) Tags {
	out := Tags{}
	for _, s := range in {
		out = out.Add(s)
	}
	return out
}

// Metadata is the JSON sidecar stored next to each asset
type Metadata struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Size      string `json:"size"`
	Path      string `json:"path"`
	Renderer  string `json:"renderer"`
	Tags      Tags   `json:"tags"`
	Notes     string `json:"notes"`
}

// DefaultMetadata returns the record written on first access
func DefaultMetadata() Metadata {
	return Metadata{Tags: Tags{}}
}
