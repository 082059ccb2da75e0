package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Category identifies a family of assets sharing one pool layout
type Category int

const (
	CategoryUnknown Category = iota
	CategoryMaterial
	CategoryModel
	CategoryHDRI
	CategoryLightset
	CategoryUtility
)

// Well-known pool subdirectory names
const (
	DirThumbnails = "Thumbnails"
	DirTextures   = "Textures"
	DirArchive    = "Archive"
	DirMetadata   = "Metadata"
)

// ThumbnailExtensions lists the image extensions paired with assets by stem
var ThumbnailExtensions = []string{".png", ".jpg", ".jpeg"}

// Layout describes the on-disk shape of a pool for one category
type Layout struct {
	Category    Category
	Name        string   // e.g., "Material"
	Table       string   // index table, e.g., "MATERIALS"
	PoolFolder  string   // e.g., "MaterialPool"
	AssetDir    string   // e.g., "Materials"
	Extensions  []string // lower-case, with leading dot
	Subdirs     []string // created in this order under PoolFolder
	DeleteDirs  []string // side directories removed on cascade delete
	Archivable  bool
	Indexed     bool // false for pseudo-categories with no pools
	HasTextures bool
}

var layouts = map[Category]Layout{
	CategoryMaterial: {
		Category:    CategoryMaterial,
		Name:        "Material",
		Table:       "MATERIALS",
		PoolFolder:  "MaterialPool",
		AssetDir:    "Materials",
		Extensions:  []string{".mb", ".ma"},
		Subdirs:     []string{"Materials", DirTextures, DirThumbnails, DirMetadata},
		DeleteDirs:  []string{DirThumbnails, DirTextures, DirArchive, DirMetadata},
		Archivable:  true,
		Indexed:     true,
		HasTextures: true,
	},
	CategoryModel: {
		Category:    CategoryModel,
		Name:        "Model",
		Table:       "MODELS",
		PoolFolder:  "ModelPool",
		AssetDir:    "Models",
		Extensions:  []string{".mb", ".ma", ".fbx", ".obj"},
		Subdirs:     []string{"Models", DirTextures, DirThumbnails, DirArchive, DirMetadata},
		DeleteDirs:  []string{DirThumbnails, DirTextures, DirArchive, DirMetadata},
		Archivable:  true,
		Indexed:     true,
		HasTextures: true,
	},
	CategoryHDRI: {
		Category:   CategoryHDRI,
		Name:       "HDRI",
		Table:      "HDRIS",
		PoolFolder: "HDRIPool",
		AssetDir:   "HDRIs",
		Extensions: []string{".hdr", ".exr"},
		Subdirs:    []string{"HDRIs", DirThumbnails, DirMetadata},
		DeleteDirs: []string{DirThumbnails, DirMetadata},
		Indexed:    true,
	},
	CategoryLightset: {
		Category:    CategoryLightset,
		Name:        "Lightset",
		Table:       "LIGHTSETS",
		PoolFolder:  "LightsetPool",
		AssetDir:    "Lightsets",
		Extensions:  []string{".mb", ".ma", ".fbx", ".obj"},
		Subdirs:     []string{"Lightsets", DirTextures, DirThumbnails, DirMetadata},
		DeleteDirs:  []string{DirThumbnails, DirArchive, DirMetadata},
		Archivable:  true,
		Indexed:     true,
		HasTextures: true,
	},
	CategoryUtility: {
		Category:   CategoryUtility,
		Name:       "Utility",
		Extensions: []string{".mb", ".ma", ".py", ".json"},
	},
}

// PoolCategories returns the indexed categories in their fixed order
func PoolCategories() []Category {
	return []Category{CategoryMaterial, CategoryModel, CategoryHDRI, CategoryLightset}
}

// LayoutFor returns the layout of a category
func LayoutFor(c Category) (Layout, error) {
	l, ok := layouts[c]
	if !ok {
		return Layout{}, fmt.Errorf("%w: unknown category %d", ErrInvalidArgument, int(c))
	}
	return l, nil
}

// String returns the display name of the category
func (c Category) String() string {
	if l, ok := layouts[c]; ok {
		return l.Name
	}
	return "unknown"
}

// Valid reports whether the category is one of the known categories
func (c Category) Valid() bool {
	_, ok := layouts[c]
	return ok
}

// ParseCategory accepts a category name, its plural, or its index table name
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range append(PoolCategories(), CategoryUtility) {
		l := layouts[c]
		name := strings.ToLower(l.Name)
		if s == name || s == name+"s" || s == strings.ToLower(l.Table) {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, s)
}

// PoolDir returns the pool folder under root (e.g., <root>/MaterialPool)
func (l Layout) PoolDir(root string) string {
	return filepath.Join(root, l.PoolFolder)
}

// AssetPath returns the asset subdirectory of the pool under root
func (l Layout) AssetPath(root string) string {
	return filepath.Join(root, l.PoolFolder, l.AssetDir)
}

// Subdir returns a named subdirectory of the pool under root
func (l Layout) Subdir(root, name string) string {
	return filepath.Join(root, l.PoolFolder, name)
}

// Accepts reports whether a filename has one of the category's extensions
func (l Layout) Accepts(name string) bool {
	return slices.Contains(l.Extensions, strings.ToLower(filepath.Ext(name)))
}

// IsThumbnail reports whether a filename has a recognized thumbnail extension
func IsThumbnail(name string) bool {
	return slices.Contains(ThumbnailExtensions, strings.ToLower(filepath.Ext(name)))
}
