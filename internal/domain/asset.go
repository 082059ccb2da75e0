package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// VersionWidth is the zero-padded width of archive version numbers
const VersionWidth = 3

// Asset is a file in a pool's asset directory
type Asset struct {
	Stem          string // filename without extension
	Path          string
	Extension     string
	Size          int64
	ThumbnailPath string // empty when no thumbnail shares the stem
}

// HasThumbnail reports whether a thumbnail was paired with the asset
func (a Asset) HasThumbnail() bool {
	return a.ThumbnailPath != ""
}

// ArchiveEntry is one archived copy of an asset
type ArchiveEntry struct {
	Stem    string // asset stem, e.g., "granite"
	Version int
	Path    string // .../Archive/granite/granite_002.mb
}

// Label returns the entry file stem, e.g., "granite_002"
func (e ArchiveEntry) Label() string {
	return ArchiveStem(e.Stem, e.Version)
}

// DeleteStep is one completed removal during a cascade delete
type DeleteStep struct {
	Kind string // "thumbnail", "texture", "archive", "metadata", "asset"
	Path string
}

// DeleteReport lists the removals performed by a cascade delete
type DeleteReport struct {
	Asset string
	Steps []DeleteStep
}

// Stem returns a filename without directory and extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PoolDirOf returns the pool folder containing an asset (asset.parent.parent)
func PoolDirOf(assetPath string) string {
	return filepath.Dir(filepath.Dir(assetPath))
}

// SiblingDir returns a pool subdirectory next to the asset's directory
func SiblingDir(assetPath, name string) string {
	return filepath.Join(PoolDirOf(assetPath), name)
}

// MetadataPath returns the sidecar path of an asset
func MetadataPath(assetPath string) string {
	return filepath.Join(SiblingDir(assetPath, DirMetadata), Stem(assetPath)+".json")
}

// ThumbnailPath returns the JPEG thumbnail path generated for an asset
func ThumbnailPath(assetPath string) string {
	return filepath.Join(SiblingDir(assetPath, DirThumbnails), Stem(assetPath)+".jpg")
}

// FormatVersion zero-pads a version number (7 -> "007")
func FormatVersion(v int) string {
	return fmt.Sprintf("%0*d", VersionWidth, v)
}

// ArchiveStem returns the stem of an archived copy (granite, 2 -> granite_002)
func ArchiveStem(stem string, version int) string {
	return stem + "_" + FormatVersion(version)
}

// ParseVersion extracts the trailing _NNN segment of an archived file stem.
// ok is false when the segment is missing or not a number.
func ParseVersion(entryStem string) (int, bool) {
	i := strings.LastIndex(entryStem, "_")
	if i < 0 || i == len(entryStem)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(entryStem[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextVersion returns max(existing)+1, or 1 when there are none
func NextVersion(entryStems []string) int {
	highest := 0
	for _, s := range entryStems {
		if v, ok := ParseVersion(s); ok && v > highest {
			highest = v
		}
	}
	return highest + 1
}
