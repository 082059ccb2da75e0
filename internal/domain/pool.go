package domain

import "time"

// Pool is a named asset pool rooted at a directory
type Pool struct {
	Category Category
	Name     string // unique within its category
	Root     string // directory holding the <Category>Pool folder
}

// Dir returns the pool folder (e.g., <root>/MaterialPool)
func (p Pool) Dir() string {
	l, err := LayoutFor(p.Category)
	if err != nil {
		return p.Root
	}
	return l.PoolDir(p.Root)
}

// ImportStats holds statistics from a bulk index import
type ImportStats struct {
	Inserted int
	Skipped  int // duplicates already present
	Duration time.Duration
}

// PoolHealth describes a gap between the index and the filesystem
type PoolHealth struct {
	Pool        Pool
	Missing     []string // expected directories that do not exist
	RootMissing bool
}

// Healthy reports whether the pool layout is complete
func (h PoolHealth) Healthy() bool {
	return !h.RootMissing && len(h.Missing) == 0
}

// ReconcileReport lists indexed pools and their filesystem state
type ReconcileReport struct {
	Checked   int
	Unhealthy []PoolHealth
}
