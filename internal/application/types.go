package application

import "rendervault/internal/domain"

// Re-export categories for use by adapters
type Category = domain.Category

const (
	CategoryUnknown  = domain.CategoryUnknown
	CategoryMaterial = domain.CategoryMaterial
	CategoryModel    = domain.CategoryModel
	CategoryHDRI     = domain.CategoryHDRI
	CategoryLightset = domain.CategoryLightset
	CategoryUtility  = domain.CategoryUtility
)

// Re-export domain types for use by adapters
type (
	Pool            = domain.Pool
	Asset           = domain.Asset
	ArchiveEntry    = domain.ArchiveEntry
	DeleteReport    = domain.DeleteReport
	Metadata        = domain.Metadata
	Tags            = domain.Tags
	PoolHealth      = domain.PoolHealth
	ReconcileReport = domain.ReconcileReport
	ImportStats     = domain.ImportStats
)

// ParseCategory accepts a category name, its plural, or its index table name
func ParseCategory(s string) (Category, error) {
	return domain.ParseCategory(s)
}

// PoolCategories returns the categories that have pools, in display order
func PoolCategories() []Category {
	return domain.PoolCategories()
}
