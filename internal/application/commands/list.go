package commands

import (
	"context"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

// ListPoolsCommand lists the pools of one category
type ListPoolsCommand struct {
	reg      Registry
	Category domain.Category
}

// NewListPoolsCommand creates a new ListPoolsCommand
func NewListPoolsCommand(reg Registry, category domain.Category) *ListPoolsCommand {
	return &ListPoolsCommand{reg: reg, Category: category}
}

// Execute runs the list pools command
func (c *ListPoolsCommand) Execute(ctx context.Context) ([]domain.Pool, error) {
	return c.reg.ListPools(ctx, c.Category)
}

// ListAllPoolsCommand lists every category's pools
type ListAllPoolsCommand struct {
	reg Registry
}

// NewListAllPoolsCommand creates a new ListAllPoolsCommand
func NewListAllPoolsCommand(reg Registry) *ListAllPoolsCommand {
	return &ListAllPoolsCommand{reg: reg}
}

// Execute runs the list all pools command
func (c *ListAllPoolsCommand) Execute(ctx context.Context) (map[domain.Category][]domain.Pool, error) {
	return c.reg.AllPools(ctx)
}

// ListAssetsCommand lists the assets of a pool
type ListAssetsCommand struct {
	reg      Registry
	Category domain.Category
	Pool     string
}

// NewListAssetsCommand creates a new ListAssetsCommand
func NewListAssetsCommand(reg Registry, category domain.Category, pool string) *ListAssetsCommand {
	return &ListAssetsCommand{
		reg:      reg,
		Category: category,
		Pool:     pool,
	}
}

// Validate checks the pool name; the utility category needs none
func (c *ListAssetsCommand) Validate() error {
	if c.Category == domain.CategoryUtility {
		return nil
	}
	if err := application.ValidateCategory("category", c.Category, true); err != nil {
		return err
	}
	return application.ValidateRequired("poolName", c.Pool)
}

// Execute runs the list assets command
func (c *ListAssetsCommand) Execute(ctx context.Context) ([]domain.Asset, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.reg.Assets(ctx, c.Category, c.Pool)
}

// ListVersionsCommand lists the archived versions of an asset
type ListVersionsCommand struct {
	reg       Registry
	AssetPath string
}

// NewListVersionsCommand creates a new ListVersionsCommand
func NewListVersionsCommand(reg Registry, assetPath string) *ListVersionsCommand {
	return &ListVersionsCommand{reg: reg, AssetPath: assetPath}
}

// Execute runs the list versions command
func (c *ListVersionsCommand) Execute(ctx context.Context) ([]domain.ArchiveEntry, error) {
	if err := application.ValidateRequired("assetPath", c.AssetPath); err != nil {
		return nil, err
	}
	return c.reg.ArchivedVersions(c.AssetPath)
}
