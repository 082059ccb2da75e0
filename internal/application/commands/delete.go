package commands

import (
	"context"
	"fmt"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

// DeletePoolResult contains the result of deleting a pool
type DeletePoolResult struct {
	Pool    domain.Pool
	Message string
}

// DeletePoolCommand removes a pool's folders and its index row
type DeletePoolCommand struct {
	reg      Registry
	Category domain.Category
	Name     string
}

// NewDeletePoolCommand creates a new DeletePoolCommand
func NewDeletePoolCommand(reg Registry, category domain.Category, name string) *DeletePoolCommand {
	return &DeletePoolCommand{
		reg:      reg,
		Category: category,
		Name:     name,
	}
}

// Validate checks if the delete operation is valid
func (c *DeletePoolCommand) Validate() error {
	if c.Category == domain.CategoryUtility {
		return &application.UnsupportedError{Category: c.Category, Op: "delete pool"}
	}
	if err := application.ValidateCategory("category", c.Category, true); err != nil {
		return err
	}
	return application.ValidateRequired("poolName", c.Name)
}

// Execute runs the delete pool command
func (c *DeletePoolCommand) Execute(ctx context.Context) (*DeletePoolResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	pool, err := c.reg.DeletePool(ctx, c.Category, c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to delete pool %s: %w", c.Name, err)
	}

	return &DeletePoolResult{
		Pool:    pool,
		Message: fmt.Sprintf("Deleted %s pool %q", pool.Category, pool.Name),
	}, nil
}

// DeleteAssetResult contains the result of deleting an asset
type DeleteAssetResult struct {
	Report  *domain.DeleteReport
	Message string
}

// DeleteAssetCommand deletes an asset and its satellite files
type DeleteAssetCommand struct {
	reg       Registry
	Category  domain.Category
	AssetPath string
}

// NewDeleteAssetCommand creates a new DeleteAssetCommand
func NewDeleteAssetCommand(reg Registry, category domain.Category, assetPath string) *DeleteAssetCommand {
	return &DeleteAssetCommand{
		reg:       reg,
		Category:  category,
		AssetPath: assetPath,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteAssetCommand) Validate() error {
	if c.Category == domain.CategoryUtility {
		return &application.UnsupportedError{Category: c.Category, Op: "delete asset"}
	}
	if err := application.ValidateCategory("category", c.Category, true); err != nil {
		return err
	}
	return application.ValidateRequired("assetPath", c.AssetPath)
}

// Execute runs the delete asset command. On a partial failure the
// result is still returned alongside the error.
func (c *DeleteAssetCommand) Execute(ctx context.Context) (*DeleteAssetResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	report, err := c.reg.DeleteAsset(c.Category, c.AssetPath)
	if err != nil {
		if report == nil {
			return nil, fmt.Errorf("failed to delete %s: %w", c.AssetPath, err)
		}
		return &DeleteAssetResult{
			Report:  report,
			Message: fmt.Sprintf("Partially deleted %s (%d steps)", domain.Stem(c.AssetPath), len(report.Steps)),
		}, fmt.Errorf("failed to delete %s: %w", c.AssetPath, err)
	}

	return &DeleteAssetResult{
		Report:  report,
		Message: fmt.Sprintf("Deleted %s and %d related files", domain.Stem(c.AssetPath), len(report.Steps)-1),
	}, nil
}
