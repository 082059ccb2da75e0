package commands

import (
	"context"
	"fmt"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

// ArchiveAssetResult contains the result of archiving an asset
type ArchiveAssetResult struct {
	Entry   *domain.ArchiveEntry
	Message string
}

// ArchiveAssetCommand copies an asset into its versioned archive
type ArchiveAssetCommand struct {
	reg       Registry
	Category  domain.Category
	AssetPath string
}

// NewArchiveAssetCommand creates a new ArchiveAssetCommand
func NewArchiveAssetCommand(reg Registry, category domain.Category, assetPath string) *ArchiveAssetCommand {
	return &ArchiveAssetCommand{
		reg:       reg,
		Category:  category,
		AssetPath: assetPath,
	}
}

// Validate checks if the asset can be archived
func (c *ArchiveAssetCommand) Validate() error {
	if err := application.ValidateRequired("assetPath", c.AssetPath); err != nil {
		return err
	}

	l, err := domain.LayoutFor(c.Category)
	if err != nil {
		return &application.ValidationError{Field: "category", Message: err.Error()}
	}
	if !l.Archivable {
		return &application.UnsupportedError{Category: c.Category, Op: "archive asset"}
	}
	return nil
}

// Execute runs the archive command
func (c *ArchiveAssetCommand) Execute(ctx context.Context) (*ArchiveAssetResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.reg.ArchiveAsset(c.Category, c.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to archive asset: %w", err)
	}

	return &ArchiveAssetResult{
		Entry:   entry,
		Message: fmt.Sprintf("Archived %s -> %s", domain.Stem(c.AssetPath), entry.Label()),
	}, nil
}
