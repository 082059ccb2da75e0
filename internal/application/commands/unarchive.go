package commands

import (
	"context"
	"fmt"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

// RestoreVersionResult contains the result of restoring an archived version
type RestoreVersionResult struct {
	Entry   *domain.ArchiveEntry
	Message string
}

// RestoreVersionCommand copies an archived version back over its asset
type RestoreVersionCommand struct {
	reg         Registry
	Category    domain.Category
	AssetPath   string
	Version     int
	KeepCurrent bool // archive the current file before overwriting it
}

// NewRestoreVersionCommand creates a new RestoreVersionCommand
func NewRestoreVersionCommand(reg Registry, category domain.Category, assetPath string, version int) *RestoreVersionCommand {
	return &RestoreVersionCommand{
		reg:       reg,
		Category:  category,
		AssetPath: assetPath,
		Version:   version,
	}
}

// Validate checks if the restore operation is valid
func (c *RestoreVersionCommand) Validate() error {
	if err := application.ValidateRequired("assetPath", c.AssetPath); err != nil {
		return err
	}

	if c.Version < 1 {
		return &application.ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("version must be positive, got: %d", c.Version),
		}
	}

	l, err := domain.LayoutFor(c.Category)
	if err != nil {
		return &application.ValidationError{Field: "category", Message: err.Error()}
	}
	if !l.Archivable {
		return &application.UnsupportedError{Category: c.Category, Op: "restore version"}
	}
	return nil
}

// Execute runs the restore command
func (c *RestoreVersionCommand) Execute(ctx context.Context) (*RestoreVersionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.reg.RestoreVersion(c.Category, c.AssetPath, c.Version, c.KeepCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to restore version: %w", err)
	}

	return &RestoreVersionResult{
		Entry:   entry,
		Message: fmt.Sprintf("Restored %s from %s", domain.Stem(c.AssetPath), entry.Label()),
	}, nil
}
