package commands

import (
	"context"
	"fmt"
	"strings"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

// MetadataResult contains the sidecar after an update
type MetadataResult struct {
	Metadata domain.Metadata
	Message  string
}

// TagAssetCommand adds or removes a tag on an asset's sidecar
type TagAssetCommand struct {
	reg       Registry
	AssetPath string
	Tag       string
	Remove    bool
}

// NewTagAssetCommand creates a new TagAssetCommand
func NewTagAssetCommand(reg Registry, assetPath, tag string, remove bool) *TagAssetCommand {
	return &TagAssetCommand{
		reg:       reg,
		AssetPath: assetPath,
		Tag:       tag,
		Remove:    remove,
	}
}

// Validate checks if the tag operation is valid
func (c *TagAssetCommand) Validate() error {
	if err := application.ValidateRequired("assetPath", c.AssetPath); err != nil {
		return err
	}
	if err := application.ValidateRequired("tag", c.Tag); err != nil {
		return err
	}
	if strings.Contains(c.Tag, ",") {
		return &application.ValidationError{
			Field:   "tag",
			Message: fmt.Sprintf("tag must not contain commas, got: %s", c.Tag),
		}
	}
	return nil
}

// Execute runs the tag command
func (c *TagAssetCommand) Execute(ctx context.Context) (*MetadataResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tag := strings.TrimSpace(c.Tag)
	stem := domain.Stem(c.AssetPath)

	if c.Remove {
		m, err := c.reg.RemoveTag(c.AssetPath, tag)
		if err != nil {
			return nil, fmt.Errorf("failed to untag %s: %w", stem, err)
		}
		return &MetadataResult{Metadata: m, Message: fmt.Sprintf("Removed tag %q from %s", tag, stem)}, nil
	}

	m, err := c.reg.AddTag(c.AssetPath, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to tag %s: %w", stem, err)
	}
	return &MetadataResult{Metadata: m, Message: fmt.Sprintf("Tagged %s with %q", stem, tag)}, nil
}

// SetNotesCommand replaces the notes on an asset's sidecar
type SetNotesCommand struct {
	reg       Registry
	AssetPath string
	Notes     string
}

// NewSetNotesCommand creates a new SetNotesCommand
func NewSetNotesCommand(reg Registry, assetPath, notes string) *SetNotesCommand {
	return &SetNotesCommand{
		reg:       reg,
		AssetPath: assetPath,
		Notes:     notes,
	}
}

// Execute runs the set notes command
func (c *SetNotesCommand) Execute(ctx context.Context) (*MetadataResult, error) {
	if err := application.ValidateRequired("assetPath", c.AssetPath); err != nil {
		return nil, err
	}

	m, err := c.reg.SetNotes(c.AssetPath, c.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to set notes: %w", err)
	}
	return &MetadataResult{Metadata: m, Message: fmt.Sprintf("Updated notes for %s", domain.Stem(c.AssetPath))}, nil
}
