package commands

import (
	"context"
	"fmt"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

// CreatePoolResult contains the result of creating a pool
type CreatePoolResult struct {
	Pool    domain.Pool
	Message string
}

// CreatePoolCommand scaffolds and indexes a new pool
type CreatePoolCommand struct {
	reg      Registry
	Category domain.Category
	Name     string
	Root     string
}

// NewCreatePoolCommand creates a new CreatePoolCommand
func NewCreatePoolCommand(reg Registry, category domain.Category, name, root string) *CreatePoolCommand {
	return &CreatePoolCommand{
		reg:      reg,
		Category: category,
		Name:     name,
		Root:     root,
	}
}

// Validate checks if the create operation is valid
func (c *CreatePoolCommand) Validate() error {
	if c.Category == domain.CategoryUtility {
		return &application.UnsupportedError{Category: c.Category, Op: "create pool"}
	}
	if err := application.ValidateCategory("category", c.Category, true); err != nil {
		return err
	}
	if err := application.ValidatePoolName("poolName", c.Name); err != nil {
		return err
	}
	return application.ValidateRequired("poolRoot", c.Root)
}

// Execute runs the create pool command
func (c *CreatePoolCommand) Execute(ctx context.Context) (*CreatePoolResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	pool, err := c.reg.CreatePool(ctx, c.Category, c.Name, c.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	return &CreatePoolResult{
		Pool:    pool,
		Message: fmt.Sprintf("Created %s pool %q at %s", pool.Category, pool.Name, pool.Dir()),
	}, nil
}
