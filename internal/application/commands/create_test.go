package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rendervault/internal/application"
	"rendervault/internal/domain"
)

func TestCreatePoolCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		pool     string
		root     string
		wantErr  error
		errMsg   string
	}{
		{
			name:     "valid material pool",
			category: domain.CategoryMaterial,
			pool:     "Rocks",
			root:     "/tmp/proj",
		},
		{
			name:     "empty name",
			category: domain.CategoryModel,
			pool:     "",
			root:     "/tmp/proj",
			wantErr:  application.ErrInvalidArgument,
			errMsg:   "pool name is required",
		},
		{
			name:     "empty root",
			category: domain.CategoryHDRI,
			pool:     "Skies",
			root:     "  ",
			wantErr:  application.ErrInvalidArgument,
			errMsg:   "pool root is required",
		},
		{
			name:     "utility category",
			category: domain.CategoryUtility,
			pool:     "Scripts",
			root:     "/tmp/proj",
			wantErr:  application.ErrNotSupported,
			errMsg:   "not supported",
		},
		{
			name:     "unknown category",
			category: domain.CategoryUnknown,
			pool:     "Rocks",
			root:     "/tmp/proj",
			wantErr:  application.ErrInvalidArgument,
			errMsg:   "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreatePoolCommand{
				Category: tt.category,
				Name:     tt.pool,
				Root:     tt.root,
			}
			err := cmd.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestCreatePoolCommand_Execute(t *testing.T) {
	reg := newFakeRegistry()
	cmd := NewCreatePoolCommand(reg, domain.CategoryMaterial, "Rocks", "/tmp/proj")

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Pool.Name != "Rocks" {
		t.Errorf("expected pool Rocks, got %s", result.Pool.Name)
	}
	if !strings.Contains(result.Message, "MaterialPool") {
		t.Errorf("expected message to name the pool folder, got %q", result.Message)
	}
	if len(reg.calls) != 1 || reg.calls[0] != "create Material Rocks /tmp/proj" {
		t.Errorf("unexpected calls: %v", reg.calls)
	}
}

func TestCreatePoolCommand_ExecuteWrapsError(t *testing.T) {
	reg := newFakeRegistry()
	reg.err = application.ErrAlreadyExists

	_, err := NewCreatePoolCommand(reg, domain.CategoryMaterial, "Rocks", "/tmp/proj").Execute(context.Background())
	if !errors.Is(err, application.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreatePoolCommand_InvalidNeverReachesRegistry(t *testing.T) {
	reg := newFakeRegistry()

	_, err := NewCreatePoolCommand(reg, domain.CategoryMaterial, "", "/tmp/proj").Execute(context.Background())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(reg.calls) != 0 {
		t.Errorf("registry should not be called, got %v", reg.calls)
	}
}

func TestDeletePoolCommand(t *testing.T) {
	reg := newFakeRegistry()

	if err := (&DeletePoolCommand{Category: domain.CategoryUtility, Name: "x"}).Validate(); !errors.Is(err, application.ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
	if err := (&DeletePoolCommand{Category: domain.CategoryModel}).Validate(); !errors.Is(err, application.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	result, err := NewDeletePoolCommand(reg, domain.CategoryModel, "Props").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != `Deleted Model pool "Props"` {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestDeleteAssetCommand(t *testing.T) {
	tests := []struct {
		name      string
		report    *domain.DeleteReport
		err       error
		wantErr   bool
		wantNil   bool
		wantInMsg string
	}{
		{
			name: "complete",
			report: &domain.DeleteReport{Steps: []domain.DeleteStep{
				{Kind: "thumbnail"}, {Kind: "metadata"}, {Kind: "asset"},
			}},
			wantInMsg: "Deleted granite and 2 related files",
		},
		{
			name:      "partial",
			report:    &domain.DeleteReport{Steps: []domain.DeleteStep{{Kind: "thumbnail"}}},
			err:       application.ErrIOFailure,
			wantErr:   true,
			wantInMsg: "Partially deleted granite (1 steps)",
		},
		{
			name:    "missing",
			err:     application.ErrNotFound,
			wantErr: true,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newFakeRegistry()
			reg.report = tt.report
			reg.err = tt.err

			result, err := NewDeleteAssetCommand(reg, domain.CategoryMaterial, "/p/MaterialPool/Materials/granite.mb").
				Execute(context.Background())

			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantNil {
				if result != nil {
					t.Errorf("expected nil result, got %+v", result)
				}
				return
			}
			if result.Message != tt.wantInMsg {
				t.Errorf("expected message %q, got %q", tt.wantInMsg, result.Message)
			}
		})
	}
}
