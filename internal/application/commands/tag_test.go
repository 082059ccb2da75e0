package commands

import (
	"context"
	"testing"
)

func TestTagAssetCommand(t *testing.T) {
	reg := newFakeRegistry()
	path := "/p/MaterialPool/Materials/granite.mb"

	if err := (&TagAssetCommand{AssetPath: path, Tag: "a,b"}).Validate(); err == nil {
		t.Error("expected error for comma in tag")
	}

	result, err := NewTagAssetCommand(reg, path, " stone ", false).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != `Tagged granite with "stone"` {
		t.Errorf("unexpected message %q", result.Message)
	}
	if !result.Metadata.Tags.Has("stone") {
		t.Errorf("expected stone tag, got %v", result.Metadata.Tags)
	}

	result, err = NewTagAssetCommand(reg, path, "stone", true).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Metadata.Tags.Has("stone") {
		t.Errorf("expected stone tag removed, got %v", result.Metadata.Tags)
	}
}

func TestSetNotesCommand(t *testing.T) {
	reg := newFakeRegistry()

	if _, err := NewSetNotesCommand(reg, "", "x").Execute(context.Background()); err == nil {
		t.Error("expected error for empty path")
	}

	result, err := NewSetNotesCommand(reg, "/p/MaterialPool/Materials/granite.mb", "rough").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Metadata.Notes != "rough" {
		t.Errorf("expected notes rough, got %q", result.Metadata.Notes)
	}
}
