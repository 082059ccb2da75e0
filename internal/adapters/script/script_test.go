package script

import (
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendervault/internal/domain"
)

func TestRenderArgs(t *testing.T) {
	settings := RenderSettings{
		CurrentPool: "Rocks",
		Renderer:    domain.RendererVRay,
		Scene:       "/scenes/shaderball.mb",
		Object:      "shaderball_object",
		Camera:      "render_cam",
		ResolutionX: 350,
		ResolutionY: 350,
	}

	args, err := RenderArgs("/scripts/render_manager.py", "/logs/2026-10-14.log", "/p/MaterialPool", true, settings)
	require.NoError(t, err)
	require.Len(t, args, 5)
	assert.Equal(t, []string{"/scripts/render_manager.py", "/logs/2026-10-14.log", "/p/MaterialPool", "True"}, args[:4])

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(args[4]), &got))
	assert.Equal(t, float64(1), got["material_renderer"])
	assert.Equal(t, "render_cam", got["render_cam"])
	assert.Equal(t, float64(350), got["render_resolution_y"])

	args, err = RenderArgs("/scripts/render_manager.py", "log", "/p", false, settings)
	require.NoError(t, err)
	assert.Equal(t, "False", args[3])

	_, err = RenderArgs("", "log", "/p", false, settings)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = RenderArgs("s.py", "log", "", false, settings)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRepathArgs(t *testing.T) {
	tests := []struct {
		name      string
		materials []string
		model     string
		mode      RepathMode
		want      []string
	}{
		{
			name:      "material pool",
			materials: []string{"granite", "basalt"},
			mode:      RepathMaterials,
			want:      []string{"repath.py", "log", "/p", `["granite","basalt"]`, "None", "0"},
		},
		{
			name:  "single model",
			model: "/p/ModelPool/Models/crate.mb",
			mode:  RepathModel,
			want:  []string{"repath.py", "log", "/p", `[]`, "/p/ModelPool/Models/crate.mb", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepathArgs("repath.py", "log", "/p", tt.materials, tt.model, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := RepathArgs("", "log", "/p", nil, "", RepathMaterials)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestLogPath(t *testing.T) {
	now := time.Date(2026, 3, 9, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("/var/log/rv", "2026-03-09.log"), LogPath("/var/log/rv", now))
}

func TestRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	ctx := context.Background()
	r := NewRunner("sh", zerolog.Nop())

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, r.Run(ctx, []string{"-c", "echo rendering; echo done 1>&2"}))
	})

	t.Run("non-zero exit", func(t *testing.T) {
		err := r.Run(ctx, []string{"-c", "exit 3"})
		assert.ErrorIs(t, err, domain.ErrIOFailure)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := r.Run(cctx, []string{"-c", "sleep 5"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("no args", func(t *testing.T) {
		assert.ErrorIs(t, r.Run(ctx, nil), domain.ErrInvalidArgument)
	})
}

func TestRunner_MissingInterpreter(t *testing.T) {
	r := NewRunner("rendervault-no-such-interpreter", zerolog.Nop())
	err := r.Run(context.Background(), []string{"script.py"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = NewRunner("", zerolog.Nop()).Run(context.Background(), []string{"script.py"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
