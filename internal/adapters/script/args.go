package script

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"rendervault/internal/domain"
)

// RenderSettings is handed to the render script as a JSON argument
type RenderSettings struct {
	CurrentPool string          `json:"current_pool"`
	Renderer    domain.Renderer `json:"material_renderer"`
	Scene       string          `json:"render_scene"`
	Object      string          `json:"render_object"`
	Camera      string          `json:"render_cam"`
	ResolutionX int             `json:"render_resolution_x"`
	ResolutionY int             `json:"render_resolution_y"`
}

// RepathMode selects what the repath script collects textures for
type RepathMode int

const (
	// RepathMaterials processes the listed material stems of a material pool
	RepathMaterials RepathMode = iota
	// RepathModel processes the single model file
	RepathModel
)

// NoModel is passed as the model argument when repathing a material pool
const NoModel = "None"

// LogPath returns the dated log file the scripts append to
func LogPath(logDir string, now time.Time) string {
	return filepath.Join(logDir, now.Format("2006-01-02")+".log")
}

// RenderArgs builds: <script> <log_path> <pool_path> <single_mode> <settings_json>
func RenderArgs(script, logPath, poolPath string, single bool, settings RenderSettings) ([]string, error) {
	if script == "" {
		return nil, fmt.Errorf("%w: render script not configured", domain.ErrInvalidArgument)
	}
	if poolPath == "" {
		return nil, fmt.Errorf("%w: pool path is empty", domain.ErrInvalidArgument)
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render settings: %w", err)
	}
	return []string{script, logPath, poolPath, pyBool(single), string(data)}, nil
}

// RepathArgs builds: <script> <log_path> <pool_path> <materials_list> <model> <mode>
func RepathArgs(script, logPath, poolPath string, materials []string, model string, mode RepathMode) ([]string, error) {
	if script == "" {
		return nil, fmt.Errorf("%w: repath script not configured", domain.ErrInvalidArgument)
	}
	if poolPath == "" {
		return nil, fmt.Errorf("%w: pool path is empty", domain.ErrInvalidArgument)
	}
	if materials == nil {
		materials = []string{}
	}
	if model == "" {
		model = NoModel
	}
	data, err := json.Marshal(materials)
	if err != nil {
		return nil, fmt.Errorf("failed to encode material list: %w", err)
	}
	return []string{script, logPath, poolPath, string(data), model, fmt.Sprint(int(mode))}, nil
}

// the scripts parse their flags with the host's bool literals
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
