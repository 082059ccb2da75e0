package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"rendervault/internal/domain"
)

// EnvPrefix is the prefix of environment overrides (RENDERVAULT_INDEX_PATH, ...)
const EnvPrefix = "RENDERVAULT"

// Config holds every tunable of the vault
type Config struct {
	IndexPath        string       `mapstructure:"index_path"`
	LogLevel         string       `mapstructure:"log_level"`
	LogFile          string       `mapstructure:"log_file"`
	UtilityDir       string       `mapstructure:"utility_dir"`
	ThumbnailSize    int          `mapstructure:"thumbnail_size"`
	ThumbnailWorkers int          `mapstructure:"thumbnail_workers"`
	ThumbnailTarget  string       `mapstructure:"thumbnail_category"`
	Render           RenderConfig `mapstructure:"render"`
}

// RenderConfig configures the out-of-process render and repath scripts
type RenderConfig struct {
	Interpreter  string `mapstructure:"interpreter"`
	RenderScript string `mapstructure:"render_script"`
	RepathScript string `mapstructure:"repath_script"`
	Renderer     string `mapstructure:"renderer"`
	Scene        string `mapstructure:"scene"`
	Camera       string `mapstructure:"camera"`
	Object       string `mapstructure:"object"`
	ResolutionX  int    `mapstructure:"resolution_x"`
	ResolutionY  int    `mapstructure:"resolution_y"`
}

// DataDir returns the XDG data directory for the vault
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "rendervault")
}

// DefaultIndexPath returns the default SQLite index location
func DefaultIndexPath() string {
	return filepath.Join(DataDir(), "render_vault.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("index_path", DefaultIndexPath())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("utility_dir", filepath.Join(DataDir(), "utility"))
	v.SetDefault("thumbnail_size", 350)
	v.SetDefault("thumbnail_workers", 2)
	v.SetDefault("thumbnail_category", "hdri")

	v.SetDefault("render.interpreter", "mayapy")
	v.SetDefault("render.render_script", "")
	v.SetDefault("render.repath_script", "")
	v.SetDefault("render.renderer", "vray")
	v.SetDefault("render.scene", "")
	v.SetDefault("render.camera", "render_cam")
	v.SetDefault("render.object", "shaderball_object")
	v.SetDefault("render.resolution_x", 350)
	v.SetDefault("render.resolution_y", 350)
}

// Load reads configuration from defaults, an optional file and the environment.
// An empty path searches for rendervault.yaml in the working and data directories.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rendervault")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DataDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.IndexPath = ExpandHome(cfg.IndexPath)
	cfg.UtilityDir = ExpandHome(cfg.UtilityDir)
	cfg.LogFile = ExpandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.IndexPath) == "" {
		return fmt.Errorf("index_path cannot be empty")
	}
	if c.ThumbnailSize <= 0 {
		return fmt.Errorf("thumbnail_size must be positive")
	}
	if c.ThumbnailWorkers <= 0 {
		return fmt.Errorf("thumbnail_workers must be positive")
	}
	if c.Render.ResolutionX <= 0 || c.Render.ResolutionY <= 0 {
		return fmt.Errorf("render resolution must be positive")
	}
	if _, err := c.ThumbnailCategory(); err != nil {
		return fmt.Errorf("thumbnail_category: %w", err)
	}
	if _, err := c.Render.RendererValue(); err != nil {
		return fmt.Errorf("render.renderer: %w", err)
	}
	return nil
}

// ThumbnailCategory returns the category whose assets get generated thumbnails
func (c *Config) ThumbnailCategory() (domain.Category, error) {
	return domain.ParseCategory(c.ThumbnailTarget)
}

// RendererValue parses the configured material renderer
func (r RenderConfig) RendererValue() (domain.Renderer, error) {
	return domain.ParseRenderer(r.Renderer)
}

// LogDir is where script invocations write their daily logs
func (c *Config) LogDir() string {
	if c.LogFile != "" {
		return filepath.Dir(c.LogFile)
	}
	return filepath.Join(DataDir(), "logs")
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
