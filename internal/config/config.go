package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
	"github.com/alacrity-engine/anim-importer/internal/clip"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ANIM_IMPORTER_"

// Config holds the importer settings read from the YAML file.
type Config struct {
	FrameRate     float64     `yaml:"frame_rate"`
	PixelsPerUnit float64     `yaml:"pixels_per_unit"`
	Alignment     string      `yaml:"alignment"`
	PivotMode     string      `yaml:"pivot_mode"`
	CustomPivot   atlas.Point `yaml:"custom_pivot"`
	Naming        string      `yaml:"naming"`
	NonLooping    []string    `yaml:"non_looping"`

	ResourceFile string `yaml:"resource_file"`
	ExportDir    string `yaml:"export_dir"`
	ExportScale  int    `yaml:"export_scale"`
}

// Flags holds CLI flag values that override the config file.
type Flags struct {
	FrameRate    float64
	ResourceFile string
	ExportDir    string
	ExportScale  int
	NonLooping   []string
}

// Load reads a YAML config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve layers the settings: flags win over the loaded file,
// the file over environment variables, and those over defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.FrameRate > 0 {
		c.FrameRate = flags.FrameRate
	}
	if flags.ResourceFile != "" {
		c.ResourceFile = flags.ResourceFile
	}
	if flags.ExportDir != "" {
		c.ExportDir = flags.ExportDir
	}
	if flags.ExportScale > 0 {
		c.ExportScale = flags.ExportScale
	}
	if len(flags.NonLooping) > 0 {
		c.NonLooping = flags.NonLooping
	}

	c.resolveEnv(os.Getenv)

	if c.FrameRate <= 0 {
		c.FrameRate = 60
	}
	if c.PixelsPerUnit <= 0 {
		c.PixelsPerUnit = 100
	}
	if c.Alignment == "" {
		c.Alignment = "bottom_center"
	}
	if c.PivotMode == "" {
		c.PivotMode = "normalized"
	}
	if c.Naming == "" {
		c.Naming = "classic"
	}
	if c.NonLooping == nil {
		c.NonLooping = []string{"death"}
	}
	if c.ResourceFile == "" {
		c.ResourceFile = "./stage.res"
	}
	if c.ExportScale <= 0 {
		c.ExportScale = 1
	}
}

func (c *Config) resolveEnv(getenv func(string) string) {
	if c.FrameRate <= 0 {
		if v, err := strconv.ParseFloat(getenv(EnvPrefix+"FRAME_RATE"), 64); err == nil {
			c.FrameRate = v
		}
	}
	if c.PixelsPerUnit <= 0 {
		if v, err := strconv.ParseFloat(getenv(EnvPrefix+"PIXELS_PER_UNIT"), 64); err == nil {
			c.PixelsPerUnit = v
		}
	}
	if c.Alignment == "" {
		c.Alignment = getenv(EnvPrefix + "ALIGNMENT")
	}
	if c.Naming == "" {
		c.Naming = getenv(EnvPrefix + "NAMING")
	}
	if c.NonLooping == nil {
		if v := getenv(EnvPrefix + "NON_LOOPING"); v != "" {
			c.NonLooping = strings.Split(v, ",")
		}
	}
	if c.ResourceFile == "" {
		c.ResourceFile = getenv(EnvPrefix + "RESOURCE_FILE")
	}
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %v", c.FrameRate)
	}
	if c.PixelsPerUnit <= 0 {
		return fmt.Errorf("config: pixels_per_unit must be positive, got %v", c.PixelsPerUnit)
	}

	_, err := c.Atlas()
	return err
}

// Atlas converts the sprite settings.
func (c Config) Atlas() (atlas.Settings, error) {
	align, err := atlas.ParseAlignment(c.Alignment)
	if err != nil {
		return atlas.Settings{}, fmt.Errorf("config: %w", err)
	}

	mode, err := atlas.ParsePivotMode(c.PivotMode)
	if err != nil {
		return atlas.Settings{}, fmt.Errorf("config: %w", err)
	}

	naming, err := atlas.ParseNaming(c.Naming)
	if err != nil {
		return atlas.Settings{}, fmt.Errorf("config: %w", err)
	}

	return atlas.Settings{
		Alignment:     align,
		PivotMode:     mode,
		CustomPivot:   c.CustomPivot,
		Naming:        naming,
		PixelsPerUnit: c.PixelsPerUnit,
	}, nil
}

// Clip converts the clip settings.
func (c Config) Clip(previous map[string]bool) clip.Settings {
	return clip.Settings{
		FrameRate:  c.FrameRate,
		NonLooping: c.NonLooping,
		Previous:   previous,
	}
}
