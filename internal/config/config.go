package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"camera-studio/internal/capture"
	"camera-studio/internal/faces"
	"camera-studio/internal/metrics"
)

const DefaultFile = "camera-studio.yaml"

type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Database DatabaseConfig `yaml:"database"`
	Faces    FacesConfig    `yaml:"faces"`
}

type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type CameraConfig struct {
	Device int  `yaml:"device"`
	Mirror bool `yaml:"mirror"` // selfie view, flips camera frames left to right
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type FacesConfig struct {
	Engine      string  `yaml:"engine"`       // haar or pigo
	HaarCascade string  `yaml:"haar_cascade"` // OpenCV XML cascade
	PigoCascade string  `yaml:"pigo_cascade"` // binary pigo facefinder
	MinQuality  float32 `yaml:"min_quality"`  // pigo only, 0 uses the detector default
}

func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  640,
			Height: 480,
			FPS:    metrics.DefaultFPS,
		},
		Camera: CameraConfig{
			Device: 0,
			Mirror: true,
		},
		Database: DatabaseConfig{
			Path: "Settings.db",
		},
		Faces: FacesConfig{
			Engine:      faces.EngineHaar,
			HaarCascade: "/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
		},
	}
}

// envInt reads an environment variable and parses it as a non-negative integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Camera.Device = envInt("CAMERA_DEVICE", c.Camera.Device)
	c.Camera.Mirror = envBool("CAMERA_MIRROR", c.Camera.Mirror)
	c.Display.FPS = envInt("CAMERA_FPS", c.Display.FPS)
	c.Display.Width = envInt("DISPLAY_WIDTH", c.Display.Width)
	c.Display.Height = envInt("DISPLAY_HEIGHT", c.Display.Height)
	c.Database.Path = envString("DATABASE_PATH", c.Database.Path)
	c.Faces.Engine = envString("FACE_DETECTOR", c.Faces.Engine)
	c.Faces.HaarCascade = envString("HAARCASCADE_FRONTALFACE", c.Faces.HaarCascade)
	c.Faces.PigoCascade = envString("PIGO_CASCADE", c.Faces.PigoCascade)
}

func (c *Config) Validate() error {
	if err := c.FrameSize().Validate(); err != nil {
		return err
	}
	if c.Display.FPS <= 0 || c.Display.FPS > metrics.MaxFPS {
		return fmt.Errorf("fps must be between 1 and %d, got %d", metrics.MaxFPS, c.Display.FPS)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	switch c.Faces.Engine {
	case faces.EngineHaar, faces.EnginePigo:
	default:
		return fmt.Errorf("unknown face detector %q", c.Faces.Engine)
	}
	return nil
}

func (c *Config) FrameSize() capture.Size {
	return capture.Size{Width: c.Display.Width, Height: c.Display.Height}
}

// TickPeriod is the display loop interval
func (c *Config) TickPeriod() time.Duration {
	return metrics.TickPeriod(c.Display.FPS)
}

func (c *Config) DetectorOptions() faces.Options {
	return faces.Options{
		Engine:      c.Faces.Engine,
		HaarCascade: c.Faces.HaarCascade,
		PigoCascade: c.Faces.PigoCascade,
		MinQuality:  c.Faces.MinQuality,
	}
}
