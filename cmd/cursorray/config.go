package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	gekko "github.com/gekko3d/gekko-cursor"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Plane   PlaneConfig   `yaml:"plane"`
}

type LoggingConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
	File   string `yaml:"file"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	Position   mgl32.Vec3 `yaml:"position"`
	LookAt     mgl32.Vec3 `yaml:"look_at"`
	Up         mgl32.Vec3 `yaml:"up"`
	Projection string     `yaml:"projection"` // perspective | orthographic
	FovYDeg    float32    `yaml:"fov_y_degrees"`
	Scale      float32    `yaml:"scale"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
}

// PlaneConfig is the plane the demo intersects cursor rays with.
type PlaneConfig struct {
	Origin mgl32.Vec3 `yaml:"origin"`
	Normal mgl32.Vec3 `yaml:"normal"`
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Prefix: "cursorray"},
		Window:  WindowConfig{Title: "cursor ray", Width: 800, Height: 600},
		Camera: CameraConfig{
			Position:   mgl32.Vec3{0, 5, 10},
			LookAt:     mgl32.Vec3{0, 0, 0},
			Up:         mgl32.Vec3{0, 1, 0},
			Projection: "perspective",
			FovYDeg:    45,
			Scale:      0.02,
			Near:       0.1,
			Far:        1000,
		},
		Plane: PlaneConfig{Normal: mgl32.Vec3{0, 1, 0}},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Plane.Normal.Len() == 0 {
		return fmt.Errorf("plane normal must not be zero")
	}
	if c.Camera.LookAt.Sub(c.Camera.Position).Len() == 0 {
		return fmt.Errorf("camera look_at must differ from its position")
	}
	if _, err := c.Camera.projection(); err != nil {
		return err
	}
	return nil
}

func (c CameraConfig) projection() (gekko.Projection, error) {
	switch c.Projection {
	case "", "perspective":
		return gekko.Projection{
			Kind: gekko.PerspectiveProjection,
			FovY: c.FovYDeg * math.Pi / 180,
			Near: c.Near,
			Far:  c.Far,
		}, nil
	case "orthographic":
		return gekko.Projection{
			Kind:  gekko.OrthographicProjection,
			Scale: c.Scale,
			Near:  c.Near,
			Far:   c.Far,
		}, nil
	default:
		return gekko.Projection{}, fmt.Errorf("unknown projection %q", c.Projection)
	}
}

func (c CameraConfig) transform() gekko.TransformComponent {
	return gekko.LookAtTransform(c.Position, c.LookAt, c.Up)
}
