package config

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/sim"
)

const (
	DefaultFrames      = 600
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultPanelWidth  = 420
	DefaultFPS         = 60
	DefaultAnchorInset = 40.0
)

type Config struct {
	Gravity       float64      `yaml:"gravity"`
	StepsPerFrame int          `yaml:"steps_per_frame"`
	Frames        int          `yaml:"frames"`
	Paused        bool         `yaml:"paused"`
	Seed          int64        `yaml:"seed"`
	Window        WindowConfig `yaml:"window"`
	Arms          []ArmConfig  `yaml:"arms"`
}

type WindowConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	PanelWidth int `yaml:"panel_width"`
	FPS        int `yaml:"fps"`
}

// ArmConfig describes one initial arm. Angle is in radians from the
// previous joint, screen space (π/2 hangs straight down).
type ArmConfig struct {
	Length float64 `yaml:"length"`
	Mass   float64 `yaml:"mass"`
	Drag   float64 `yaml:"drag"`
	Angle  float64 `yaml:"angle"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:       physics.DefaultGravity,
		StepsPerFrame: sim.StepsPerFrame,
		Frames:        DefaultFrames,
		Window: WindowConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			PanelWidth: DefaultPanelWidth,
			FPS:        DefaultFPS,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be finite", dynamo.ErrParameterBounds)
	}
	if c.StepsPerFrame <= 0 {
		return fmt.Errorf("%w: steps_per_frame must be positive, got %d", dynamo.ErrParameterBounds, c.StepsPerFrame)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, c.Frames)
	}
	if c.Window.PanelWidth >= c.Window.Width {
		return fmt.Errorf("%w: panel_width %d leaves no canvas in a %d wide window", dynamo.ErrParameterBounds, c.Window.PanelWidth, c.Window.Width)
	}
	for i, a := range c.Arms {
		if !(a.Length > 0) {
			return fmt.Errorf("%w: arm %d length must be positive, got %g", dynamo.ErrParameterBounds, i, a.Length)
		}
		if !(a.Mass > 0) {
			return fmt.Errorf("%w: arm %d mass must be positive, got %g", dynamo.ErrParameterBounds, i, a.Mass)
		}
		if a.Drag < 0 || math.IsNaN(a.Drag) {
			return fmt.Errorf("%w: arm %d drag must not be negative, got %g", dynamo.ErrParameterBounds, i, a.Drag)
		}
	}
	return nil
}

// Anchor is the centre-top of the canvas left of the side panel.
func (c *Config) Anchor() dynamo.Vec2 {
	return dynamo.V(float64(c.Window.Width-c.Window.PanelWidth)/2, DefaultAnchorInset)
}

// BuildChain lays out the configured arms from anchor, each at rest.
func (c *Config) BuildChain(anchor dynamo.Vec2) *physics.Chain {
	chain := physics.NewChain(anchor, c.Gravity)
	for _, a := range c.Arms {
		dir := dynamo.V(math.Cos(a.Angle), math.Sin(a.Angle))
		chain.Arms = append(chain.Arms, physics.Arm{
			Length: a.Length,
			Mass:   a.Mass,
			Drag:   a.Drag,
			Pos:    chain.End().Add(dir.Scale(a.Length)),
		})
	}
	return chain
}

// Rand returns the random source for new arms. A zero seed is time based.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		StepsPerFrame: c.StepsPerFrame,
		Frames:        c.Frames,
		ValidateState: true,
	}
}
