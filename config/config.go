package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneSpec names one scene and its starting gravity magnitude.
type SceneSpec struct {
	Name    string  `yaml:"name"`
	Gravity float64 `yaml:"gravity"`
}

// BallSpec tunes every ball spawned after it is applied.
type BallSpec struct {
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Damping    float64 `yaml:"damping"` // fraction of velocity retained per second
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	DropX      float64 `yaml:"drop_x"`
	DropY      float64 `yaml:"drop_y"`
}

// SettleSpec holds the removal heuristic thresholds. These are policy
// knobs, not physical constants; they assume the default substep and
// meter units.
type SettleSpec struct {
	Speed  float64 `yaml:"speed"`  // cull below this velocity magnitude
	Margin float64 `yaml:"margin"` // extra height above radius+ground still counted as "down"
}

// WorldSpec tunes the simulation space shared by every scene.
type WorldSpec struct {
	GroundY         float64 `yaml:"ground_y"` // top surface of the ground slab
	GroundHalfWidth float64 `yaml:"ground_half_width"`
	GroundFriction  float64 `yaml:"ground_friction"`
	GroundElastic   float64 `yaml:"ground_elasticity"`
	SubstepDT       float64 `yaml:"substep_dt"`
	MaxSubsteps     int     `yaml:"max_substeps"`
	Iterations      int     `yaml:"iterations"`
	PixelsPerMeter  float64 `yaml:"pixels_per_meter"`
}

type Config struct {
	World  WorldSpec   `yaml:"world"`
	Ball   BallSpec    `yaml:"ball"`
	Settle SettleSpec  `yaml:"settle"`
	Scenes []SceneSpec `yaml:"scenes"`
}

// Default returns the built-in tuning: three scenes at the Earth, Moon,
// and Jupiter surface gravities and the historical ball constants.
func Default() *Config {
	return &Config{
		World: WorldSpec{
			GroundY:         1.0,
			GroundHalfWidth: 50.0,
			GroundFriction:  0.4,
			GroundElastic:   0.3,
			SubstepDT:       1.0 / 60.0,
			MaxSubsteps:     5,
			Iterations:      20,
			PixelsPerMeter:  28.0,
		},
		Ball: BallSpec{
			Radius:     0.5,
			Mass:       1.0,
			Damping:    0.69,
			Friction:   0.4,
			Elasticity: 0.3,
			DropX:      0,
			DropY:      8,
		},
		Settle: SettleSpec{
			Speed:  0.1,
			Margin: 0,
		},
		Scenes: []SceneSpec{
			{Name: "Earth", Gravity: 9.8},
			{Name: "Moon", Gravity: 1.6},
			{Name: "Jupiter", Gravity: 24.8},
		},
	}
}

// Load reads a yaml tuning file. An empty path or a missing file yields
// the defaults; a file that exists but fails to parse is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize backfills zero values that would stall or explode the
// simulation with their defaults.
func (c *Config) sanitize() {
	def := Default()
	if c.World.SubstepDT <= 0 {
		c.World.SubstepDT = def.World.SubstepDT
	}
	if c.World.MaxSubsteps <= 0 {
		c.World.MaxSubsteps = def.World.MaxSubsteps
	}
	if c.World.Iterations <= 0 {
		c.World.Iterations = def.World.Iterations
	}
	if c.World.PixelsPerMeter <= 0 {
		c.World.PixelsPerMeter = def.World.PixelsPerMeter
	}
	if c.World.GroundHalfWidth <= 0 {
		c.World.GroundHalfWidth = def.World.GroundHalfWidth
	}
	if c.Ball.Radius <= 0 {
		c.Ball.Radius = def.Ball.Radius
	}
	if c.Ball.Mass <= 0 {
		c.Ball.Mass = def.Ball.Mass
	}
	if c.Ball.Damping <= 0 || c.Ball.Damping > 1 {
		c.Ball.Damping = def.Ball.Damping
	}
	if c.Settle.Speed <= 0 {
		c.Settle.Speed = def.Settle.Speed
	}
	if len(c.Scenes) == 0 {
		c.Scenes = def.Scenes
	}
}
