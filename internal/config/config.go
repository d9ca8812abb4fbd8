package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

const (
	DefaultCount      = 25
	DefaultStep       = 0.001
	DefaultDelayMs    = 50
	DefaultResolution = 100
)

// Config is the file/flag-facing shape of a simulation setup. MollyIndex -1
// means the center rank, Resolution 0 means use the terminal width.
type Config struct {
	Count      int     `yaml:"count"`
	MollyIndex int     `yaml:"molly_index"`
	Step       float64 `yaml:"step"`
	Placement  string  `yaml:"placement"`
	DelayMs    int     `yaml:"delay_ms"`
	Seed       int64   `yaml:"seed"`
	Resolution int     `yaml:"resolution"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:      DefaultCount,
		MollyIndex: -1,
		Step:       DefaultStep,
		Placement:  "random",
		DelayMs:    DefaultDelayMs,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RodConfig translates the file shape into the engine's config. The engine
// validates the numeric domains itself; only the placement name can fail
// here.
func (c *Config) RodConfig() (rod.Config, error) {
	var placement rod.Placement
	switch c.Placement {
	case "", "random":
		placement = rod.Random
	case "regular":
		placement = rod.Regular
	default:
		return rod.Config{}, fmt.Errorf("%w: unknown placement %q", rod.ErrInvalidConfig, c.Placement)
	}

	return rod.Config{
		Count:      c.Count,
		MollyIndex: c.MollyIndex,
		Step:       c.Step,
		Placement:  placement,
	}, nil
}
