package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 1e-4
	DefaultDuration  = 2.0
	DefaultNodes     = 21
	DefaultLength    = 1.0
	DefaultMass      = 1.0
	DefaultStiffness = 1e3
	DefaultDamping   = 0.5
	DefaultGravity   = -9.81
)

type Config struct {
	Scenario   string     `yaml:"scenario"`
	Integrator string     `yaml:"integrator"`
	Dt         float64    `yaml:"dt"`
	Duration   float64    `yaml:"duration"`
	Rod        RodConfig  `yaml:"rod"`
	Gravity    float64    `yaml:"gravity"`
	Load       LoadConfig `yaml:"load"`
}

type RodConfig struct {
	Nodes     int     `yaml:"nodes"`
	Length    float64 `yaml:"length"`
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

type LoadConfig struct {
	ForceX   float64 `yaml:"force_x"`
	ForceY   float64 `yaml:"force_y"`
	ForceZ   float64 `yaml:"force_z"`
	RampTime float64 `yaml:"ramp_time"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "cantilever",
		Integrator: "verlet",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Gravity:    DefaultGravity,
		Rod: RodConfig{
			Nodes:     DefaultNodes,
			Length:    DefaultLength,
			Mass:      DefaultMass,
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
		},
		Load: LoadConfig{
			ForceY:   -1.0,
			RampTime: 0.1,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
