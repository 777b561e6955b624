package main

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v2"
)

// Config defines a struct to match a configuration yaml file.
type Config struct {
	Backend  string        `yaml:"Backend"`  // "periph" or "rpio"
	Segments []string      `yaml:"Segments"` // a, b, c, d, e, f, g, dp; "" if unconnected
	Commons  []string      `yaml:"Commons"`  // leftmost digit first
	Tick     time.Duration `yaml:"Tick"`
	Strobe   time.Duration `yaml:"Strobe"`
	Mode     string        `yaml:"Mode"` // "clock", "text" or "cycle"
	Text     string        `yaml:"Text"`
}

// NewConfig will create a new Config instance from the specified yaml file
func NewConfig(yamlFile string) (*Config, error) {
	config := Config{
		Backend: "periph",
		Tick:    time.Millisecond,
		Strobe:  4 * time.Millisecond,
		Mode:    "clock",
	}
	source, err := ioutil.ReadFile(yamlFile)
	if err != nil {
		return nil, err
	}

	err = yaml.UnmarshalStrict(source, &config)
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", yamlFile, err)
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case "periph", "rpio":
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.Mode {
	case "clock", "text", "cycle":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if len(c.Segments) == 0 || len(c.Segments) > 8 {
		return fmt.Errorf("need 1 to 8 segment pins, have %d", len(c.Segments))
	}
	if len(c.Commons) == 0 {
		return fmt.Errorf("need at least one common pin")
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, is %v", c.Tick)
	}
	return nil
}
