// Package config holds the tunables of a conversion and loads them from YAML.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Minimum alpha (0-255) for a pixel to count as solid
	Threshold int `yaml:"threshold"`
	// Vertex limit of the downstream convex shape
	MaxVertices int `yaml:"max_vertices"`
	// Outline simplification tolerance, in pixels
	Epsilon float64 `yaml:"epsilon"`
	// Half width of each edge box, in pixels
	Thickness float64 `yaml:"thickness"`

	Group       string   `yaml:"group"`
	Masks       []string `yaml:"masks"`
	Friction    float64  `yaml:"friction"`
	Restitution float64  `yaml:"restitution"`
}

func Default() Config {
	return Config{
		Threshold:   1,
		MaxVertices: 16,
		Epsilon:     2.0,
		Thickness:   2.0,
		Group:       "default",
		Masks:       []string{"default"},
		Friction:    0.1,
		Restitution: 0.5,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "opening config")
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Threshold < 0 || c.Threshold > 255:
		return errors.Errorf("threshold must be within 0-255, got %d", c.Threshold)
	case c.MaxVertices < 3:
		return errors.Errorf("max_vertices must be at least 3, got %d", c.MaxVertices)
	case c.Epsilon < 0:
		return errors.Errorf("epsilon must not be negative, got %v", c.Epsilon)
	case c.Thickness <= 0:
		return errors.Errorf("thickness must be positive, got %v", c.Thickness)
	case c.Group == "":
		return errors.New("group must not be empty")
	case len(c.Masks) == 0:
		return errors.New("at least one mask is required")
	case c.Friction < 0:
		return errors.Errorf("friction must not be negative, got %v", c.Friction)
	case c.Restitution < 0:
		return errors.Errorf("restitution must not be negative, got %v", c.Restitution)
	}
	for i, mask := range c.Masks {
		if mask == "" {
			return errors.Errorf("mask %d is empty", i)
		}
	}
	return nil
}
