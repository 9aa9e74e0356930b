// Package config handles loading of point layer definitions.
package config

import (
	"errors"
	"fmt"
	"os"

	point "github.com/tingold/orb-point"
	"github.com/tingold/orb-point/flatgeobuf"

	"gopkg.in/yaml.v3"
)

// ErrNoLayers is returned when a configuration defines no layer.
var ErrNoLayers = errors.New("config: no layers defined")

// Config represents the root configuration file structure.
type Config struct {
	Layers []Layer `yaml:"layers"`

	// text encoding defaults, overridable per request
	Precision    int    `yaml:"precision,omitempty"`
	GMLNamespace string `yaml:"gml_namespace,omitempty"`
}

// Layer is a named set of points served together.
type Layer struct {
	Index       *bool   `yaml:"index,omitempty"` // spatial index, on when unset
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	EPSG        int     `yaml:"epsg,omitempty"`
	Points      []Entry `yaml:"points"`
}

// Entry is a single point given as WKT, with optional attributes.
type Entry struct {
	Attributes map[string]any `yaml:"attributes,omitempty"`
	WKT        string         `yaml:"wkt"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a configuration and checks that every point parses.
func Parse(data []byte) (*Config, error) {
	cfg := Config{
		Precision:    point.DefaultPrecision,
		GMLNamespace: point.DefaultNamespace,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Layers) == 0 {
		return nil, ErrNoLayers
	}
	seen := make(map[string]bool, len(cfg.Layers))
	for _, l := range cfg.Layers {
		if l.Name == "" {
			return nil, errors.New("config: layer without name")
		}
		if seen[l.Name] {
			return nil, fmt.Errorf("config: duplicate layer %q", l.Name)
		}
		seen[l.Name] = true
		if _, err := l.Features(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// Layer returns the layer with the given name.
func (c *Config) Layer(name string) (*Layer, bool) {
	for i := range c.Layers {
		if c.Layers[i].Name == name {
			return &c.Layers[i], true
		}
	}
	return nil, false
}

// Features parses the layer points.
func (l *Layer) Features() ([]flatgeobuf.Feature, error) {
	features := make([]flatgeobuf.Feature, len(l.Points))
	for i, e := range l.Points {
		p, err := point.ParseWKT(e.WKT)
		if err != nil {
			return nil, fmt.Errorf("config: layer %q point %d: %w", l.Name, i, err)
		}
		features[i] = flatgeobuf.Feature{Point: p, Attributes: e.Attributes}
	}
	return features, nil
}

// Options returns the FlatGeobuf write options of the layer.
func (l *Layer) Options() *flatgeobuf.Options {
	opts := flatgeobuf.DefaultOptions()
	opts.Name = l.Name
	opts.Description = l.Description
	if l.Index != nil {
		opts.IncludeIndex = *l.Index
	}
	switch l.EPSG {
	case 0:
	case 4326:
		opts.CRS = flatgeobuf.WGS84()
	default:
		opts.CRS = &flatgeobuf.CRS{Code: l.EPSG}
	}
	return opts
}
