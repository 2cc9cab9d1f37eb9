// Package config loads run configuration for the interpolation tools from
// YAML or HJSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go"
	"gopkg.in/yaml.v3"

	interp "github.com/flywave/go-interp"
)

const (
	MethodIDW     = "idw"
	MethodKriging = "kriging"
)

const (
	FormatJSON    = "json"
	FormatGeoTIFF = "geotiff"
)

var (
	ErrUnknownMethod = errors.New("config: unknown interpolation method")
	ErrUnknownFormat = errors.New("config: unknown output format")
)

// Config is a complete interpolation run.
type Config struct {
	// Method selects the surface producer, "idw" or "kriging".
	Method  string              `yaml:"method" json:"method"`
	IDW     interp.IDWConfig     `yaml:"idw" json:"idw"`
	Kriging interp.KrigingConfig `yaml:"kriging" json:"kriging"`

	Grid struct {
		// Resolution is the node spacing in input units.
		Resolution float64 `yaml:"resolution" json:"resolution"`
		// Bounds is {minX, minY, maxX, maxY}; unset covers the samples.
		Bounds *[4]float64 `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	} `yaml:"grid" json:"grid"`

	// Thin is the cell size used to merge dense samples; unset keeps all.
	Thin *[2]float64 `yaml:"thin,omitempty" json:"thin,omitempty"`

	Input interp.ReadOptions `yaml:"input" json:"input"`

	// Flow also derives flow vectors from the surface.
	Flow   bool    `yaml:"flow" json:"flow"`
	// Format of the output, "json" or "geotiff".
	Format string  `yaml:"format" json:"format"`
	NoData float64 `yaml:"noData" json:"noData"`
}

func Default() *Config {
	cfg := &Config{
		Method:  MethodIDW,
		IDW:     interp.DefaultIDWConfig(),
		Kriging: interp.DefaultKrigingConfig(),
		Format:  FormatJSON,
		NoData:  interp.DefaultNoData,
	}
	cfg.Grid.Resolution = 0.5
	return cfg
}

// Load reads path over the defaults. A missing file yields the defaults.
// Files ending in .hjson are read as HJSON, anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hjson") {
		err = unmarshalHjson(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

func unmarshalHjson(data []byte, cfg *Config) error {
	var mdat map[string]interface{}
	if err := hjson.Unmarshal(data, &mdat); err != nil {
		return err
	}
	bytes, err := json.Marshal(mdat)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, cfg)
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Producer returns the surface producer selected by Method.
func (c *Config) Producer() (interp.SurfaceProducer, error) {
	switch strings.ToLower(c.Method) {
	case MethodIDW, "":
		return interp.NewIDW(c.IDW), nil
	case MethodKriging:
		return interp.NewKriging(c.Kriging), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, c.Method)
	}
}
