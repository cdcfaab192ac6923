// Package config loads the geobox configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window      Window      `yaml:"window"`
	Headless    Headless    `yaml:"headless"`
	Scene       Scene       `yaml:"scene"`
	View        View        `yaml:"view"`
	Geolocation Geolocation `yaml:"geolocation"`
	Origin      Origin      `yaml:"origin"`
	Log         Log         `yaml:"log"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
	Title  string `yaml:"title"`
}

type Headless struct {
	Hz    int    `yaml:"hz"`
	Ticks uint64 `yaml:"ticks"` // 0 = run forever
}

// Bounds is an axis-aligned box in the scene-root frame, metres.
type Bounds struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

type Scene struct {
	Boxes  int    `yaml:"boxes"`
	Seed   int64  `yaml:"seed"`
	Bounds Bounds `yaml:"bounds"`
}

type View struct {
	Stereo  bool    `yaml:"stereo"`
	FOVYDeg float64 `yaml:"fov_y_deg"`
	Near    float64 `yaml:"near"`
	Far     float64 `yaml:"far"`
	IPD     float64 `yaml:"ipd"`
}

// Geolocation configures the simulated geolocation source.
type Geolocation struct {
	Latitude        float64       `yaml:"latitude"`
	Longitude       float64       `yaml:"longitude"`
	Height          float64       `yaml:"height"`
	FixAfter        time.Duration `yaml:"fix_after"`
	AccurateAfter   time.Duration `yaml:"accurate_after"`
	InitialAccuracy float64       `yaml:"initial_accuracy"`
	Accuracy        float64       `yaml:"accuracy"`
	MaxAccuracy     float64       `yaml:"max_accuracy"`
}

type Origin struct {
	RecenterDistance float64 `yaml:"recenter_distance"`
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:  320,
			Height: 240,
			Scale:  3,
			Title:  "geobox",
		},
		Headless: Headless{Hz: 60},
		Scene: Scene{
			Boxes: 50,
			Seed:  1,
			Bounds: Bounds{
				Min: [3]float64{-25, 1, -25},
				Max: [3]float64{25, 11, 25},
			},
		},
		View: View{
			FOVYDeg: 60,
			Near:    0.1,
			Far:     10000,
			IPD:     0.064,
		},
		Geolocation: Geolocation{
			Latitude:        51.4779,
			Longitude:       -0.0015,
			Height:          45,
			FixAfter:        500 * time.Millisecond,
			AccurateAfter:   2 * time.Second,
			InitialAccuracy: 150,
			Accuracy:        5,
			MaxAccuracy:     50,
		},
		Origin: Origin{RecenterDistance: 5000},
		Log: Log{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads path on top of Default. A missing path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r on top of Default and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window scale %d", ErrInvalid, c.Window.Scale)
	case c.Headless.Hz <= 0:
		return fmt.Errorf("%w: headless hz %d", ErrInvalid, c.Headless.Hz)
	case c.Scene.Boxes < 0:
		return fmt.Errorf("%w: scene boxes %d", ErrInvalid, c.Scene.Boxes)
	case c.View.FOVYDeg <= 0 || c.View.FOVYDeg >= 180:
		return fmt.Errorf("%w: view fov_y_deg %g", ErrInvalid, c.View.FOVYDeg)
	case c.View.Near <= 0 || c.View.Far <= c.View.Near:
		return fmt.Errorf("%w: view near/far %g/%g", ErrInvalid, c.View.Near, c.View.Far)
	case c.View.IPD < 0:
		return fmt.Errorf("%w: view ipd %g", ErrInvalid, c.View.IPD)
	case c.Geolocation.Latitude < -90 || c.Geolocation.Latitude > 90:
		return fmt.Errorf("%w: latitude %g", ErrInvalid, c.Geolocation.Latitude)
	case c.Geolocation.Longitude < -180 || c.Geolocation.Longitude > 180:
		return fmt.Errorf("%w: longitude %g", ErrInvalid, c.Geolocation.Longitude)
	case c.Geolocation.MaxAccuracy <= 0:
		return fmt.Errorf("%w: max_accuracy %g", ErrInvalid, c.Geolocation.MaxAccuracy)
	case c.Origin.RecenterDistance <= 0:
		return fmt.Errorf("%w: recenter_distance %g", ErrInvalid, c.Origin.RecenterDistance)
	}
	for i := 0; i < 3; i++ {
		if c.Scene.Bounds.Min[i] > c.Scene.Bounds.Max[i] {
			return fmt.Errorf("%w: scene bounds axis %d min > max", ErrInvalid, i)
		}
	}
	return nil
}
