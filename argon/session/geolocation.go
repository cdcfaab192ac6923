package session

import (
	"sync"
	"time"

	"geobox/argon/geo"
)

// Reading is one geolocation sample.
type Reading struct {
	Position geo.Geodetic
	Accuracy float64 // metres, 1 sigma horizontal
}

// Geolocator supplies device geolocation. Reading reports false while no fix exists.
type Geolocator interface {
	Reading(now time.Time) (Reading, bool)
}

// SimulatedConfig drives a SimulatedGeolocator.
type SimulatedConfig struct {
	Start           geo.Geodetic
	FixAfter        time.Duration
	AccurateAfter   time.Duration
	InitialAccuracy float64
	Accuracy        float64
}

// SimulatedGeolocator reports a fixed, walkable position with an accuracy schedule:
// no fix before FixAfter, InitialAccuracy until AccurateAfter, then Accuracy.
type SimulatedGeolocator struct {
	mu       sync.Mutex
	cfg      SimulatedConfig
	pos      geo.Geodetic
	started  time.Time
	override *float64
	dropped  bool
}

func NewSimulatedGeolocator(cfg SimulatedConfig) *SimulatedGeolocator {
	return &SimulatedGeolocator{cfg: cfg, pos: cfg.Start}
}

func (g *SimulatedGeolocator) Reading(now time.Time) (Reading, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started.IsZero() {
		g.started = now
	}
	if g.dropped {
		return Reading{}, false
	}
	elapsed := now.Sub(g.started)
	if elapsed < g.cfg.FixAfter {
		return Reading{}, false
	}

	acc := g.cfg.Accuracy
	if elapsed < g.cfg.AccurateAfter {
		acc = g.cfg.InitialAccuracy
	}
	if g.override != nil {
		acc = *g.override
	}
	return Reading{Position: g.pos, Accuracy: acc}, true
}

// Walk moves the simulated device along a heading (radians clockwise from north).
func (g *SimulatedGeolocator) Walk(headingRad, meters float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pos = geo.Offset(g.pos, headingRad, meters)
}

// Position returns the current simulated position.
func (g *SimulatedGeolocator) Position() geo.Geodetic {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos
}

// SetAccuracy pins the reported accuracy, overriding the schedule.
func (g *SimulatedGeolocator) SetAccuracy(meters float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.override = &meters
}

// Drop makes the geolocator lose (true) or regain (false) its fix.
func (g *SimulatedGeolocator) Drop(lost bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dropped = lost
}
