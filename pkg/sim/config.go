package sim

import (
	"github.com/pkg/errors"
)

type Config struct {
	Seed      int64
	Particles int // initial population
	Steps     int
	Width     float64
	Height    float64
	DT        float64
	SpawnRate float64 // probability of one new particle per step
}

func DefaultConfig() Config {
	return Config{
		Seed:      1,
		Particles: 64,
		Steps:     100,
		Width:     100,
		Height:    100,
		DT:        0.1,
		SpawnRate: 0.5,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Particles < 0:
		return errors.Errorf("particles must not be negative, got %d", c.Particles)
	case c.Steps < 0:
		return errors.Errorf("steps must not be negative, got %d", c.Steps)
	// negated so NaN fails too
	case !(c.Width > 0 && c.Height > 0):
		return errors.Errorf("bounds must be positive, got %gx%g", c.Width, c.Height)
	case !(c.DT > 0):
		return errors.Errorf("dt must be positive, got %g", c.DT)
	case !(c.SpawnRate >= 0 && c.SpawnRate <= 1):
		return errors.Errorf("spawn rate must be within [0, 1], got %g", c.SpawnRate)
	}

	return nil
}

// Series returns n copies of base, the i-th seeded with base.Seed+i.
func Series(base Config, n int) ([]Config, error) {
	if n < 0 {
		return nil, errors.Errorf("world count must not be negative, got %d", n)
	}

	cfgs := make([]Config, n)
	for i := range cfgs {
		cfgs[i] = base
		cfgs[i].Seed = base.Seed + int64(i)
	}

	return cfgs, nil
}
