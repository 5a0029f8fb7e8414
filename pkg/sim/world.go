package sim

import (
	"encoding/binary"
	"math/rand"

	"github.com/dchest/siphash"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/snwfog/sequence.go/pkg/particle"
)

const maxSpeed = 20

var digestKey = []byte("particlesim/v1.0")

// Stats counts world activity. Worlds built with the same Stats share the
// counters, so they may be stepped from different goroutines.
type Stats struct {
	Steps   *atomic.Int64
	Removed *atomic.Int64
	Spawned *atomic.Int64
}

func NewStats() Stats {
	return Stats{
		Steps:   atomic.NewInt64(0),
		Removed: atomic.NewInt64(0),
		Spawned: atomic.NewInt64(0),
	}
}

// orNew fills in the counters a partial or zero Stats is missing.
func (s Stats) orNew() Stats {
	if s.Steps == nil {
		s.Steps = atomic.NewInt64(0)
	}
	if s.Removed == nil {
		s.Removed = atomic.NewInt64(0)
	}
	if s.Spawned == nil {
		s.Spawned = atomic.NewInt64(0)
	}

	return s
}

// World is a box of particles. It owns its sequence and is not safe for
// concurrent use; distinct worlds are independent.
type World struct {
	cfg   Config
	seq   *particle.ParticleSeq
	rng   *rand.Rand
	stats Stats
}

func NewWorld(cfg Config, stats Stats) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	w := &World{
		cfg:   cfg,
		seq:   particle.NewParticleSeq(),
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		stats: stats.orNew(),
	}
	for i := 0; i < cfg.Particles; i++ {
		w.seq.InsertAfter(w.spawn())
	}

	return w, nil
}

func (w *World) spawn() *particle.Particle {
	return particle.New(
		particle.Point{X: w.rng.Float64() * w.cfg.Width, Y: w.rng.Float64() * w.cfg.Height},
		particle.Vector{DX: (w.rng.Float64()*2 - 1) * maxSpeed, DY: (w.rng.Float64()*2 - 1) * maxSpeed},
		1+w.rng.Float64()*9,
		particle.Palette[w.rng.Intn(len(particle.Palette))],
	)
}

func (w *World) inBounds(p particle.Point) bool {
	return p.X >= 0 && p.X <= w.cfg.Width && p.Y >= 0 && p.Y <= w.cfg.Height
}

func (w *World) Len() int {
	return w.seq.Len()
}

// Add places p right after the current particle.
func (w *World) Add(p *particle.Particle) {
	w.seq.InsertAfter(p)
}

// Step moves every particle once and drops the ones that left the box.
// Afterwards a new particle may enter at the tail.
func (w *World) Step() error {
	s := w.seq
	s.Start()
	for !s.AtEnd() {
		p, err := s.Current()
		if err != nil {
			return errors.Wrap(err, "step")
		}

		if p != nil {
			p.Move(w.cfg.DT)
			if !w.inBounds(p.Position) {
				if err := s.RemoveCurrent(); err != nil {
					return errors.Wrap(err, "step")
				}
				w.stats.Removed.Inc()
			}
		}

		if err := s.Advance(); err != nil {
			return errors.Wrap(err, "step")
		}
	}

	// at the end, so this lands after the last particle
	if w.rng.Float64() < w.cfg.SpawnRate {
		s.InsertBefore(w.spawn())
		w.stats.Spawned.Inc()
	}

	w.stats.Steps.Inc()
	return nil
}

// copies builds a sequence holding a private copy of every particle in seq,
// in order. Nil entries stay nil.
func copies(seq *particle.ParticleSeq) *particle.ParticleSeq {
	out := particle.NewParticleSeq()
	it := seq.Iterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if p != nil {
			cp := *p
			p = &cp
		}
		out.InsertAfter(p)
	}

	return out
}

// Snapshot returns the world's particles as they are now. Later steps do not
// change it.
func (w *World) Snapshot() *particle.ParticleSeq {
	return copies(w.seq)
}

// Absorb adds copies of other's particles after w's own. other may be w.
func (w *World) Absorb(other *World) {
	w.seq.Append(copies(other.seq))
}

// Digest fingerprints the particles in sequence order.
func (w *World) Digest() uint64 {
	h := siphash.New(digestKey)
	var buf [8]byte

	it := w.seq.Iterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		binary.LittleEndian.PutUint64(buf[:], p.Hash())
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
