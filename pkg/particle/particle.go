package particle

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dchest/siphash"
)

//go:generate genny -in=../generic/sequence.go -out=particle_seq.go -pkg=particle gen "Value=*Particle"

const (
	// fixed so that hashes are stable between runs and processes
	sipHashKey1 = 0xdda7806a4847ec61
	sipHashKey2 = 0xb5940c2623a5aabd

	hashSize = 6 * 8
)

type Point struct {
	X, Y float64
}

func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

type Vector struct {
	DX, DY float64
}

func (v Vector) Scale(k float64) Vector {
	return Vector{DX: v.DX * k, DY: v.DY * k}
}

// Color is a 24 bit RGB value.
type Color uint32

const (
	Black  Color = 0x000000
	Blue   Color = 0x0000ff
	Green  Color = 0x00ff00
	Yellow Color = 0xffff00
	Red    Color = 0xff0000
	White  Color = 0xffffff
)

var Palette = []Color{Black, Blue, Green, Yellow, Red, White}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

// Particle is a point mass. Sequences hold particles by pointer and never
// compare them by value.
type Particle struct {
	Position Point
	Velocity Vector
	Mass     float64
	Color    Color
}

func New(pos Point, vel Vector, mass float64, c Color) *Particle {
	return &Particle{
		Position: pos,
		Velocity: vel,
		Mass:     mass,
		Color:    c,
	}
}

// Move advances the particle along its velocity for dt time units.
func (p *Particle) Move(dt float64) {
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

// Hash is a keyed hash of the particle's state. A nil particle hashes to 0.
func (p *Particle) Hash() uint64 {
	if p == nil {
		return 0
	}

	var buf [hashSize]byte
	for i, f := range []float64{
		p.Position.X, p.Position.Y,
		p.Velocity.DX, p.Velocity.DY,
		p.Mass, float64(p.Color),
	} {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}

	return siphash.Hash(sipHashKey1, sipHashKey2, buf[:])
}

func (p *Particle) String() string {
	if p == nil {
		return "<nil>"
	}

	return fmt.Sprintf("(%g,%g)", p.Position.X, p.Position.Y)
}
