// Package starfield simulates the background stars: a fixed set of coloured
// points that flicker and drift inside a cube, wrapping at its faces.
package starfield

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/voxel-pyramid/internal/config"
	"github.com/iburimskiy/voxel-pyramid/internal/tessellate"
)

// Variant selects the per-tick update rule.
type Variant int

const (
	// Twinkle steps brightness by at most TwinkleStep and keeps a fixed size.
	Twinkle Variant = iota
	// Pulse gives every star its own amplitude that drives both brightness
	// and size.
	Pulse
)

func (v Variant) String() string {
	if v == Pulse {
		return "pulse"
	}
	return "twinkle"
}

// ParseVariant accepts "twinkle" or "pulse".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "twinkle", "simple":
		return Twinkle, nil
	case "pulse", "pulsate":
		return Pulse, nil
	}
	return Twinkle, fmt.Errorf("unknown star variant %q", s)
}

// Star is one particle. Color is the base colour; brightness is carried as
// alpha when drawn.
type Star struct {
	Position   mgl32.Vec3
	Color      mgl32.Vec3
	Brightness float32
	Size       float32
	Pulsation  float32
}

// Field owns a fixed number of stars and the source that moves them.
type Field struct {
	variant Variant
	src     Source
	stars   []Star
}

// New draws count stars from src.
func New(count int, variant Variant, src Source) *Field {
	if count < 0 {
		count = 0
	}
	f := &Field{
		variant: variant,
		src:     src,
		stars:   make([]Star, count),
	}
	for i := range f.stars {
		f.stars[i] = f.spawn()
	}
	return f
}

func (f *Field) spawn() Star {
	var s Star
	for i := 0; i < 3; i++ {
		s.Position[i] = f.src.Between(-config.StarBound, config.StarBound)
	}
	s.Size = 1
	if f.variant == Pulse {
		s.Size = f.src.Between(config.MinStarSize, config.MaxStarSize)
	}
	s.Brightness = f.src.Between(0, 1)
	for i := 0; i < 3; i++ {
		s.Color[i] = f.src.Between(0, 1)
	}
	if f.variant == Pulse {
		s.Pulsation = f.src.Between(config.MinPulsation, config.MaxPulsation)
	}
	return s
}

func (f *Field) Variant() Variant { return f.variant }
func (f *Field) Len() int         { return len(f.stars) }

// Stars exposes the particles for reading. Callers must not keep the slice
// across Update calls.
func (f *Field) Stars() []Star { return f.stars }

// Update advances every star by one tick.
func (f *Field) Update() {
	for i := range f.stars {
		f.Step(&f.stars[i])
	}
}

// Step applies one tick of the field's rule to s.
func (f *Field) Step(s *Star) {
	if f.variant == Pulse {
		p := s.Pulsation
		s.Brightness = clamp(s.Brightness+f.src.Between(-p, p), config.MinBrightness, config.MaxBrightness)
		s.Size = clamp(s.Size+f.src.Between(-p/2, p/2), config.MinStarSize, config.MaxStarSize)
	} else {
		s.Brightness = clamp(s.Brightness+f.src.Between(-config.TwinkleStep, config.TwinkleStep), config.MinBrightness, config.MaxBrightness)
	}

	for i := 0; i < 3; i++ {
		s.Position[i] = wrap(s.Position[i] + f.src.Between(-config.StarDrift, config.StarDrift))
	}
}

// MeanBrightness averages the brightness of all stars, 0 for an empty field.
func (f *Field) MeanBrightness() float32 {
	if len(f.stars) == 0 {
		return 0
	}
	var sum float32
	for _, s := range f.stars {
		sum += s.Brightness
	}
	return sum / float32(len(f.stars))
}

// DrawColor is the colour a star is drawn with. A positive drift tints the
// base colour by position; the result is not stored.
func DrawColor(s Star, drift float32) mgl32.Vec4 {
	c := s.Color
	if drift > 0 {
		c = c.Add(s.Position.Mul(drift))
	}
	return mgl32.Vec4{clamp(c[0], 0, 1), clamp(c[1], 0, 1), clamp(c[2], 0, 1), s.Brightness}
}

// Primitives emits one point per star.
func (f *Field) Primitives(drift float32) []tessellate.Primitive {
	out := make([]tessellate.Primitive, len(f.stars))
	for i, s := range f.stars {
		out[i] = tessellate.Primitive{
			Kind:     tessellate.Points,
			Vertices: []mgl32.Vec3{s.Position},
			Color:    DrawColor(s, drift),
			Size:     s.Size,
		}
	}
	return out
}

// wrap teleports a coordinate that left [-StarBound, StarBound] to the
// opposite face.
func wrap(v float32) float32 {
	if v < -config.StarBound {
		return config.StarBound
	}
	if v > config.StarBound {
		return -config.StarBound
	}
	return v
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
