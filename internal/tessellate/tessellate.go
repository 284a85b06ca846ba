// Package tessellate turns voxel cells into renderable primitives.
package tessellate

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is the topology of a primitive's vertex list.
type Kind int

const (
	QuadStrip Kind = iota
	Quads
	Points
)

func (k Kind) String() string {
	switch k {
	case QuadStrip:
		return "quad-strip"
	case Quads:
		return "quads"
	case Points:
		return "points"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Primitive is one draw command. Normals is either empty or parallel to
// Vertices. Size is only meaningful for Points.
type Primitive struct {
	Kind     Kind
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Color    mgl32.Vec4
	Size     float32
}

// Mode selects which shape a voxel becomes.
type Mode int

const (
	SphereMode Mode = iota
	CubeMode
)

func (m Mode) String() string {
	if m == CubeMode {
		return "cube"
	}
	return "sphere"
}

// ParseMode accepts "sphere" or "cube".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sphere", "spheres":
		return SphereMode, nil
	case "cube", "cubes":
		return CubeMode, nil
	}
	return SphereMode, fmt.Errorf("unknown primitive mode %q", s)
}

// Tessellator fronts both voxel strategies.
type Tessellator struct {
	Mode   Mode
	Slices int
	Stacks int
}

// Voxel tessellates a voxel of edge size centred on center. Spheres get
// radius size/2 so neighbouring voxels touch.
func (t Tessellator) Voxel(center mgl32.Vec3, size float32, color mgl32.Vec4) []Primitive {
	var prims []Primitive
	if t.Mode == CubeMode {
		half := size / 2
		prims = Cube(center.Sub(mgl32.Vec3{half, half, half}), size)
	} else {
		prims = Sphere(center, size/2, t.Slices, t.Stacks)
	}
	for i := range prims {
		prims[i].Color = color
	}
	return prims
}

// Sphere builds a UV sphere as one quad strip per longitude band. Each strip
// holds a (theta0, theta1) vertex pair for every latitude step from the south
// pole to the north pole, so it has 2*(stacks+1) vertices.
func Sphere(center mgl32.Vec3, radius float32, slices, stacks int) []Primitive {
	if slices <= 0 || stacks <= 0 {
		return nil
	}
	strips := make([]Primitive, 0, slices)
	for i := 0; i < slices; i++ {
		theta0 := 2 * math.Pi * float64(i) / float64(slices)
		theta1 := 2 * math.Pi * float64(i+1) / float64(slices)

		p := Primitive{
			Kind:     QuadStrip,
			Vertices: make([]mgl32.Vec3, 0, 2*(stacks+1)),
			Normals:  make([]mgl32.Vec3, 0, 2*(stacks+1)),
		}
		for j := 0; j <= stacks; j++ {
			phi := math.Pi * (-0.5 + float64(j)/float64(stacks))
			cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

			n0 := mgl32.Vec3{
				float32(math.Cos(theta0) * cosPhi),
				float32(math.Sin(theta0) * cosPhi),
				float32(sinPhi),
			}
			n1 := mgl32.Vec3{
				float32(math.Cos(theta1) * cosPhi),
				float32(math.Sin(theta1) * cosPhi),
				float32(sinPhi),
			}
			p.Vertices = append(p.Vertices, center.Add(n0.Mul(radius)), center.Add(n1.Mul(radius)))
			p.Normals = append(p.Normals, n0, n1)
		}
		strips = append(strips, p)
	}
	return strips
}

// cubeFaces lists each face's corners as unit offsets, counter-clockwise
// when looking at the face from outside, with the outward normal.
var cubeFaces = [6]struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},  // front
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}}, // back
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},  // top
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}}, // bottom
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},  // right
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}}, // left
}

// Cube builds an axis-aligned cube with its minimum corner at corner as one
// Quads primitive of six faces.
func Cube(corner mgl32.Vec3, size float32) []Primitive {
	p := Primitive{
		Kind:     Quads,
		Vertices: make([]mgl32.Vec3, 0, 24),
		Normals:  make([]mgl32.Vec3, 0, 24),
	}
	for _, f := range cubeFaces {
		for _, c := range f.corners {
			p.Vertices = append(p.Vertices, corner.Add(c.Mul(size)))
			p.Normals = append(p.Normals, f.normal)
		}
	}
	return []Primitive{p}
}

// Triangles splits p into triangles as index triples into p.Vertices,
// preserving the winding of the source quads. Points yield nothing.
func Triangles(p Primitive) [][3]int {
	n := len(p.Vertices)
	switch p.Kind {
	case QuadStrip:
		if n < 4 {
			return nil
		}
		out := make([][3]int, 0, n-2)
		for k := 0; 2*k+3 < n; k++ {
			a, b, c, d := 2*k, 2*k+1, 2*k+3, 2*k+2
			out = append(out, [3]int{a, b, c}, [3]int{a, c, d})
		}
		return out
	case Quads:
		out := make([][3]int, 0, n/4*2)
		for q := 0; 4*q+3 < n; q++ {
			a := 4 * q
			out = append(out, [3]int{a, a + 1, a + 2}, [3]int{a, a + 2, a + 3})
		}
		return out
	}
	return nil
}
