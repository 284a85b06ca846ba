package tessellate

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSphereStripCounts(t *testing.T) {
	tests := []struct{ slices, stacks int }{
		{16, 16},
		{3, 2},
		{8, 5},
	}
	for _, tt := range tests {
		strips := Sphere(mgl32.Vec3{}, 1, tt.slices, tt.stacks)
		if len(strips) != tt.slices {
			t.Fatalf("Sphere(%d,%d) = %d strips, want %d", tt.slices, tt.stacks, len(strips), tt.slices)
		}
		for i, s := range strips {
			want := 2 * (tt.stacks + 1)
			if s.Kind != QuadStrip {
				t.Fatalf("strip %d kind = %v, want %v", i, s.Kind, QuadStrip)
			}
			if len(s.Vertices) != want || len(s.Normals) != want {
				t.Fatalf("strip %d has %d vertices / %d normals, want %d", i, len(s.Vertices), len(s.Normals), want)
			}
		}
	}
}

func TestSphereVerticesOnSurface(t *testing.T) {
	center := mgl32.Vec3{1.5, -0.4, 2}
	const radius = 0.2
	for _, s := range Sphere(center, radius, 16, 16) {
		for i, v := range s.Vertices {
			d := v.Sub(center)
			if !mgl32.FloatEqualThreshold(d.Len(), radius, 1e-5) {
				t.Fatalf("vertex %v at distance %v, want %v", v, d.Len(), radius)
			}
			n := s.Normals[i]
			if !mgl32.FloatEqualThreshold(n.Len(), 1, 1e-5) {
				t.Fatalf("normal %v has length %v, want 1", n, n.Len())
			}
			if n.Dot(d) <= 0 {
				t.Fatalf("normal %v does not point away from centre", n)
			}
		}
	}
}

func TestSphereDegenerate(t *testing.T) {
	if got := Sphere(mgl32.Vec3{}, 1, 0, 4); got != nil {
		t.Fatalf("Sphere with 0 slices = %v, want nil", got)
	}
	if got := Sphere(mgl32.Vec3{}, 1, 4, 0); got != nil {
		t.Fatalf("Sphere with 0 stacks = %v, want nil", got)
	}
}

func TestCubeOutwardWinding(t *testing.T) {
	corner := mgl32.Vec3{-1, 2, 0.5}
	const size = 0.4
	prims := Cube(corner, size)
	if len(prims) != 1 || prims[0].Kind != Quads {
		t.Fatalf("Cube() = %d primitives, want one Quads", len(prims))
	}
	p := prims[0]
	if len(p.Vertices) != 24 {
		t.Fatalf("Cube() has %d vertices, want 24", len(p.Vertices))
	}

	mid := corner.Add(mgl32.Vec3{size / 2, size / 2, size / 2})
	for q := 0; q < 6; q++ {
		v := p.Vertices[4*q : 4*q+4]
		faceNormal := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
		var faceCenter mgl32.Vec3
		for _, c := range v {
			faceCenter = faceCenter.Add(c.Mul(0.25))
		}
		out := faceCenter.Sub(mid)
		if faceNormal.Dot(out) <= 0 {
			t.Fatalf("face %d wound inward", q)
		}
		if p.Normals[4*q].Dot(out) <= 0 {
			t.Fatalf("face %d normal %v points inward", q, p.Normals[4*q])
		}
	}
}

func TestTriangles(t *testing.T) {
	strip := Sphere(mgl32.Vec3{}, 1, 4, 3)[0]
	tris := Triangles(strip)
	// 4 latitude rows -> 3 quads -> 6 triangles
	if len(tris) != 6 {
		t.Fatalf("Triangles(strip) = %d, want 6", len(tris))
	}
	if tris[0] != [3]int{0, 1, 3} || tris[1] != [3]int{0, 3, 2} {
		t.Fatalf("first strip quad = %v %v", tris[0], tris[1])
	}

	cube := Cube(mgl32.Vec3{}, 1)[0]
	if got := len(Triangles(cube)); got != 12 {
		t.Fatalf("Triangles(cube) = %d, want 12", got)
	}

	pts := Primitive{Kind: Points, Vertices: []mgl32.Vec3{{}, {}}}
	if got := Triangles(pts); got != nil {
		t.Fatalf("Triangles(points) = %v, want nil", got)
	}
}

func TestTessellatorVoxel(t *testing.T) {
	color := mgl32.Vec4{0.2, 0.5, 0.4, 1}
	center := mgl32.Vec3{1, 1, 1}

	sp := Tessellator{Mode: SphereMode, Slices: 6, Stacks: 4}.Voxel(center, 0.4, color)
	if len(sp) != 6 {
		t.Fatalf("sphere voxel = %d strips, want 6", len(sp))
	}
	if !mgl32.FloatEqualThreshold(sp[0].Vertices[0].Sub(center).Len(), 0.2, 1e-5) {
		t.Fatal("sphere voxel radius is not half the voxel size")
	}

	cb := Tessellator{Mode: CubeMode}.Voxel(center, 0.4, color)
	if len(cb) != 1 {
		t.Fatalf("cube voxel = %d primitives, want 1", len(cb))
	}
	for _, v := range cb[0].Vertices {
		for i := 0; i < 3; i++ {
			if v[i] < 0.8-1e-5 || v[i] > 1.2+1e-5 {
				t.Fatalf("cube vertex %v outside voxel", v)
			}
		}
	}
	for _, p := range append(sp, cb...) {
		if p.Color != color {
			t.Fatalf("color = %v, want %v", p.Color, color)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"sphere", SphereMode, false},
		{" Cube ", CubeMode, false},
		{"cubes", CubeMode, false},
		{"torus", SphereMode, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
