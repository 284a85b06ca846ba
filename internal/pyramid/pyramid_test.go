package pyramid

import (
	"reflect"
	"testing"
)

func TestHeight(t *testing.T) {
	tests := []struct {
		base, want int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{2, 3},
		{5, 8},
		{10, 16},
	}
	for _, tt := range tests {
		if got := Height(tt.base); got != tt.want {
			t.Fatalf("Height(%d) = %d, want %d", tt.base, got, tt.want)
		}
	}
}

func TestBuildBaseFiveLayers(t *testing.T) {
	s := Build(5)
	if s.Height() != 8 {
		t.Fatalf("Height() = %d, want 8", s.Height())
	}

	total := 0
	for y := 0; y < s.Height(); y++ {
		side := 5 - y/2
		want := 0
		if side > 0 {
			want = side * side
		}
		total += want

		layer := s.Layer(y)
		if len(layer) != want {
			t.Fatalf("layer %d has %d voxels, want %d", y, len(layer), want)
		}
		for _, p := range layer {
			if p.X < 0 || p.X >= side || p.Z < 0 || p.Z >= side {
				t.Fatalf("layer %d voxel %+v outside [0,%d)", y, p, side)
			}
		}
	}
	// 25+25+16+16+9+9+4+4
	if total != 108 || s.Len() != total {
		t.Fatalf("Len() = %d, total = %d, want 108", s.Len(), total)
	}
}

func TestBuildOrder(t *testing.T) {
	s := Build(2)
	// height 3: layers 0 and 1 have side 2, layer 2 has side 1
	want := []LatticePosition{
		{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1},
		{0, 1, 0}, {0, 1, 1}, {1, 1, 0}, {1, 1, 1},
		{0, 2, 0},
	}
	if got := s.Positions(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Positions() = %v, want %v", got, want)
	}
}

func TestBuildSingleVoxel(t *testing.T) {
	s := Build(1)
	if s.Height() != 1 || s.Len() != 1 {
		t.Fatalf("Build(1): height %d len %d, want 1 and 1", s.Height(), s.Len())
	}
	if p := s.At(0); p != (LatticePosition{}) {
		t.Fatalf("At(0) = %+v, want origin", p)
	}
}

func TestBuildNonPositive(t *testing.T) {
	for _, base := range []int{0, -1, -42} {
		if s := Build(base); s.Len() != 0 {
			t.Fatalf("Build(%d).Len() = %d, want 0", base, s.Len())
		}
	}
}

func TestEveryLayerNonEmpty(t *testing.T) {
	// floor(b*Phi)-1 stays below 2b, so the footprint never shrinks to zero.
	for base := 1; base <= 64; base++ {
		s := Build(base)
		for y := 0; y < s.Height(); y++ {
			if len(s.Layer(y)) == 0 {
				t.Fatalf("base %d layer %d is empty", base, y)
			}
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	a, b := Build(6), Build(6)
	if !reflect.DeepEqual(a.Positions(), b.Positions()) {
		t.Fatal("Build(6) produced different sequences")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("Fingerprint() differs: %x vs %x", a.Fingerprint(), b.Fingerprint())
	}
	if a.Fingerprint() == Build(5).Fingerprint() {
		t.Fatal("Fingerprint() of base 6 and base 5 collide")
	}
}

func TestPositionsIsACopy(t *testing.T) {
	s := Build(2)
	ps := s.Positions()
	ps[0] = LatticePosition{9, 9, 9}
	if s.At(0) != (LatticePosition{}) {
		t.Fatal("mutating Positions() result changed the set")
	}
}

func TestPlaceCentresPyramid(t *testing.T) {
	s := Build(5)
	const size = 0.4
	first := s.Place(LatticePosition{0, 0, 0}, size)
	last := s.Place(LatticePosition{4, 7, 4}, size)
	for i := 0; i < 3; i++ {
		if d := first[i] + last[i]; d > 1e-5 || d < -1e-5 {
			t.Fatalf("axis %d not centred: %v and %v", i, first[i], last[i])
		}
	}
}

func TestGradient(t *testing.T) {
	s := Build(5)
	c := s.Gradient(LatticePosition{X: 1, Y: 4, Z: 2})
	if c[0] != 0.2 || c[1] != 0.5 || c[2] != 0.4 || c[3] != 1 {
		t.Fatalf("Gradient() = %v, want [0.2 0.5 0.4 1]", c)
	}
}
