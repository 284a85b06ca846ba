// Package pyramid builds the voxel lattice of a stepped pyramid whose height
// is derived from its base with the golden ratio.
package pyramid

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Phi is the golden ratio.
const Phi = 1.6180339887498948

// LatticePosition identifies one voxel cell of the pyramid grid.
type LatticePosition struct {
	X, Y, Z int
}

// VoxelSet is the ordered list of voxels produced by Build. Order is
// generation order: layers bottom-up, then x, then z.
type VoxelSet struct {
	base      int
	height    int
	positions []LatticePosition
}

// Height returns floor(baseSize * Phi), or 0 for a non-positive base.
func Height(baseSize int) int {
	if baseSize <= 0 {
		return 0
	}
	return int(math.Floor(float64(baseSize) * Phi))
}

// LayerSide is the footprint side of layer y. It shrinks by one every two
// layers and may reach zero or below on tall pyramids.
func LayerSide(baseSize, y int) int {
	return baseSize - y/2
}

// Build generates the pyramid for baseSize. The result only depends on
// baseSize.
func Build(baseSize int) VoxelSet {
	h := Height(baseSize)
	s := VoxelSet{base: baseSize, height: h}
	if h == 0 {
		return s
	}

	total := 0
	for y := 0; y < h; y++ {
		if side := LayerSide(baseSize, y); side > 0 {
			total += side * side
		}
	}
	s.positions = make([]LatticePosition, 0, total)

	for y := 0; y < h; y++ {
		side := LayerSide(baseSize, y)
		if side <= 0 {
			continue
		}
		for x := 0; x < side; x++ {
			for z := 0; z < side; z++ {
				s.positions = append(s.positions, LatticePosition{X: x, Y: y, Z: z})
			}
		}
	}
	return s
}

func (s VoxelSet) BaseSize() int { return s.base }
func (s VoxelSet) Height() int   { return s.height }
func (s VoxelSet) Len() int      { return len(s.positions) }

// At returns the i-th voxel in generation order.
func (s VoxelSet) At(i int) LatticePosition { return s.positions[i] }

// Positions returns a copy of the voxel sequence.
func (s VoxelSet) Positions() []LatticePosition {
	out := make([]LatticePosition, len(s.positions))
	copy(out, s.positions)
	return out
}

// Layer returns the voxels with the given y, in generation order.
func (s VoxelSet) Layer(y int) []LatticePosition {
	var out []LatticePosition
	for _, p := range s.positions {
		if p.Y == y {
			out = append(out, p)
		}
	}
	return out
}

// Fingerprint hashes the ordered voxel sequence. Two sets share a
// fingerprint when they hold the same positions in the same order.
func (s VoxelSet) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [12]byte
	for _, p := range s.positions {
		binary.LittleEndian.PutUint32(buf[0:], uint32(int32(p.X)))
		binary.LittleEndian.PutUint32(buf[4:], uint32(int32(p.Y)))
		binary.LittleEndian.PutUint32(buf[8:], uint32(int32(p.Z)))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Place returns the world-space centre of p, with the pyramid centred on the
// origin and cells voxelSize apart.
func (s VoxelSet) Place(p LatticePosition, voxelSize float32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(p.X)*voxelSize - float32(s.base-1)*voxelSize/2,
		float32(p.Y)*voxelSize - float32(s.height-1)*voxelSize/2,
		float32(p.Z)*voxelSize - float32(s.base-1)*voxelSize/2,
	}
}

// Gradient colours a voxel by its relative position on each axis.
func (s VoxelSet) Gradient(p LatticePosition) mgl32.Vec4 {
	if s.base <= 0 || s.height <= 0 {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	return mgl32.Vec4{
		float32(p.X) / float32(s.base),
		float32(p.Y) / float32(s.height),
		float32(p.Z) / float32(s.base),
		1,
	}
}
