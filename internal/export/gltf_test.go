package export

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/iburimskiy/voxel-pyramid/internal/tessellate"
)

func TestBuildMeshSphere(t *testing.T) {
	prims := tessellate.Tessellator{Mode: tessellate.SphereMode, Slices: 4, Stacks: 3}.
		Voxel(mgl32.Vec3{}, 1, mgl32.Vec4{0.5, 0.5, 0.5, 1})
	m := BuildMesh(prims)
	// 4 strips of 8 vertices, 6 triangles each
	if len(m.Positions) != 32 || len(m.Normals) != 32 || len(m.Colors) != 32 {
		t.Fatalf("attributes: %d/%d/%d, want 32", len(m.Positions), len(m.Normals), len(m.Colors))
	}
	if len(m.Indices) != 4*6*3 {
		t.Fatalf("indices = %d, want %d", len(m.Indices), 4*6*3)
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Positions) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestBuildMeshSkipsPointsAndFillsNormals(t *testing.T) {
	pts := tessellate.Primitive{Kind: tessellate.Points, Vertices: []mgl32.Vec3{{1, 2, 3}}}
	quad := tessellate.Primitive{
		Kind:     tessellate.Quads,
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Color:    mgl32.Vec4{1, 0, 0, 1},
	}
	m := BuildMesh([]tessellate.Primitive{pts, quad})
	if len(m.Positions) != 4 || len(m.Indices) != 6 {
		t.Fatalf("positions %d indices %d, want 4 and 6", len(m.Positions), len(m.Indices))
	}
	for i, n := range m.Normals {
		if n[2] <= 0 || n[0] != 0 || n[1] != 0 {
			t.Fatalf("normal %d = %v, want +Z", i, n)
		}
	}
}

func TestWriteGLB(t *testing.T) {
	prims := tessellate.Cube(mgl32.Vec3{}, 0.4)
	prims[0].Color = mgl32.Vec4{0.2, 0.4, 0.6, 1}
	path := filepath.Join(t.TempDir(), "pyramid.glb")
	if err := WriteGLB(path, prims); err != nil {
		t.Fatalf("WriteGLB: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("gltf.Open: %v", err)
	}
	if doc.Asset.Generator != Generator {
		t.Fatalf("generator = %q", doc.Asset.Generator)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("meshes = %d, want one mesh with one primitive", len(doc.Meshes))
	}
	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	if uint64(pos.Count) != 24 {
		t.Fatalf("position count = %d, want 24", pos.Count)
	}
	idx := doc.Accessors[*prim.Indices]
	if uint64(idx.Count) != 36 {
		t.Fatalf("index count = %d, want 36", idx.Count)
	}
	if _, ok := prim.Attributes[gltf.COLOR_0]; !ok {
		t.Fatal("primitive has no vertex colours")
	}
	if doc.Materials[0].AlphaMode != gltf.AlphaOpaque {
		t.Fatalf("alpha mode = %v, want opaque", doc.Materials[0].AlphaMode)
	}
	// White is the default factor, so a decoder may leave it unset.
	if f := doc.Materials[0].PBRMetallicRoughness.BaseColorFactor; f != nil && *f != [4]float64{1, 1, 1, 1} {
		t.Fatalf("base colour factor = %v, want white", f)
	}
	if len(doc.Scenes) != 1 || len(doc.Scenes[0].Nodes) != 1 || doc.Scenes[0].Nodes[0] != 0 {
		t.Fatalf("scene nodes = %v, want [0]", doc.Scenes[0].Nodes)
	}
	if n := doc.Nodes[0]; n.Mesh == nil || *n.Mesh != 0 {
		t.Fatalf("node mesh = %v, want 0", n.Mesh)
	}
}

func TestWriteGLBEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	pts := []tessellate.Primitive{{Kind: tessellate.Points, Vertices: []mgl32.Vec3{{}}}}
	if err := WriteGLB(path, pts); err == nil {
		t.Fatal("WriteGLB with only points err = nil")
	}
}
