// Package export writes tessellated voxels to binary glTF.
package export

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/iburimskiy/voxel-pyramid/internal/tessellate"
)

// Generator is stored in the asset header of exported files.
const Generator = "voxel-pyramid -> GLB"

// Mesh is an indexed triangle list with per-vertex attributes.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Colors    [][4]float32
	Indices   []uint32
}

// BuildMesh flattens prims into one triangle list. Point primitives are
// skipped; primitives without normals get flat per-triangle normals.
func BuildMesh(prims []tessellate.Primitive) Mesh {
	var m Mesh
	for _, p := range prims {
		tris := tessellate.Triangles(p)
		if len(tris) == 0 {
			continue
		}
		base := uint32(len(m.Positions))
		for i, v := range p.Vertices {
			m.Positions = append(m.Positions, [3]float32(v))
			var n [3]float32
			if i < len(p.Normals) {
				n = [3]float32(p.Normals[i])
			}
			m.Normals = append(m.Normals, n)
			m.Colors = append(m.Colors, [4]float32(p.Color))
		}
		for _, t := range tris {
			m.Indices = append(m.Indices, base+uint32(t[0]), base+uint32(t[1]), base+uint32(t[2]))
			if len(p.Normals) == 0 {
				flatNormal(&m, base, t)
			}
		}
	}
	return m
}

func flatNormal(m *Mesh, base uint32, t [3]int) {
	p0 := m.Positions[base+uint32(t[0])]
	p1 := m.Positions[base+uint32(t[1])]
	p2 := m.Positions[base+uint32(t[2])]
	u := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	v := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := [3]float32{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	for _, i := range t {
		m.Normals[base+uint32(i)] = n
	}
}

// WriteGLB saves prims as a single-mesh binary glTF at path.
func WriteGLB(path string, prims []tessellate.Primitive) error {
	mesh := BuildMesh(prims)
	if len(mesh.Indices) == 0 {
		return errors.New("export: nothing to write")
	}

	hasAlpha := false
	for _, c := range mesh.Colors {
		if c[3] < 1.0 {
			hasAlpha = true
			break
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator

	posAccessor := modeler.WritePosition(doc, mesh.Positions)
	normalAccessor := modeler.WriteNormal(doc, mesh.Normals)
	colorAccessor := modeler.WriteColor(doc, mesh.Colors)
	indicesAccessor := modeler.WriteIndices(doc, mesh.Indices)

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}

	material := &gltf.Material{
		Name: "VoxelGradient",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		AlphaMode: gltf.AlphaOpaque,
	}
	if hasAlpha {
		material.AlphaMode = gltf.AlphaBlend
	}
	doc.Materials = []*gltf.Material{material}

	doc.Meshes = []*gltf.Mesh{{Name: "Pyramid", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "Pyramid", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
