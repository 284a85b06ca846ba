package game

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/voxel-pyramid/internal/scene"
	"github.com/iburimskiy/voxel-pyramid/internal/tessellate"
)

const (
	// DrawTriangles takes uint16 indices.
	maxBatchVertices = 65535 - 65535%3

	ambient = 0.35
	diffuse = 0.65
)

var lightDir = mgl32.Vec3{0.3, 0.5, 1}.Normalize()

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// triangle is one screen-space triangle with the view depth it is sorted by.
type triangle struct {
	v     [3]ebiten.Vertex
	depth float32
}

// projected is a vertex after the MVP transform.
type projected struct {
	x, y, w float32
	ndcX    float32
	ndcY    float32
	ok      bool
}

// renderer draws frames without a depth buffer: triangles are sorted
// far-to-near and painted in that order.
type renderer struct {
	proj  scene.Projection
	shade bool

	tris  []triangle
	verts []ebiten.Vertex
	idx   []uint16
	scr   []projected
}

func (r *renderer) project(mvp mgl32.Mat4, v mgl32.Vec3, width, height int) projected {
	clip := mvp.Mul4x1(v.Vec4(1))
	if clip[3] < r.proj.Near {
		return projected{}
	}
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]
	return projected{
		x:    (nx + 1) / 2 * float32(width),
		y:    (1 - ny) / 2 * float32(height),
		w:    clip[3],
		ndcX: nx,
		ndcY: ny,
		ok:   true,
	}
}

func (r *renderer) shadeColor(c mgl32.Vec4, view mgl32.Mat4, n mgl32.Vec3) mgl32.Vec4 {
	vn := view.Mul4x1(n.Vec4(0)).Vec3()
	if l := vn.Len(); l > 0 {
		vn = vn.Mul(1 / l)
	}
	k := float32(ambient)
	if d := vn.Dot(lightDir); d > 0 {
		k += diffuse * d
	}
	return mgl32.Vec4{c[0] * k, c[1] * k, c[2] * k, c[3]}
}

func vertex(p projected, c mgl32.Vec4) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   p.x,
		DstY:   p.y,
		SrcX:   1,
		SrcY:   1,
		ColorR: c[0],
		ColorG: c[1],
		ColorB: c[2],
		ColorA: c[3],
	}
}

// build projects every primitive of f into r.tris, back to front.
func (r *renderer) build(f scene.Frame, width, height int) []triangle {
	r.tris = r.tris[:0]
	mvp := r.proj.Matrix().Mul4(f.View)

	for _, p := range f.Primitives {
		if p.Kind == tessellate.Points {
			r.addPoints(mvp, p, width, height)
			continue
		}

		r.scr = r.scr[:0]
		for _, v := range p.Vertices {
			r.scr = append(r.scr, r.project(mvp, v, width, height))
		}
		shaded := r.shade && len(p.Normals) == len(p.Vertices)
		closed := len(p.Normals) == len(p.Vertices)

		for _, t := range tessellate.Triangles(p) {
			a, b, c := r.scr[t[0]], r.scr[t[1]], r.scr[t[2]]
			if !a.ok || !b.ok || !c.ok {
				continue
			}
			// Counter-clockwise in NDC faces the camera.
			if closed && (b.ndcX-a.ndcX)*(c.ndcY-a.ndcY)-(c.ndcX-a.ndcX)*(b.ndcY-a.ndcY) <= 0 {
				continue
			}
			var tri triangle
			for k, i := range t {
				col := p.Color
				if shaded {
					col = r.shadeColor(col, f.View, p.Normals[i])
				}
				tri.v[k] = vertex(r.scr[i], col)
			}
			tri.depth = (a.w + b.w + c.w) / 3
			r.tris = append(r.tris, tri)
		}
	}

	sort.SliceStable(r.tris, func(i, j int) bool { return r.tris[i].depth > r.tris[j].depth })
	return r.tris
}

// addPoints draws each point as a square of side p.Size pixels.
func (r *renderer) addPoints(mvp mgl32.Mat4, p tessellate.Primitive, width, height int) {
	half := p.Size / 2
	if half < 0.5 {
		half = 0.5
	}
	for _, v := range p.Vertices {
		s := r.project(mvp, v, width, height)
		if !s.ok {
			continue
		}
		corner := func(dx, dy float32) ebiten.Vertex {
			return vertex(projected{x: s.x + dx, y: s.y + dy}, p.Color)
		}
		tl, tr, br, bl := corner(-half, -half), corner(half, -half), corner(half, half), corner(-half, half)
		r.tris = append(r.tris,
			triangle{v: [3]ebiten.Vertex{tl, tr, br}, depth: s.w},
			triangle{v: [3]ebiten.Vertex{tl, br, bl}, depth: s.w},
		)
	}
}

// draw paints f onto screen.
func (r *renderer) draw(screen *ebiten.Image, f scene.Frame) {
	b := screen.Bounds()
	tris := r.build(f, b.Dx(), b.Dy())
	src := whiteSource()
	opts := &ebiten.DrawTrianglesOptions{}

	r.verts, r.idx = r.verts[:0], r.idx[:0]
	flush := func() {
		if len(r.verts) > 0 {
			screen.DrawTriangles(r.verts, r.idx, src, opts)
		}
		r.verts, r.idx = r.verts[:0], r.idx[:0]
	}
	for _, t := range tris {
		if len(r.verts)+3 > maxBatchVertices {
			flush()
		}
		base := uint16(len(r.verts))
		r.verts = append(r.verts, t.v[0], t.v[1], t.v[2])
		r.idx = append(r.idx, base, base+1, base+2)
	}
	flush()
}
