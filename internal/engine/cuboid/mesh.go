package cuboid

import (
	"github.com/Faultbox/golem/pkg/math"
)

// corner pairs a box corner with a corner of the face's UV rectangle.
// Each component is 0 for min and 1 for max.
type corner struct {
	pos [3]uint8
	uv  [2]uint8
}

// faceCorners fixes the vertex order and UV orientation of every face for a
// Y-up right-handed frame viewed from +Z. Textures read upright on the four
// side faces; top and bottom keep V running toward +Z.
var faceCorners = [FaceCount][VerticesPerFace]corner{
	FaceFront: {
		{pos: [3]uint8{0, 0, 1}, uv: [2]uint8{0, 1}},
		{pos: [3]uint8{1, 0, 1}, uv: [2]uint8{1, 1}},
		{pos: [3]uint8{1, 1, 1}, uv: [2]uint8{1, 0}},
		{pos: [3]uint8{0, 1, 1}, uv: [2]uint8{0, 0}},
	},
	FaceBack: {
		{pos: [3]uint8{0, 1, 0}, uv: [2]uint8{1, 0}},
		{pos: [3]uint8{1, 1, 0}, uv: [2]uint8{0, 0}},
		{pos: [3]uint8{1, 0, 0}, uv: [2]uint8{0, 1}},
		{pos: [3]uint8{0, 0, 0}, uv: [2]uint8{1, 1}},
	},
	FaceRight: {
		{pos: [3]uint8{1, 0, 0}, uv: [2]uint8{1, 1}},
		{pos: [3]uint8{1, 1, 0}, uv: [2]uint8{1, 0}},
		{pos: [3]uint8{1, 1, 1}, uv: [2]uint8{0, 0}},
		{pos: [3]uint8{1, 0, 1}, uv: [2]uint8{0, 1}},
	},
	FaceLeft: {
		{pos: [3]uint8{0, 0, 1}, uv: [2]uint8{1, 1}},
		{pos: [3]uint8{0, 1, 1}, uv: [2]uint8{1, 0}},
		{pos: [3]uint8{0, 1, 0}, uv: [2]uint8{0, 0}},
		{pos: [3]uint8{0, 0, 0}, uv: [2]uint8{0, 1}},
	},
	FaceTop: {
		{pos: [3]uint8{1, 1, 0}, uv: [2]uint8{1, 0}},
		{pos: [3]uint8{0, 1, 0}, uv: [2]uint8{0, 0}},
		{pos: [3]uint8{0, 1, 1}, uv: [2]uint8{0, 1}},
		{pos: [3]uint8{1, 1, 1}, uv: [2]uint8{1, 1}},
	},
	FaceBottom: {
		{pos: [3]uint8{1, 0, 1}, uv: [2]uint8{1, 1}},
		{pos: [3]uint8{0, 0, 1}, uv: [2]uint8{0, 1}},
		{pos: [3]uint8{0, 0, 0}, uv: [2]uint8{0, 0}},
		{pos: [3]uint8{1, 0, 0}, uv: [2]uint8{1, 0}},
	},
}

// faceIndices is the triangle pair for one 4-vertex face block.
var faceIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// Build creates the 24-vertex, 36-index mesh for the descriptor.
// It never fails; zero extents give a flattened box.
func Build(d TileDescriptor) *Mesh {
	minP := d.HalfExtents.Neg().Array()
	maxP := d.HalfExtents.Array()

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, VertexCount),
		Indices:  make([]uint32, 0, IndexCount),
	}

	for f := Face(0); f < FaceCount; f++ {
		rect := d.CellRect(f)
		uvMin := rect.Min.Array()
		uvMax := rect.Max.Array()
		normal := f.Normal().Array()
		base := uint32(len(mesh.Vertices))

		for _, c := range faceCorners[f] {
			var v Vertex
			for axis := 0; axis < 3; axis++ {
				v.Position[axis] = pick(minP[axis], maxP[axis], c.pos[axis])
			}
			v.Normal = normal
			v.TexCoord = [2]float32{
				pick(uvMin[0], uvMax[0], c.uv[0]),
				pick(uvMin[1], uvMax[1], c.uv[1]),
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		for _, idx := range faceIndices {
			mesh.Indices = append(mesh.Indices, base+idx)
		}
	}

	return mesh
}

// CellRect returns the UV rectangle sampled by face f:
// u in [c/cols, (c+1)/cols], v in [r/rows, (r+1)/rows].
// A grid axis of zero or less yields the full [0,1] range on that axis.
func (d TileDescriptor) CellRect(f Face) UVRect {
	cell := d.Faces[f]
	u0, u1 := cellSpan(cell.Col, d.Grid.Cols)
	v0, v1 := cellSpan(cell.Row, d.Grid.Rows)
	return UVRect{
		Min: math.Vec2{X: u0, Y: v0},
		Max: math.Vec2{X: u1, Y: v1},
	}
}

func cellSpan(index, count int) (float32, float32) {
	if count <= 0 {
		return 0, 1
	}
	n := float32(count)
	return float32(index) / n, float32(index+1) / n
}

func pick(lo, hi float32, sel uint8) float32 {
	if sel == 0 {
		return lo
	}
	return hi
}

// Positions returns the vertex positions in order.
func (m *Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i := range m.Vertices {
		out[i] = m.Vertices[i].Position
	}
	return out
}

// Normals returns the vertex normals in order.
func (m *Mesh) Normals() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i := range m.Vertices {
		out[i] = m.Vertices[i].Normal
	}
	return out
}

// TexCoords returns the vertex texture coordinates in order.
func (m *Mesh) TexCoords() [][2]float32 {
	out := make([][2]float32, len(m.Vertices))
	for i := range m.Vertices {
		out[i] = m.Vertices[i].TexCoord
	}
	return out
}

// FaceVertices returns the four vertices of face f.
func (m *Mesh) FaceVertices(f Face) []Vertex {
	start := int(f) * VerticesPerFace
	return m.Vertices[start : start+VerticesPerFace]
}

// Bounds returns the axis-aligned bounds of the mesh.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v.Position[axis] < b.Min[axis] {
				b.Min[axis] = v.Position[axis]
			}
			if v.Position[axis] > b.Max[axis] {
				b.Max[axis] = v.Position[axis]
			}
		}
	}
	return b
}
