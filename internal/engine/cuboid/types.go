// Package cuboid builds textured box meshes whose faces sample cells of a tile atlas.
package cuboid

import (
	"github.com/Faultbox/golem/pkg/math"
)

// Face identifies one side of a cuboid. The order is fixed and matches the
// vertex blocks emitted by Build.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceRight
	FaceLeft
	FaceTop
	FaceBottom
)

// FaceCount is the number of faces on a cuboid.
const FaceCount = 6

var faceNames = [FaceCount]string{"front", "back", "right", "left", "top", "bottom"}

var faceNormals = [FaceCount]math.Vec3{
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return "unknown"
	}
	return faceNames[f]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() math.Vec3 {
	return faceNormals[f]
}

// Grid is the atlas layout in cells.
type Grid struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Cell addresses one atlas cell. Out-of-range cells are legal and map outside [0,1].
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// TileDescriptor describes a cuboid and which atlas cell each face samples.
//
// The zero value is usable: a zero grid axis maps every face to the full
// [0,1] texture range, so TileDescriptor{HalfExtents: ...} renders the whole
// atlas on all six faces.
type TileDescriptor struct {
	HalfExtents math.Vec3
	Grid        Grid
	Faces       [FaceCount]Cell // indexed by Face
}

// DefaultDescriptor returns a unit cube with a 1x1 grid.
func DefaultDescriptor() TileDescriptor {
	return TileDescriptor{
		HalfExtents: math.Splat(0.5),
		Grid:        Grid{Cols: 1, Rows: 1},
	}
}

// UniformDescriptor returns a descriptor where every face samples the same cell.
func UniformDescriptor(halfExtents math.Vec3, grid Grid, cell Cell) TileDescriptor {
	d := TileDescriptor{HalfExtents: halfExtents, Grid: grid}
	for i := range d.Faces {
		d.Faces[i] = cell
	}
	return d
}

// UVRect is an axis-aligned rectangle in texture space.
type UVRect struct {
	Min math.Vec2
	Max math.Vec2
}

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh is the output of Build. It owns its slices; nothing else references them.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

const (
	// VerticesPerFace is the number of unshared vertices emitted per face.
	VerticesPerFace = 4
	// VertexCount is the number of vertices in every cuboid mesh.
	VertexCount = VerticesPerFace * FaceCount
	// IndexCount is the number of triangle indices in every cuboid mesh.
	IndexCount = 6 * FaceCount
)
