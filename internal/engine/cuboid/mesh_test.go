package cuboid

import (
	"testing"

	"github.com/Faultbox/golem/pkg/math"
)

func golemHead() TileDescriptor {
	return TileDescriptor{
		HalfExtents: math.Splat(0.5),
		Grid:        Grid{Cols: 2, Rows: 2},
		Faces: [FaceCount]Cell{
			{1, 0}, {1, 1}, {1, 1}, {1, 1}, {0, 1}, {0, 1},
		},
	}
}

func TestBuildCounts(t *testing.T) {
	tests := []struct {
		name string
		desc TileDescriptor
	}{
		{"default", DefaultDescriptor()},
		{"zero value", TileDescriptor{}},
		{"head", golemHead()},
		{"flattened", UniformDescriptor(math.Vec3{X: 100, Y: 0, Z: 100}, Grid{4, 4}, Cell{3, 3})},
		{"out of range cells", UniformDescriptor(math.Splat(1), Grid{2, 2}, Cell{5, -1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := Build(tt.desc)
			if len(mesh.Vertices) != VertexCount {
				t.Errorf("expected %d vertices, got %d", VertexCount, len(mesh.Vertices))
			}
			if len(mesh.Indices) != IndexCount {
				t.Errorf("expected %d indices, got %d", IndexCount, len(mesh.Indices))
			}
			for i, idx := range mesh.Indices {
				if int(idx) >= len(mesh.Vertices) {
					t.Errorf("index %d references vertex %d out of range", i, idx)
				}
			}
		})
	}
}

func TestBuildTopologyFixed(t *testing.T) {
	a := Build(DefaultDescriptor())
	b := Build(golemHead())

	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("index buffer differs at %d: %d vs %d", i, a.Indices[i], b.Indices[i])
		}
	}

	want := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	for i, w := range want {
		if a.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, a.Indices[i], w)
		}
	}
}

func TestFaceNormals(t *testing.T) {
	mesh := Build(golemHead())

	want := map[Face][3]float32{
		FaceFront:  {0, 0, 1},
		FaceBack:   {0, 0, -1},
		FaceRight:  {1, 0, 0},
		FaceLeft:   {-1, 0, 0},
		FaceTop:    {0, 1, 0},
		FaceBottom: {0, -1, 0},
	}

	for f, n := range want {
		for _, v := range mesh.FaceVertices(f) {
			if v.Normal != n {
				t.Errorf("%s normal = %v, want %v", f, v.Normal, n)
			}
		}
	}
}

func TestFacePositionsLieOnFace(t *testing.T) {
	half := math.Vec3{X: 1, Y: 2, Z: 3}
	mesh := Build(UniformDescriptor(half, Grid{1, 1}, Cell{}))

	for f := Face(0); f < FaceCount; f++ {
		n := f.Normal()
		// Distance along the normal must equal the half extent on that axis.
		wantDist := absf(n.Dot(half))
		for _, v := range mesh.FaceVertices(f) {
			p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
			if d := p.Dot(n); d != wantDist {
				t.Errorf("%s vertex %v at distance %v, want %v", f, v.Position, d, wantDist)
			}
		}
	}
}

func TestTrianglesFaceOutward(t *testing.T) {
	mesh := Build(DefaultDescriptor())

	for tri := 0; tri < IndexCount; tri += 3 {
		a := toVec(mesh.Vertices[mesh.Indices[tri]].Position)
		b := toVec(mesh.Vertices[mesh.Indices[tri+1]].Position)
		c := toVec(mesh.Vertices[mesh.Indices[tri+2]].Position)
		n := toVec(mesh.Vertices[mesh.Indices[tri]].Normal)

		geom := b.Sub(a).Cross(c.Sub(a))
		if geom.Dot(n) <= 0 {
			t.Errorf("triangle %d winds inward (geometric normal %v, face normal %v)", tri/3, geom, n)
		}
	}
}

func TestUVRectangleCorners(t *testing.T) {
	desc := golemHead()
	desc.Grid = Grid{Cols: 4, Rows: 2}
	mesh := Build(desc)

	for f := Face(0); f < FaceCount; f++ {
		cell := desc.Faces[f]
		u0, u1 := float32(cell.Col)/4, float32(cell.Col+1)/4
		v0, v1 := float32(cell.Row)/2, float32(cell.Row+1)/2

		seen := map[[2]float32]bool{}
		for _, v := range mesh.FaceVertices(f) {
			uv := v.TexCoord
			if (uv[0] != u0 && uv[0] != u1) || (uv[1] != v0 && uv[1] != v1) {
				t.Errorf("%s uv %v is not a corner of [%v,%v]x[%v,%v]", f, uv, u0, u1, v0, v1)
			}
			seen[uv] = true
		}
		if len(seen) != 4 {
			t.Errorf("%s uses %d distinct uv corners, want 4", f, len(seen))
		}
	}
}

// TestUVOrientation pins the exact corner-to-UV pairing, which keeps atlas art
// upright and unmirrored across faces.
func TestUVOrientation(t *testing.T) {
	mesh := Build(DefaultDescriptor())

	want := [FaceCount][VerticesPerFace][2]float32{
		FaceFront:  {{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		FaceBack:   {{1, 0}, {0, 0}, {0, 1}, {1, 1}},
		FaceRight:  {{1, 1}, {1, 0}, {0, 0}, {0, 1}},
		FaceLeft:   {{1, 1}, {1, 0}, {0, 0}, {0, 1}},
		FaceTop:    {{1, 0}, {0, 0}, {0, 1}, {1, 1}},
		FaceBottom: {{1, 1}, {0, 1}, {0, 0}, {1, 0}},
	}

	for f := Face(0); f < FaceCount; f++ {
		for i, v := range mesh.FaceVertices(f) {
			if v.TexCoord != want[f][i] {
				t.Errorf("%s vertex %d uv = %v, want %v", f, i, v.TexCoord, want[f][i])
			}
		}
	}
}

func TestFrontFaceCornerPositions(t *testing.T) {
	mesh := Build(DefaultDescriptor())

	want := [VerticesPerFace][3]float32{
		{-0.5, -0.5, 0.5},
		{0.5, -0.5, 0.5},
		{0.5, 0.5, 0.5},
		{-0.5, 0.5, 0.5},
	}
	for i, v := range mesh.FaceVertices(FaceFront) {
		if v.Position != want[i] {
			t.Errorf("front vertex %d = %v, want %v", i, v.Position, want[i])
		}
	}
}

func TestDefaultSpansFullTexture(t *testing.T) {
	for _, desc := range []TileDescriptor{DefaultDescriptor(), {HalfExtents: math.Splat(1)}} {
		for f := Face(0); f < FaceCount; f++ {
			rect := desc.CellRect(f)
			if rect.Min != (math.Vec2{}) || rect.Max != (math.Vec2{X: 1, Y: 1}) {
				t.Errorf("%s rect = %+v, want full [0,1] range", f, rect)
			}
		}
	}
}

func TestCellRectOutOfRange(t *testing.T) {
	desc := UniformDescriptor(math.Splat(0.5), Grid{2, 2}, Cell{3, -1})
	rect := desc.CellRect(FaceTop)

	if rect.Min.X != 1.5 || rect.Max.X != 2 {
		t.Errorf("u span = [%v,%v], want [1.5,2]", rect.Min.X, rect.Max.X)
	}
	if rect.Min.Y != -0.5 || rect.Max.Y != 0 {
		t.Errorf("v span = [%v,%v], want [-0.5,0]", rect.Min.Y, rect.Max.Y)
	}
}

func TestAttributeArrays(t *testing.T) {
	mesh := Build(golemHead())

	positions := mesh.Positions()
	normals := mesh.Normals()
	uvs := mesh.TexCoords()
	if len(positions) != VertexCount || len(normals) != VertexCount || len(uvs) != VertexCount {
		t.Fatalf("attribute lengths = %d/%d/%d, want %d", len(positions), len(normals), len(uvs), VertexCount)
	}
	for i, v := range mesh.Vertices {
		if positions[i] != v.Position || normals[i] != v.Normal || uvs[i] != v.TexCoord {
			t.Errorf("attribute arrays disagree with vertex %d", i)
		}
	}
}

func TestBounds(t *testing.T) {
	mesh := Build(UniformDescriptor(math.Vec3{X: 100, Y: 0.1, Z: 100}, Grid{1, 1}, Cell{}))
	b := mesh.Bounds()

	if b.Min != [3]float32{-100, -0.1, -100} || b.Max != [3]float32{100, 0.1, 100} {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestBuildDoesNotShareBuffers(t *testing.T) {
	a := Build(DefaultDescriptor())
	b := Build(DefaultDescriptor())

	a.Vertices[0].Position[0] = 42
	a.Indices[0] = 7
	if b.Vertices[0].Position[0] == 42 || b.Indices[0] == 7 {
		t.Error("meshes from separate Build calls share storage")
	}
}

func TestFaceString(t *testing.T) {
	if FaceBottom.String() != "bottom" {
		t.Errorf("FaceBottom.String() = %q", FaceBottom.String())
	}
	if Face(9).String() != "unknown" {
		t.Errorf("Face(9).String() = %q", Face(9).String())
	}
}

func toVec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
