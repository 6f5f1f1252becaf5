// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/golem/pkg/math"

// LineVertex is one endpoint of a colored debug line.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// ColliderColor is the default wireframe color for colliders.
var ColliderColor = [3]float32{0.2, 1.0, 0.35}

// BoxWireframe appends the 12 edges of an axis-aligned box centered at
// center with the given half extents. Negative extents are mirrored.
func BoxWireframe(dst []LineVertex, center, half math.Vec3, color [3]float32) []LineVertex {
	half = math.Vec3{X: abs(half.X), Y: abs(half.Y), Z: abs(half.Z)}
	lo := center.Sub(half)
	hi := center.Add(half)

	corner := func(x, y, z bool) LineVertex {
		p := lo
		if x {
			p.X = hi.X
		}
		if y {
			p.Y = hi.Y
		}
		if z {
			p.Z = hi.Z
		}
		return LineVertex{Position: p.Array(), Color: color}
	}

	for _, y := range []bool{false, true} {
		dst = append(dst,
			corner(false, y, false), corner(true, y, false),
			corner(true, y, false), corner(true, y, true),
			corner(true, y, true), corner(false, y, true),
			corner(false, y, true), corner(false, y, false),
		)
	}
	for _, c := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		dst = append(dst, corner(c[0], false, c[1]), corner(c[0], true, c[1]))
	}
	return dst
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
