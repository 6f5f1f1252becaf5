package rig

import (
	"github.com/Faultbox/golem/internal/engine/cuboid"
	"github.com/Faultbox/golem/internal/engine/debug"
	"github.com/Faultbox/golem/pkg/math"
)

// AtlasGrid returns the smallest grid that covers every segment's tiling.
func (d *Definition) AtlasGrid() cuboid.Grid {
	grid := cuboid.Grid{Cols: 1, Rows: 1}
	for _, s := range d.Segments {
		grid.Cols = max(grid.Cols, s.Tiles.Grid.Cols)
		grid.Rows = max(grid.Rows, s.Tiles.Grid.Rows)
	}
	return grid
}

// Model returns the model matrix of part i.
func (r *Rig) Model(i int) math.Mat4 {
	return math.TranslateVec(r.Position(i))
}

// Colliders appends a wireframe box for every part's collider.
func (r *Rig) Colliders(dst []debug.LineVertex) []debug.LineVertex {
	for i, p := range r.parts {
		dst = debug.BoxWireframe(dst, r.Position(i), p.Collider, debug.ColliderColor)
	}
	return dst
}
