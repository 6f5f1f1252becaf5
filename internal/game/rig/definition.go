// Package rig assembles the golem: a root segment with child segments held
// by fixed joints whose anchors are driven by a joint blend controller.
package rig

import (
	"errors"
	"fmt"

	"github.com/Faultbox/golem/internal/config"
	"github.com/Faultbox/golem/internal/engine/cuboid"
	"github.com/Faultbox/golem/internal/engine/joint"
	"github.com/Faultbox/golem/pkg/math"
)

var (
	// ErrNoSegments is returned for a rig without segments.
	ErrNoSegments = errors.New("rig has no segments")
	// ErrBadExtents is returned when a segment has a non-positive half extent.
	ErrBadExtents = errors.New("half extents must be positive")
)

// Segment is the static description of one rig segment.
type Segment struct {
	Name      string
	Index     int
	Offset    math.Vec3 // joint anchor on the root at rest
	Targets   joint.Range[math.Vec3]
	Stiffness float32
	Tiles     cuboid.TileDescriptor
	Collider  math.Vec3 // collider half extents
}

// Definition is a validated rig. The first segment is the root.
type Definition struct {
	Start    math.Vec3
	Segments []Segment
}

// FromConfig converts and validates a rig configuration.
func FromConfig(cfg config.RigConfig) (*Definition, error) {
	if len(cfg.Segments) == 0 {
		return nil, ErrNoSegments
	}

	def := &Definition{
		Start:    vec(cfg.Start),
		Segments: make([]Segment, 0, len(cfg.Segments)),
	}
	seen := make(map[int]string, len(cfg.Segments))

	for i, sc := range cfg.Segments {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("segment%d", sc.Index)
		}
		if prev, dup := seen[sc.Index]; dup {
			return nil, fmt.Errorf("segment %q: index %d already used by %q", name, sc.Index, prev)
		}
		seen[sc.Index] = name

		half := vec(sc.HalfExtents)
		if half.X <= 0 || half.Y <= 0 || half.Z <= 0 {
			return nil, fmt.Errorf("segment %q: %w (got %v)", name, ErrBadExtents, sc.HalfExtents)
		}
		if sc.Stiffness < 0 {
			return nil, fmt.Errorf("segment %q: stiffness must not be negative", name)
		}
		if i == 0 && sc.Offset != [3]float32{} {
			return nil, fmt.Errorf("segment %q: root offset must be zero", name)
		}

		collider := vec(sc.Collider)
		if collider == (math.Vec3{}) {
			collider = half
		}

		def.Segments = append(def.Segments, Segment{
			Name:      name,
			Index:     sc.Index,
			Offset:    vec(sc.Offset),
			Targets:   joint.Range[math.Vec3]{From: vec(sc.From), To: vec(sc.To)},
			Stiffness: sc.Stiffness,
			Tiles:     tiles(half, sc.Grid, sc.Faces),
			Collider:  collider,
		})
	}

	return def, nil
}

// Table returns the joint target table keyed by segment index.
func (d *Definition) Table() joint.Table[math.Vec3] {
	table := make(joint.Table[math.Vec3], len(d.Segments))
	for _, s := range d.Segments {
		table[s.Index] = s.Targets
	}
	return table
}

func tiles(half math.Vec3, grid [2]int, faces [6][2]int) cuboid.TileDescriptor {
	d := cuboid.TileDescriptor{
		HalfExtents: half,
		Grid:        cuboid.Grid{Cols: grid[0], Rows: grid[1]},
	}
	for f, cell := range faces {
		d.Faces[f] = cuboid.Cell{Col: cell[0], Row: cell[1]}
	}
	return d
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
