package rig

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/golem/internal/engine/cuboid"
	"github.com/Faultbox/golem/internal/engine/joint"
	"github.com/Faultbox/golem/internal/logger"
	"github.com/Faultbox/golem/pkg/math"
)

// MeshRegistry accepts built meshes and returns an opaque handle.
type MeshRegistry interface {
	RegisterMesh(name string, mesh *cuboid.Mesh) (uint32, error)
}

// Part is an assembled segment.
type Part struct {
	Segment
	Mesh  uint32       // handle from the MeshRegistry
	Joint joint.Handle // zero for the root
	Slot  int          // controller slot, -1 for the root
}

// Rig is an assembled golem.
type Rig struct {
	def    *Definition
	root   math.Vec3
	parts  []Part
	joints *Joints
	ctrl   *joint.Controller[math.Vec3]
	log    *zap.Logger
}

// Assemble builds one mesh per segment, registers it, and wires every
// non-root segment to a fixed joint driven by the controller.
func Assemble(def *Definition, params joint.Params, meshes MeshRegistry) (*Rig, error) {
	r := &Rig{
		def:    def,
		root:   def.Start,
		joints: NewJoints(),
		ctrl:   joint.NewController(def.Table(), params),
		log:    logger.Named("rig"),
	}

	for i, seg := range def.Segments {
		handle, err := meshes.RegisterMesh(seg.Name, cuboid.Build(seg.Tiles))
		if err != nil {
			return nil, fmt.Errorf("registering mesh for %s: %w", seg.Name, err)
		}

		part := Part{Segment: seg, Mesh: handle, Slot: -1}
		if i > 0 {
			part.Joint = joint.Handle(i)
			r.joints.Attach(part.Joint, seg.Offset)
			part.Slot, err = r.ctrl.Add(seg.Index, part.Joint, seg.Stiffness)
			if err != nil {
				return nil, fmt.Errorf("attaching %s: %w", seg.Name, err)
			}
		}
		r.parts = append(r.parts, part)

		r.log.Debug("segment assembled",
			zap.String("name", seg.Name),
			zap.Int("index", seg.Index),
			zap.Uint32("mesh", handle),
		)
	}

	r.log.Info("rig assembled",
		zap.Int("segments", len(r.parts)),
		zap.Float32("rate", params.Rate),
	)
	return r, nil
}

// Update advances every driven segment and flushes changed targets into the
// joint set. It returns the number of motor writes.
func (r *Rig) Update(in joint.Input, dt time.Duration) int {
	if !in.Active() {
		return 0
	}

	for _, p := range r.parts {
		if p.Slot < 0 {
			continue
		}
		before := r.ctrl.Segment(p.Slot)
		r.ctrl.TickSegment(p.Slot, in, dt)
		if before.Blend == 0 {
			r.log.Debug("sweep started",
				zap.String("segment", p.Name),
				zap.Bool("increase", in.Increase),
			)
		}
	}

	n := r.ctrl.Flush(r.joints)
	r.log.Debug("motor targets flushed", zap.Int("writes", n))
	return n
}

// Reset lifts the rig one unit and recenters it over the origin.
func (r *Rig) Reset() {
	r.root = math.Vec3{X: 0, Y: r.root.Y + 1, Z: 0}
	r.log.Info("rig reset", zap.Float32("y", r.root.Y))
}

// Root returns the root segment position.
func (r *Rig) Root() math.Vec3 {
	return r.root
}

// SetRoot places the root segment.
func (r *Rig) SetRoot(p math.Vec3) {
	r.root = p
}

// Parts returns the assembled segments in definition order.
func (r *Rig) Parts() []Part {
	return r.parts
}

// Position returns the world position of part i.
func (r *Rig) Position(i int) math.Vec3 {
	p := r.parts[i]
	if p.Slot < 0 {
		return r.root
	}
	fj, _ := r.joints.Joint(p.Joint)
	return r.root.Add(fj.Anchor)
}

// State returns the blend state of part i. The root reports a zero segment.
func (r *Rig) State(i int) joint.Segment {
	p := r.parts[i]
	if p.Slot < 0 {
		return joint.Segment{Index: p.Index}
	}
	return r.ctrl.Segment(p.Slot)
}

// Joints returns the rig's joint set.
func (r *Rig) Joints() *Joints {
	return r.joints
}
