package rig

import (
	"github.com/Faultbox/golem/internal/engine/joint"
	"github.com/Faultbox/golem/pkg/math"
)

// FixedJoint is a joint pinning a child segment to the root at Anchor.
type FixedJoint struct {
	Rest      math.Vec3 // anchor with no motor offset
	Anchor    math.Vec3
	Stiffness float32
	Damping   float32
}

// Joints is a kinematic joint set. Motor targets are applied immediately as
// anchor offsets; there is no solver.
type Joints struct {
	joints map[joint.Handle]*FixedJoint
}

// NewJoints creates an empty joint set.
func NewJoints() *Joints {
	return &Joints{joints: make(map[joint.Handle]*FixedJoint)}
}

// Attach registers a joint at rest anchor.
func (j *Joints) Attach(h joint.Handle, rest math.Vec3) {
	j.joints[h] = &FixedJoint{Rest: rest, Anchor: rest}
}

// SetMotorTarget moves the anchor to rest + target. Unknown handles are ignored.
func (j *Joints) SetMotorTarget(h joint.Handle, target math.Vec3, stiffness, damping float32) {
	fj, ok := j.joints[h]
	if !ok {
		return
	}
	fj.Anchor = fj.Rest.Add(target)
	fj.Stiffness = stiffness
	fj.Damping = damping
}

// Joint returns the joint for h.
func (j *Joints) Joint(h joint.Handle) (FixedJoint, bool) {
	fj, ok := j.joints[h]
	if !ok {
		return FixedJoint{}, false
	}
	return *fj, true
}
