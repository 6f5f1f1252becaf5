// Package joint converts discrete increase/decrease input into smoothly
// blended motor targets for an articulated rig.
//
// Each segment carries two weights. Alpha is the position within the current
// sweep between the segment's From and To targets; reversing input moves it
// back from wherever it is. Blend scales the interpolated value and ramps in
// from zero on the first press so the joint never jumps a full step.
package joint

import (
	"errors"
)

// DefaultRate is the alpha sweep rate in units per second.
const DefaultRate = 3.0

// Damping is the damping term passed with every motor write.
const Damping = 0

// ErrUnknownSegment is returned when a segment index has no entry in the rig table.
var ErrUnknownSegment = errors.New("segment index not in rig table")

// Blendable is a motor target that can be interpolated and weighted.
// Scalar (single joint axis) and math.Vec3 (anchor offset) satisfy it.
type Blendable[T any] interface {
	Lerp(to T, t float32) T
	Scale(s float32) T
}

// Scalar is a one-dimensional motor target.
type Scalar float32

// Lerp interpolates linearly from s to to.
func (s Scalar) Lerp(to Scalar, t float32) Scalar {
	return s + (to-s)*Scalar(t)
}

// Scale returns s * k.
func (s Scalar) Scale(k float32) Scalar {
	return s * Scalar(k)
}

// Range holds the interpolation endpoints of one segment.
type Range[T any] struct {
	From T `yaml:"from"`
	To   T `yaml:"to"`
}

// Table maps segment index to its endpoints. It describes the rig topology
// and does not change after the rig is defined.
type Table[T any] map[int]Range[T]

// Input is the per-tick directional signal. Increase wins when both are set.
type Input struct {
	Increase bool
	Decrease bool
}

// Active reports whether either direction is held.
func (in Input) Active() bool {
	return in.Increase || in.Decrease
}

// Handle addresses a physics joint owned by the host.
type Handle uint32

// Motor is the physics-side sink for motor targets.
type Motor[T any] interface {
	SetMotorTarget(h Handle, target T, stiffness, damping float32)
}

// MotorFunc adapts a function to the Motor interface.
type MotorFunc[T any] func(h Handle, target T, stiffness, damping float32)

// SetMotorTarget calls f.
func (f MotorFunc[T]) SetMotorTarget(h Handle, target T, stiffness, damping float32) {
	f(h, target, stiffness, damping)
}

// Params holds the sweep rates shared by all segments of a controller.
type Params struct {
	// Rate is how fast alpha moves, per second.
	Rate float32
	// BlendRate is how fast blend rises, per second. Zero means Rate.
	BlendRate float32
}

// DefaultParams returns Params with DefaultRate for both alpha and blend.
func DefaultParams() Params {
	return Params{Rate: DefaultRate}
}

func (p Params) blendRate() float32 {
	if p.BlendRate > 0 {
		return p.BlendRate
	}
	return p.Rate
}

// TargetChanged reports that a segment's motor target needs rewriting.
type TargetChanged struct {
	Slot   int // position in the controller
	Index  int // rig table index
	Handle Handle
}
