package joint

import (
	"fmt"
	"slices"
	"time"
)

type binding struct {
	seg    Segment
	handle Handle
	queued bool
}

// Controller drives a set of segments that share one rig table.
//
// Tick updates segment state and queues a TargetChanged for every segment
// whose target moved. Flush drains the queue into a Motor, so motor writes
// can be batched by the host loop instead of happening inside Tick.
// A Controller is not safe for concurrent use.
type Controller[T Blendable[T]] struct {
	table   Table[T]
	params  Params
	slots   []binding
	pending []TargetChanged
}

// NewController creates a controller over the given rig table.
func NewController[T Blendable[T]](table Table[T], params Params) *Controller[T] {
	return &Controller[T]{
		table:  table,
		params: params,
	}
}

// Add registers a segment reading table entry index and writing to handle.
// It returns the segment's slot.
func (c *Controller[T]) Add(index int, handle Handle, stiffness float32) (int, error) {
	if _, ok := c.table[index]; !ok {
		return 0, fmt.Errorf("segment %d: %w", index, ErrUnknownSegment)
	}
	c.slots = append(c.slots, binding{
		seg:    Segment{Index: index, Stiffness: stiffness},
		handle: handle,
	})
	return len(c.slots) - 1, nil
}

// Len returns the number of segments.
func (c *Controller[T]) Len() int {
	return len(c.slots)
}

// Params returns the controller's sweep rates.
func (c *Controller[T]) Params() Params {
	return c.params
}

// Segment returns a copy of the state in slot.
func (c *Controller[T]) Segment(slot int) Segment {
	return c.slots[slot].seg
}

// Handle returns the motor handle of slot.
func (c *Controller[T]) Handle(slot int) Handle {
	return c.slots[slot].handle
}

// Tick applies the same input to every segment. It returns the number of
// notifications queued.
func (c *Controller[T]) Tick(in Input, dt time.Duration) int {
	n := 0
	for slot := range c.slots {
		if c.TickSegment(slot, in, dt) {
			n++
		}
	}
	return n
}

// TickSegment advances a single segment and reports whether it queued a
// notification.
func (c *Controller[T]) TickSegment(slot int, in Input, dt time.Duration) bool {
	b := &c.slots[slot]
	if !b.seg.Step(in, c.params, dt) {
		return false
	}
	if !b.queued {
		b.queued = true
		c.pending = append(c.pending, TargetChanged{
			Slot:   slot,
			Index:  b.seg.Index,
			Handle: b.handle,
		})
	}
	return true
}

// Pending returns a copy of the queued notifications without draining them.
func (c *Controller[T]) Pending() []TargetChanged {
	return slices.Clone(c.pending)
}

// Target returns the current motor target of slot.
func (c *Controller[T]) Target(slot int) T {
	seg := c.slots[slot].seg
	return Value(seg, c.table[seg.Index])
}

// Flush writes every queued target to m in queue order and clears the queue.
// It returns the number of writes.
func (c *Controller[T]) Flush(m Motor[T]) int {
	n := len(c.pending)
	for _, ev := range c.pending {
		b := &c.slots[ev.Slot]
		b.queued = false
		m.SetMotorTarget(b.handle, c.Target(ev.Slot), b.seg.Stiffness, Damping)
	}
	c.pending = c.pending[:0]
	return n
}
