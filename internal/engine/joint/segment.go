package joint

import "time"

// Segment is the blend state of one controllable linkage element.
// The zero value is a segment at rest that has never been driven.
type Segment struct {
	Index     int
	Alpha     float32
	Blend     float32
	Stiffness float32
}

// Step advances the segment by dt under the given input and reports whether
// its target changed. Idle input leaves the state untouched; there is no decay.
func (s *Segment) Step(in Input, p Params, dt time.Duration) bool {
	if !in.Active() {
		return false
	}

	// A negative dt counts as no time passing; blend must never drop.
	secs := max(0, float32(dt.Seconds()))
	delta := p.Rate * secs

	if in.Increase {
		// A fresh sweep always starts from the low end.
		if s.Blend == 0 {
			s.Alpha = 0
		}
		s.Alpha = clamp01(s.Alpha + delta)
	} else {
		if s.Blend == 0 {
			s.Alpha = 1
		}
		s.Alpha = clamp01(s.Alpha - delta)
	}

	s.Blend = clamp01(s.Blend + p.blendRate()*secs)
	return true
}

// Value computes lerp(r.From, r.To, alpha) * blend.
func Value[T Blendable[T]](s Segment, r Range[T]) T {
	return r.From.Lerp(r.To, s.Alpha).Scale(s.Blend)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
