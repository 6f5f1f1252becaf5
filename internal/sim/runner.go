package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/golem/internal/engine/cuboid"
	"github.com/Faultbox/golem/internal/engine/joint"
	"github.com/Faultbox/golem/internal/game/rig"
	"github.com/Faultbox/golem/internal/logger"
	"github.com/Faultbox/golem/pkg/math"
)

// Meshes is a MeshRegistry that keeps built meshes in memory.
type Meshes struct {
	names  []string
	meshes []*cuboid.Mesh
}

// RegisterMesh stores mesh and returns its 1-based position.
func (m *Meshes) RegisterMesh(name string, mesh *cuboid.Mesh) (uint32, error) {
	if mesh == nil {
		return 0, fmt.Errorf("mesh %q is nil", name)
	}
	m.names = append(m.names, name)
	m.meshes = append(m.meshes, mesh)
	return uint32(len(m.meshes)), nil
}

// Len returns the number of registered meshes.
func (m *Meshes) Len() int {
	return len(m.meshes)
}

// Mesh returns the mesh for handle h.
func (m *Meshes) Mesh(h uint32) (string, *cuboid.Mesh, bool) {
	if h == 0 || int(h) > len(m.meshes) {
		return "", nil, false
	}
	return m.names[h-1], m.meshes[h-1], true
}

// Sample is the state of one part after a tick.
type Sample struct {
	Part     string
	Alpha    float32
	Blend    float32
	Position math.Vec3
}

// Tick describes one simulation step.
type Tick struct {
	N       int
	Elapsed time.Duration
	Phase   Phase
	Writes  int
	Samples []Sample
}

// Observer receives every tick. The Samples slice is reused between calls.
type Observer func(Tick)

// Result summarizes a run.
type Result struct {
	Ticks  int
	Writes int
	Final  []Sample
}

// Run steps r through script at a fixed dt.
func Run(r *rig.Rig, script Script, dt time.Duration, observe Observer) (Result, error) {
	if dt <= 0 {
		return Result{}, fmt.Errorf("dt must be positive, got %v", dt)
	}
	log := logger.Named("sim")

	var (
		res     Result
		elapsed time.Duration
		samples = make([]Sample, len(r.Parts()))
	)

	for _, phase := range script {
		in := phase.Action.Input()
		log.Debug("phase",
			zap.Stringer("action", phase.Action),
			zap.Duration("duration", phase.Duration),
		)

		for left := phase.Duration; left > 0; left -= dt {
			step := min(dt, left)
			writes := r.Update(in, step)
			elapsed += step
			res.Ticks++
			res.Writes += writes

			if observe != nil {
				observe(Tick{
					N:       res.Ticks,
					Elapsed: elapsed,
					Phase:   phase,
					Writes:  writes,
					Samples: snapshot(r, samples),
				})
			}
		}
	}

	res.Final = append([]Sample(nil), snapshot(r, samples)...)
	log.Info("run finished",
		zap.Int("ticks", res.Ticks),
		zap.Int("writes", res.Writes),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

func snapshot(r *rig.Rig, dst []Sample) []Sample {
	for i, p := range r.Parts() {
		st := r.State(i)
		dst[i] = Sample{
			Part:     p.Name,
			Alpha:    st.Alpha,
			Blend:    st.Blend,
			Position: r.Position(i),
		}
	}
	return dst
}

// Assemble builds a rig against an in-memory registry.
func Assemble(def *rig.Definition, params joint.Params) (*rig.Rig, *Meshes, error) {
	meshes := &Meshes{}
	r, err := rig.Assemble(def, params, meshes)
	if err != nil {
		return nil, nil, err
	}
	return r, meshes, nil
}
