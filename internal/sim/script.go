// Package sim drives a rig without a window: a script of timed input
// phases is stepped at a fixed dt and every tick can be observed.
package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/Faultbox/golem/internal/engine/joint"
)

// Action is the input held during a phase.
type Action int

const (
	Idle Action = iota
	Increase
	Decrease
	Both
)

var actionNames = map[string]Action{
	"idle": Idle,
	"inc":  Increase,
	"dec":  Decrease,
	"both": Both,
}

var actionLabels = [...]string{"idle", "inc", "dec", "both"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionLabels) {
		return "unknown"
	}
	return actionLabels[a]
}

// Input converts the action to controller input.
func (a Action) Input() joint.Input {
	return joint.Input{
		Increase: a == Increase || a == Both,
		Decrease: a == Decrease || a == Both,
	}
}

// Phase holds one action for a duration.
type Phase struct {
	Action   Action
	Duration time.Duration
}

// Script is an ordered list of phases.
type Script []Phase

// ParseScript parses "action:duration" pairs separated by commas, for
// example "inc:1s,idle:250ms,dec:0.5s". A bare number is read as seconds.
func ParseScript(s string) (Script, error) {
	var script Script
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		name, dur, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("phase %q: want action:duration", field)
		}
		action, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("phase %q: unknown action %q", field, name)
		}
		d, err := parseDuration(strings.TrimSpace(dur))
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", field, err)
		}
		script = append(script, Phase{Action: action, Duration: d})
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	return script, nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		d, err = time.ParseDuration(s + "s")
	}
	if err != nil {
		return 0, fmt.Errorf("bad duration %q", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %v", d)
	}
	return d, nil
}

// Total returns the summed duration of all phases.
func (s Script) Total() time.Duration {
	var total time.Duration
	for _, p := range s {
		total += p.Duration
	}
	return total
}

func (s Script) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = fmt.Sprintf("%s:%s", p.Action, p.Duration)
	}
	return strings.Join(parts, ",")
}
