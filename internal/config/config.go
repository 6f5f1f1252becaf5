// Package config handles golem configuration loading and management.
package config

// Config holds all settings for the viewer and the headless simulation.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Control  ControlConfig  `yaml:"control"`
	Atlas    AtlasConfig    `yaml:"atlas"`
	Rig      RigConfig      `yaml:"rig"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int  `yaml:"width"`
	Height        int  `yaml:"height"`
	Fullscreen    bool `yaml:"fullscreen"`
	VSync         bool `yaml:"vsync"`
	ShowColliders bool `yaml:"show_colliders"`
}

// ControlConfig holds joint sweep rates and key bindings.
type ControlConfig struct {
	Rate        float32 `yaml:"rate"`       // alpha units per second
	BlendRate   float32 `yaml:"blend_rate"` // 0 = same as rate
	IncreaseKey string  `yaml:"increase_key"`
	DecreaseKey string  `yaml:"decrease_key"`
	ResetKey    string  `yaml:"reset_key"`
}

// AtlasConfig selects the texture atlas. An empty path generates one.
type AtlasConfig struct {
	Path     string `yaml:"path"`
	CellSize int    `yaml:"cell_size"`
}

// RigConfig describes the articulated rig.
type RigConfig struct {
	Start    [3]float32      `yaml:"start"`
	Segments []SegmentConfig `yaml:"segments"`
}

// SegmentConfig describes one rig segment. Segment 0 is the root; every
// other segment hangs off it through a fixed joint anchored at Offset.
type SegmentConfig struct {
	Name        string     `yaml:"name"`
	Index       int        `yaml:"index"`
	Offset      [3]float32 `yaml:"offset"`
	From        [3]float32 `yaml:"from"`
	To          [3]float32 `yaml:"to"`
	Stiffness   float32    `yaml:"stiffness"`
	HalfExtents [3]float32 `yaml:"half_extents"`
	Collider    [3]float32 `yaml:"collider"`
	Grid        [2]int     `yaml:"grid"`
	Faces       [6][2]int  `yaml:"faces"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the five-segment golem.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Control: ControlConfig{
			Rate:        3.0,
			IncreaseKey: "E",
			DecreaseKey: "Q",
			ResetKey:    "Space",
		},
		Atlas: AtlasConfig{
			CellSize: 64,
		},
		Rig: DefaultRig(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultRig returns the golem: a head with a torso and lower body stacked
// below it and an arm on each side of the torso.
func DefaultRig() RigConfig {
	head := [6][2]int{{1, 0}, {1, 1}, {1, 1}, {1, 1}, {0, 1}, {0, 1}}
	body := [6][2]int{}

	segment := func(name string, index int, offset, from, to [3]float32, faces [6][2]int) SegmentConfig {
		return SegmentConfig{
			Name:        name,
			Index:       index,
			Offset:      offset,
			From:        from,
			To:          to,
			Stiffness:   1,
			HalfExtents: [3]float32{0.5, 0.5, 0.5},
			Collider:    [3]float32{0.49, 0.49, 0.49},
			Grid:        [2]int{2, 2},
			Faces:       faces,
		}
	}

	return RigConfig{
		Start: [3]float32{0, 3, 0},
		Segments: []SegmentConfig{
			segment("head", 0, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, head),
			segment("torso", 1, [3]float32{0, -1, 0}, [3]float32{0, 0, 1}, [3]float32{0, 0, 0}, body),
			segment("legs", 2, [3]float32{0, -2, 0}, [3]float32{0, 0, 1}, [3]float32{0, 0, 0}, body),
			segment("right_arm", 3, [3]float32{1, -1, 0}, [3]float32{0, 0, 0}, [3]float32{0, 0, 1}, body),
			segment("left_arm", 4, [3]float32{-1, -1, 0}, [3]float32{0, 0, 0}, [3]float32{0, 0, 1}, body),
		},
	}
}
