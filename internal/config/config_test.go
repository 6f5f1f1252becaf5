package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.ShowColliders {
		t.Error("expected collider wireframes off by default")
	}

	// Control defaults
	if cfg.Control.Rate != 3.0 {
		t.Errorf("expected rate 3.0, got %f", cfg.Control.Rate)
	}
	if cfg.Control.BlendRate != 0 {
		t.Errorf("expected blend rate 0 (same as rate), got %f", cfg.Control.BlendRate)
	}
	if cfg.Control.IncreaseKey != "E" || cfg.Control.DecreaseKey != "Q" || cfg.Control.ResetKey != "Space" {
		t.Errorf("unexpected key bindings: %+v", cfg.Control)
	}

	// Atlas defaults
	if cfg.Atlas.Path != "" {
		t.Errorf("expected generated atlas by default, got path %s", cfg.Atlas.Path)
	}
	if cfg.Atlas.CellSize != 64 {
		t.Errorf("expected cell size 64, got %d", cfg.Atlas.CellSize)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestDefaultRig(t *testing.T) {
	rig := DefaultRig()

	if rig.Start != [3]float32{0, 3, 0} {
		t.Errorf("expected start (0,3,0), got %v", rig.Start)
	}
	if len(rig.Segments) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(rig.Segments))
	}

	offsets := [][3]float32{{0, 0, 0}, {0, -1, 0}, {0, -2, 0}, {1, -1, 0}, {-1, -1, 0}}
	for i, seg := range rig.Segments {
		if seg.Index != i {
			t.Errorf("segment %d has index %d", i, seg.Index)
		}
		if seg.Offset != offsets[i] {
			t.Errorf("segment %d offset %v, want %v", i, seg.Offset, offsets[i])
		}
		if seg.Grid != [2]int{2, 2} {
			t.Errorf("segment %d grid %v, want 2x2", i, seg.Grid)
		}
	}

	if rig.Segments[0].Faces[0] != [2]int{1, 0} || rig.Segments[0].Faces[4] != [2]int{0, 1} {
		t.Errorf("head faces = %v", rig.Segments[0].Faces)
	}
	if rig.Segments[1].From != [3]float32{0, 0, 1} || rig.Segments[3].To != [3]float32{0, 0, 1} {
		t.Error("torso/arm targets do not match the golem table")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "golem.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  show_colliders: true

control:
  rate: 1.5
  blend_rate: 1.0
  increase_key: "D"

atlas:
  path: "golem_tex.png"
  cell_size: 32

rig:
  start: [0, 5, 0]
  segments:
    - name: root
      index: 0
      half_extents: [0.5, 0.5, 0.5]
      grid: [1, 1]
    - name: tail
      index: 1
      offset: [0, 0, -1]
      from: [0, 0, 0]
      to: [0, 1, 0]
      stiffness: 4
      half_extents: [0.25, 0.25, 0.5]
      grid: [4, 1]
      faces: [[3, 0], [2, 0], [1, 0], [1, 0], [0, 0], [0, 0]]

logging:
  level: "debug"
  log_file: "golem.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen || !cfg.Graphics.ShowColliders {
		t.Error("expected fullscreen and colliders to be enabled")
	}
	if !cfg.Graphics.VSync {
		t.Error("vsync should keep its default when absent from the file")
	}

	if cfg.Control.Rate != 1.5 || cfg.Control.BlendRate != 1.0 {
		t.Errorf("expected rates 1.5/1.0, got %v/%v", cfg.Control.Rate, cfg.Control.BlendRate)
	}
	if cfg.Control.IncreaseKey != "D" || cfg.Control.DecreaseKey != "Q" {
		t.Errorf("unexpected keys: %+v", cfg.Control)
	}

	if cfg.Atlas.Path != "golem_tex.png" || cfg.Atlas.CellSize != 32 {
		t.Errorf("unexpected atlas: %+v", cfg.Atlas)
	}

	if cfg.Rig.Start != [3]float32{0, 5, 0} {
		t.Errorf("expected start (0,5,0), got %v", cfg.Rig.Start)
	}
	if len(cfg.Rig.Segments) != 2 {
		t.Fatalf("expected file segments to replace the default rig, got %d", len(cfg.Rig.Segments))
	}
	tail := cfg.Rig.Segments[1]
	if tail.Name != "tail" || tail.Stiffness != 4 || tail.To != [3]float32{0, 1, 0} {
		t.Errorf("unexpected tail segment: %+v", tail)
	}
	if tail.Grid != [2]int{4, 1} || tail.Faces[0] != [2]int{3, 0} {
		t.Errorf("unexpected tail tiling: grid %v faces %v", tail.Grid, tail.Faces)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "golem.log" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
control:
  rate: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/golem.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero rate", func(c *Config) { c.Control.Rate = 0 }, true},
		{"negative blend rate", func(c *Config) { c.Control.BlendRate = -1 }, true},
		{"zero cell size", func(c *Config) { c.Atlas.CellSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "golem.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find golem.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowColliders {
					t.Error("expected colliders to be shown with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "rate flag",
			setup: func() { *flagRate = 6 },
			verify: func(cfg *Config) {
				if cfg.Control.Rate != 6 {
					t.Errorf("expected rate 6, got %v", cfg.Control.Rate)
				}
			},
			teardown: func() { *flagRate = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "atlas flag",
			setup: func() { *flagAtlas = "tiles.tga" },
			verify: func(cfg *Config) {
				if cfg.Atlas.Path != "tiles.tga" {
					t.Errorf("expected atlas tiles.tga, got %s", cfg.Atlas.Path)
				}
			},
			teardown: func() { *flagAtlas = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "golem.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "golem.yaml")
	if err := os.WriteFile(configPath, []byte("control:\n  rate: -2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected negative rate to be rejected")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "golem.yaml")

	cfg := Default()
	cfg.Control.Rate = 2.5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := &Config{}
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Control.Rate != 2.5 {
		t.Errorf("expected rate 2.5, got %v", loaded.Control.Rate)
	}
	if len(loaded.Rig.Segments) != 5 || loaded.Rig.Segments[3].Name != "right_arm" {
		t.Errorf("rig did not survive the round trip: %+v", loaded.Rig.Segments)
	}
}
