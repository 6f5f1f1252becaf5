package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func initFile(t *testing.T, level string, cfg FileConfig) string {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "golem.log")
	}
	if err := InitWithFileConfig(level, cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	t.Cleanup(func() {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
	})
	return cfg.Path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestSubsystemTickLogging(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "info", wantDebug: false, wantInfo: true},
		{level: "warning", wantDebug: false, wantInfo: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := initFile(t, tt.level, FileConfig{MaxSizeMB: 1})

			Named("rig").Debug("motor targets flushed", zap.Int("writes", 4))
			Named("sim").Info("run finished", zap.Int("ticks", 18))
			Named("game").Warn("screenshot failed")

			content := readLog(t, path)

			if got := strings.Contains(content, "motor targets flushed"); got != tt.wantDebug {
				t.Errorf("debug tick line present = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(content, "run finished"); got != tt.wantInfo {
				t.Errorf("info line present = %v, want %v", got, tt.wantInfo)
			}
			if !strings.Contains(content, "WARN\tgame") && !strings.Contains(content, "WARN game") {
				t.Errorf("warn line missing subsystem name: %q", content)
			}
		})
	}
}

func TestNamedFieldsReachFile(t *testing.T) {
	path := initFile(t, "debug", FileConfig{MaxSizeMB: 1})

	Named("rig").Debug("sweep started", zap.String("segment", "torso"), zap.Bool("increase", true))

	content := readLog(t, path)
	for _, want := range []string{"DEBUG", "rig", "sweep started", "torso", "increase"} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q: %q", want, content)
		}
	}
}

func TestNamedBeforeInitDiscards(t *testing.T) {
	Log = zap.NewNop()
	early := Named("rig")

	path := initFile(t, "debug", FileConfig{MaxSizeMB: 1})
	early.Info("assembled before init")
	Named("rig").Info("assembled after init")

	content := readLog(t, path)
	if strings.Contains(content, "before init") {
		t.Error("child created before Init wrote to the file")
	}
	if !strings.Contains(content, "after init") {
		t.Error("child created after Init did not write")
	}
}

func TestRotationUnderTickLoad(t *testing.T) {
	dir := t.TempDir()
	path := initFile(t, "debug", FileConfig{
		Path:       filepath.Join(dir, "sim.log"),
		MaxSizeMB:  1,
		MaxBackups: 2,
	})

	sim := Named("sim")
	part := strings.Repeat("segment", 30)
	for i := 0; i < 6000; i++ {
		sim.Debug("segment", zap.Int("tick", i), zap.String("part", part), zap.Float32("alpha", 0.5))
	}
	Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("active log missing: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) < 2 {
		t.Errorf("expected a rotated backup next to sim.log, found %d files", len(entries))
	}
}

func TestDefaultFileConfig(t *testing.T) {
	got := DefaultFileConfig("golem.log")
	want := FileConfig{Path: "golem.log", MaxSizeMB: 20, MaxBackups: 5, MaxAgeDays: 7, Compress: true}
	if got != want {
		t.Errorf("DefaultFileConfig() = %+v, want %+v", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
