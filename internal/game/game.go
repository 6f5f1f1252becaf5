// Package game runs the golem viewer: window, input, rig update and drawing.
package game

import (
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/golem/internal/config"
	"github.com/Faultbox/golem/internal/engine/camera"
	"github.com/Faultbox/golem/internal/engine/cuboid"
	"github.com/Faultbox/golem/internal/engine/debug"
	"github.com/Faultbox/golem/internal/engine/input"
	"github.com/Faultbox/golem/internal/engine/joint"
	"github.com/Faultbox/golem/internal/engine/renderer"
	"github.com/Faultbox/golem/internal/engine/texture"
	"github.com/Faultbox/golem/internal/engine/window"
	"github.com/Faultbox/golem/internal/game/rig"
	"github.com/Faultbox/golem/internal/logger"
	"github.com/Faultbox/golem/pkg/math"
)

// Scene constants for the viewer.
var (
	cameraEye    = math.Vec3{X: -3, Y: 3, Z: 10}
	groundCenter = math.Vec3{Y: -2}
	groundHalf   = math.Vec3{X: 100, Y: 0.1, Z: 100}
	groundTint   = [4]float32{0.42, 0.45, 0.4, 1}
)

// maxFrameTime caps dt after stalls such as window drags.
const maxFrameTime = 100 * time.Millisecond

type bindings struct {
	increase   sdl.Scancode
	decrease   sdl.Scancode
	reset      sdl.Scancode
	colliders  sdl.Scancode
	screenshot sdl.Scancode
	quit       sdl.Scancode
}

func resolveBindings(c config.ControlConfig) (bindings, error) {
	b := bindings{
		colliders:  sdl.SCANCODE_C,
		screenshot: sdl.SCANCODE_F12,
		quit:       sdl.SCANCODE_ESCAPE,
	}
	var err error
	if b.increase, err = input.Scancode(c.IncreaseKey); err != nil {
		return b, fmt.Errorf("increase_key: %w", err)
	}
	if b.decrease, err = input.Scancode(c.DecreaseKey); err != nil {
		return b, fmt.Errorf("decrease_key: %w", err)
	}
	if b.reset, err = input.Scancode(c.ResetKey); err != nil {
		return b, fmt.Errorf("reset_key: %w", err)
	}
	return b, nil
}

// Game is the viewer instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	rig      *rig.Rig
	keys     bindings
	shots    *debug.ScreenshotCapture
	log      *zap.Logger

	ground        uint32
	grid          []debug.LineVertex
	lines         []debug.LineVertex
	showColliders bool
	orbiting      bool
	panning       bool
}

// New creates the window, uploads the atlas and assembles the rig.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("segments", len(cfg.Rig.Segments)),
	)

	def, err := rig.FromConfig(cfg.Rig)
	if err != nil {
		return nil, fmt.Errorf("invalid rig: %w", err)
	}
	keys, err := resolveBindings(cfg.Control)
	if err != nil {
		return nil, err
	}

	g := &Game{
		config:        cfg,
		input:         input.New(),
		camera:        camera.NewOrbitCamera(),
		keys:          keys,
		shots:         debug.NewScreenshotCapture("screenshots", "golem", "png"),
		log:           log,
		grid:          debug.GroundGrid(10, 1, groundCenter.Y+groundHalf.Y+0.001),
		showColliders: cfg.Graphics.ShowColliders,
	}
	g.camera.LookFrom(cameraEye, math.Vec3{})

	g.window, err = window.New(window.Config{
		Title:      "golem",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context from the window.
	w, h := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	atlas, err := loadAtlas(cfg.Atlas, def)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.renderer.SetAtlas(atlas)

	g.ground, err = g.renderer.RegisterMesh("ground", cuboid.Build(cuboid.TileDescriptor{HalfExtents: groundHalf}))
	if err != nil {
		g.Close()
		return nil, err
	}

	params := joint.Params{Rate: cfg.Control.Rate, BlendRate: cfg.Control.BlendRate}
	g.rig, err = rig.Assemble(def, params, g.renderer)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to assemble rig: %w", err)
	}

	log.Info("viewer initialized")
	return g, nil
}

func loadAtlas(cfg config.AtlasConfig, def *rig.Definition) (*image.RGBA, error) {
	grid := def.AtlasGrid()
	layout := texture.Layout{Cols: grid.Cols, Rows: grid.Rows, CellSize: cfg.CellSize}

	if cfg.Path == "" {
		return texture.Generate(layout), nil
	}
	img, err := texture.Load(cfg.Path, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas: %w", err)
	}
	return img, nil
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := min(now.Sub(lastTime), maxFrameTime)
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		g.update(dt)
		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleEvents() {
	for _, ev := range g.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			g.renderer.Resize(g.window.GetSize())

		case input.EventKeyDown:
			if ev.Repeat {
				continue
			}
			switch ev.Key {
			case g.keys.quit:
				g.running = false
			case g.keys.reset:
				g.rig.Reset()
			case g.keys.colliders:
				g.showColliders = !g.showColliders
			case g.keys.screenshot:
				g.screenshot()
			}

		case input.EventMouseDown:
			switch ev.Button {
			case sdl.BUTTON_LEFT:
				g.orbiting = true
			case sdl.BUTTON_RIGHT:
				g.panning = true
			}

		case input.EventMouseUp:
			switch ev.Button {
			case sdl.BUTTON_LEFT:
				g.orbiting = false
			case sdl.BUTTON_RIGHT:
				g.panning = false
			}

		case input.EventMouseMove:
			if g.orbiting {
				g.camera.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
			}
			if g.panning {
				g.camera.HandlePan(float32(ev.DeltaX), float32(ev.DeltaY))
			}

		case input.EventMouseWheel:
			g.camera.HandleZoom(ev.Wheel)
		}
	}
}

func (g *Game) update(dt time.Duration) {
	in := joint.Input{
		Increase: g.input.IsKeyHeld(g.keys.increase),
		Decrease: g.input.IsKeyHeld(g.keys.decrease),
	}
	g.rig.Update(in, dt)
}

func (g *Game) render() {
	viewProj := g.camera.ViewProjection(g.renderer.Aspect())

	g.renderer.Begin()

	g.renderer.DrawMesh(g.ground, math.TranslateVec(groundCenter), viewProj, groundTint, false)
	for i, p := range g.rig.Parts() {
		g.renderer.DrawMesh(p.Mesh, g.rig.Model(i), viewProj, renderer.White, true)
	}

	g.lines = append(g.lines[:0], g.grid...)
	if g.showColliders {
		g.lines = g.rig.Colliders(g.lines)
		g.lines = debug.BoxWireframe(g.lines, groundCenter, groundHalf, debug.ColliderColor)
	}
	g.renderer.DrawLines(g.lines, viewProj)

	g.renderer.End()
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", name))
}
