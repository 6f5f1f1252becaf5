// Package renderer draws registered cuboid meshes and debug lines with OpenGL.
package renderer

import (
	"embed"
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/golem/internal/engine/shader"
	"github.com/Faultbox/golem/internal/logger"
)

//go:embed shaders
var shaderFS embed.FS

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram uint32
	locViewProj int32
	locModel    int32
	locTint     int32
	locTextured int32
	locAtlas    int32
	locLightDir int32

	lineProgram     uint32
	locLineViewProj int32
	lineVAO         uint32
	lineVBO         uint32
	lineCap         int

	meshes []gpuMesh
	names  map[string]uint32
	atlas  uint32
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		names:  make(map[string]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.meshProgram, err = shader.Load(shaderFS, "shaders/mesh.vert", "shaders/mesh.frag")
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.locViewProj = shader.GetUniform(r.meshProgram, "uViewProj")
	r.locModel = shader.GetUniform(r.meshProgram, "uModel")
	r.locTint = shader.GetUniform(r.meshProgram, "uTint")
	r.locTextured = shader.GetUniform(r.meshProgram, "uTextured")
	r.locAtlas = shader.GetUniform(r.meshProgram, "uAtlas")
	r.locLightDir = shader.GetUniform(r.meshProgram, "uLightDir")

	r.lineProgram, err = shader.Load(shaderFS, "shaders/line.vert", "shaders/line.frag")
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.locLineViewProj = shader.GetUniform(r.lineProgram, "uViewProj")
	r.initLines()

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))

	for i := range r.meshes {
		r.meshes[i].release()
	}
	r.meshes = nil

	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
		r.atlas = 0
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.meshProgram != 0 {
		gl.DeleteProgram(r.meshProgram)
	}
	if r.lineProgram != 0 {
		gl.DeleteProgram(r.lineProgram)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
