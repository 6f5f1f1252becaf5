package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/golem/internal/engine/cuboid"
	"github.com/Faultbox/golem/pkg/math"
)

// White is the neutral tint.
var White = [4]float32{1, 1, 1, 1}

var lightDir = math.Vec3{X: -0.4, Y: -1, Z: -0.6}.Normalize()

type gpuMesh struct {
	name       string
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func (m *gpuMesh) release() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// RegisterMesh uploads mesh and returns its handle. Handles start at 1.
// Registering an existing name replaces the previous upload.
func (r *Renderer) RegisterMesh(name string, mesh *cuboid.Mesh) (uint32, error) {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return 0, fmt.Errorf("mesh %q is empty", name)
	}

	m := gpuMesh{name: name}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(cuboid.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	m.indexCount = int32(len(mesh.Indices))
	gl.BindVertexArray(0)

	if h, ok := r.names[name]; ok {
		r.meshes[h-1].release()
		r.meshes[h-1] = m
		return h, nil
	}

	r.meshes = append(r.meshes, m)
	h := uint32(len(r.meshes))
	r.names[name] = h

	r.log.Debug("mesh registered",
		zap.String("name", name),
		zap.Uint32("handle", h),
		zap.Int("vertices", len(mesh.Vertices)),
	)
	return h, nil
}

// SetAtlas uploads img as the texture sampled by textured meshes.
func (r *Renderer) SetAtlas(img *image.RGBA) {
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
	}

	gl.GenTextures(1, &r.atlas)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	r.log.Info("atlas uploaded",
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
}

// DrawMesh draws a registered mesh. A textured draw samples the atlas and
// multiplies it by tint; otherwise tint is the flat color.
func (r *Renderer) DrawMesh(handle uint32, model, viewProj math.Mat4, tint [4]float32, textured bool) {
	if handle == 0 || int(handle) > len(r.meshes) {
		return
	}
	m := &r.meshes[handle-1]

	gl.UseProgram(r.meshProgram)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
	gl.Uniform4f(r.locTint, tint[0], tint[1], tint[2], tint[3])
	gl.Uniform3f(r.locLightDir, lightDir.X, lightDir.Y, lightDir.Z)

	if textured && r.atlas != 0 {
		gl.Uniform1i(r.locTextured, 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.atlas)
		gl.Uniform1i(r.locAtlas, 0)
	} else {
		gl.Uniform1i(r.locTextured, 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}
