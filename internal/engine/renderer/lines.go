package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/golem/internal/engine/debug"
	"github.com/Faultbox/golem/pkg/math"
)

func (r *Renderer) initLines() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	stride := int32(unsafe.Sizeof(debug.LineVertex{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// DrawLines draws line segments, one per vertex pair. The stream buffer
// grows to the largest batch seen.
func (r *Renderer) DrawLines(vertices []debug.LineVertex, viewProj math.Mat4) {
	if len(vertices) < 2 {
		return
	}

	size := len(vertices) * int(unsafe.Sizeof(debug.LineVertex{}))

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if size > r.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
		r.lineCap = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}

	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.locLineViewProj, 1, false, viewProj.Ptr())
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)&^1))
}
