// Package opengl hosts virtual engines in a GLFW window and draws their
// materialized items with OpenGL 4.1.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/virtual"
)

// vertex is one corner of an item quad.
type vertex struct {
	Pos   [2]float32
	Color uint32 // RGBA8, R in the low byte
}

// RGBA packs a color in the vertex layout.
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// DefaultPalette cycles through muted tile colors by item index.
var DefaultPalette = []uint32{
	RGBA(0x3B, 0x82, 0xF6, 0xFF),
	RGBA(0x10, 0xB9, 0x81, 0xFF),
	RGBA(0xF5, 0x9E, 0x0B, 0xFF),
	RGBA(0xEF, 0x44, 0x44, 0xFF),
	RGBA(0x8B, 0x5C, 0xF6, 0xFF),
	RGBA(0xEC, 0x48, 0x99, 0xFF),
}

// Renderer draws snapshots as flat colored quads.
type Renderer struct {
	shader   uint32
	vao, vbo uint32
	ebo      uint32
	projLoc  int32
	width    int
	height   int

	// Palette colors items by index. Empty means DefaultPalette.
	Palette []uint32
	// Scrollbar is the color of the vertical scroll thumb; 0 hides it.
	Scrollbar uint32

	vtx []vertex
	idx []uint32
}

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    Color = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core
in vec4 Color;

out vec4 FragColor;

void main() {
    FragColor = Color;
}
` + "\x00"

// NewRenderer creates a renderer for a framebuffer of the given size. A GL
// context must be current.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:     width,
		height:    height,
		Scrollbar: RGBA(0xFF, 0xFF, 0xFF, 0x60),
	}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// Pos (2 floats) + Color (normalized uint8x4)
	stride := int32(unsafe.Sizeof(vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(vertex{}.Color))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return r, nil
}

// Resize updates the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Render draws every item of snap, translated by the snapshot's scroll
// offset. scale converts engine units (window coordinates) to framebuffer
// pixels on HiDPI displays.
func (r *Renderer) Render(snap *virtual.Snapshot, scale float32) error {
	if snap == nil || snap.Err() != nil {
		return nil
	}
	r.build(snap, scale)
	if len(r.idx) == 0 {
		return nil
	}

	// Save GL state
	var lastProgram int32
	var lastBlendSrc, lastBlendDst int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &lastBlendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &lastBlendDst)
	blendEnabled := gl.IsEnabled(gl.BLEND)
	depthEnabled := gl.IsEnabled(gl.DEPTH_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(r.shader)
	proj := orthoMatrix(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vtx)*int(unsafe.Sizeof(vertex{})), gl.Ptr(r.vtx), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.idx)*4, gl.Ptr(r.idx), gl.STREAM_DRAW)

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(r.idx)), gl.UNSIGNED_INT, 0)

	// Restore GL state
	gl.UseProgram(uint32(lastProgram))
	gl.BlendFunc(uint32(lastBlendSrc), uint32(lastBlendDst))
	if !blendEnabled {
		gl.Disable(gl.BLEND)
	}
	if depthEnabled {
		gl.Enable(gl.DEPTH_TEST)
	}
	gl.BindVertexArray(0)
	return nil
}

// build fills the vertex and index buffers for snap.
func (r *Renderer) build(snap *virtual.Snapshot, scale float32) {
	r.vtx = r.vtx[:0]
	r.idx = r.idx[:0]

	palette := r.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	ox, oy := float32(snap.Viewport.Left), float32(snap.Viewport.Top)
	for _, it := range snap.Items {
		p := it.Position
		r.quad(
			(float32(p.Left)-ox)*scale, (float32(p.Top)-oy)*scale,
			float32(p.Width)*scale, float32(p.Height)*scale,
			palette[it.Index%len(palette)],
		)
	}

	if r.Scrollbar == 0 {
		return
	}
	vh := float32(snap.Viewport.Height)
	ch := float32(snap.ContentSize().Height)
	if ch <= vh || vh <= 0 {
		return
	}
	const thumbWidth = 6
	thumbH := max(vh*vh/ch, 16)
	thumbY := oy / (ch - vh) * (vh - thumbH)
	vw := float32(snap.Viewport.Width)
	r.quad((vw-thumbWidth-2)*scale, thumbY*scale, thumbWidth*scale, thumbH*scale, r.Scrollbar)
}

func (r *Renderer) quad(x, y, w, h float32, color uint32) {
	base := uint32(len(r.vtx))
	r.vtx = append(r.vtx,
		vertex{Pos: [2]float32{x, y}, Color: color},
		vertex{Pos: [2]float32{x + w, y}, Color: color},
		vertex{Pos: [2]float32{x + w, y + h}, Color: color},
		vertex{Pos: [2]float32{x, y + h}, Color: color},
	)
	r.idx = append(r.idx, base, base+1, base+2, base, base+2, base+3)
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Linked into the program now
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", string(log))
	}
	return shader, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
