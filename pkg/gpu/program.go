package gpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// samplerUniform is the texture unit binding shared by every variant.
const samplerUniform = "sampler1"

// Program is a linked GLSL program.
type Program struct {
	id uint32
}

// Compile builds the program from vertex and fragment sources and binds
// the frame sampler to texture unit 0.
func (p *Program) Compile(vertex, fragment string) error {
	if p.id != 0 {
		return errors.New("program already compiled")
	}

	id, err := createShaderProgram(vertex, fragment)
	if err != nil {
		return err
	}
	p.id = id

	gl.UseProgram(p.id)
	gl.Uniform1i(p.UniformLocation(samplerUniform), 0)
	gl.UseProgram(0)
	return nil
}

// UniformLocation returns -1 for names the linker optimised out, which
// GL ignores on upload.
func (p *Program) UniformLocation(name string) int32 {
	if p.id == 0 {
		return -1
	}
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

func (p *Program) Use() {
	gl.UseProgram(p.id)
}

func (p *Program) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (p *Program) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (p *Program) Uniform2f(loc int32, x, y float32) {
	gl.Uniform2f(loc, x, y)
}

func (p *Program) Uniform4f(loc int32, x, y, z, w float32) {
	gl.Uniform4f(loc, x, y, z, w)
}

func (p *Program) Free() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// createShaderProgram compiles and links both stages
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

	// Linked programs keep the compiled stages alive
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", strings.TrimRight(log, "\x00"))
	}

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compilation failed: %s", strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}
