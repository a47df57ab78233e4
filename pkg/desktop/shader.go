package desktop

import "fmt"

// Uniform names shared with the GLSL sources.
const (
	UniformPosition  = "position"
	UniformSize      = "size"
	UniformRotate    = "rotate"
	UniformScaleAlgo = "scaleAlgo"
	UniformNV        = "nv"
	UniformNVGain    = "nvGain"
	UniformCBMode    = "cbMode"
)

// VariantGeneric is the shader used for every RGB(A) format.
const VariantGeneric = "generic"

// ShaderSource is the text of one shader variant.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// ShaderTable maps variant names to their sources.
type ShaderTable map[string]ShaderSource

// ShaderVariant is a compiled program with its uniform locations resolved.
type ShaderVariant struct {
	Name   string
	shader Shader

	uPosition  int32
	uSize      int32
	uRotate    int32
	uScaleAlgo int32
	uNV        int32
	uNVGain    int32
	uCBMode    int32
}

func newShaderVariant(dev Device, name string, src ShaderSource) (*ShaderVariant, error) {
	shader, err := dev.NewShader()
	if err != nil {
		return nil, fmt.Errorf("failed to create %s shader: %w", name, err)
	}

	if err := shader.Compile(src.Vertex, src.Fragment); err != nil {
		shader.Free()
		return nil, fmt.Errorf("failed to compile %s shader: %w", name, err)
	}

	return &ShaderVariant{
		Name:       name,
		shader:     shader,
		uPosition:  shader.UniformLocation(UniformPosition),
		uSize:      shader.UniformLocation(UniformSize),
		uRotate:    shader.UniformLocation(UniformRotate),
		uScaleAlgo: shader.UniformLocation(UniformScaleAlgo),
		uNV:        shader.UniformLocation(UniformNV),
		uNVGain:    shader.UniformLocation(UniformNVGain),
		uCBMode:    shader.UniformLocation(UniformCBMode),
	}, nil
}

func (v *ShaderVariant) free() {
	if v == nil || v.shader == nil {
		return
	}
	v.shader.Free()
	v.shader = nil
}
