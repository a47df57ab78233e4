package desktop

import (
	"errors"
	"fmt"
	"sync"
)

// calls records the order of GPU calls across all fakes.
type calls struct {
	mu  sync.Mutex
	log []string
}

func (c *calls) add(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, fmt.Sprintf(format, args...))
}

func (c *calls) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.log...)
}

func (c *calls) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = nil
}

type fakeTexture struct {
	calls *calls

	setupErr   error
	frameErr   error
	bufferErr  error
	processErr error

	pf                   PixelFormat
	width, height, pitch int
	streaming, zeroCopy  bool
	frames               int
	imports              []BufferHandle
	processed            int
	freed                int
}

func (t *fakeTexture) Setup(pf PixelFormat, width, height, pitch int, streaming, zeroCopy bool) error {
	t.calls.add("texture.Setup")
	if t.setupErr != nil {
		return t.setupErr
	}
	t.pf, t.width, t.height, t.pitch = pf, width, height, pitch
	t.streaming, t.zeroCopy = streaming, zeroCopy
	return nil
}

func (t *fakeTexture) UpdateFromFrame(pixels []byte) error {
	t.calls.add("texture.UpdateFromFrame")
	if t.frameErr != nil {
		return t.frameErr
	}
	if len(pixels) < t.pitch*t.height {
		return errors.New("short frame")
	}
	t.frames++
	return nil
}

func (t *fakeTexture) UpdateFromBuffer(buf BufferHandle) error {
	t.calls.add("texture.UpdateFromBuffer")
	if t.bufferErr != nil {
		return t.bufferErr
	}
	t.imports = append(t.imports, buf)
	return nil
}

func (t *fakeTexture) Process() error {
	t.calls.add("texture.Process")
	t.processed++
	return t.processErr
}

func (t *fakeTexture) Free() {
	t.calls.add("texture.Free")
	t.freed++
}

type fakeShader struct {
	calls *calls

	compileErr error
	vertex     string
	fragment   string
	locations  map[string]int32
	values     map[int32][]float32
	uses       int
	freed      int
}

func (s *fakeShader) Compile(vertex, fragment string) error {
	s.calls.add("shader.Compile")
	if s.compileErr != nil {
		return s.compileErr
	}
	s.vertex, s.fragment = vertex, fragment
	return nil
}

func (s *fakeShader) UniformLocation(name string) int32 {
	if s.locations == nil {
		s.locations = make(map[string]int32)
	}
	loc := int32(len(s.locations))
	s.locations[name] = loc
	return loc
}

func (s *fakeShader) set(loc int32, v ...float32) {
	if s.values == nil {
		s.values = make(map[int32][]float32)
	}
	s.values[loc] = v
}

func (s *fakeShader) Use() {
	s.calls.add("shader.Use")
	s.uses++
}

func (s *fakeShader) Uniform1i(loc int32, v int32)            { s.set(loc, float32(v)) }
func (s *fakeShader) Uniform1f(loc int32, v float32)          { s.set(loc, v) }
func (s *fakeShader) Uniform2f(loc int32, x, y float32)       { s.set(loc, x, y) }
func (s *fakeShader) Uniform4f(loc int32, x, y, z, w float32) { s.set(loc, x, y, z, w) }

func (s *fakeShader) Free() {
	s.calls.add("shader.Free")
	s.freed++
}

// uniform returns the last value bound to the named uniform.
func (s *fakeShader) uniform(name string) ([]float32, bool) {
	loc, ok := s.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := s.values[loc]
	return v, ok
}

type fakeModel struct {
	calls *calls

	isDefault bool
	texture   Texture
	renders   int
	freed     int
}

func (m *fakeModel) SetDefault()            { m.isDefault = true }
func (m *fakeModel) SetTexture(tex Texture) { m.texture = tex }

func (m *fakeModel) Render() {
	m.calls.add("model.Render")
	m.renders++
}

func (m *fakeModel) Free() {
	m.calls.add("model.Free")
	m.freed++
}

type fakeDevice struct {
	calls   *calls
	texture *fakeTexture
	shader  *fakeShader
	model   *fakeModel

	textureErr error
	shaderErr  error
	modelErr   error
}

func newFakeDevice() *fakeDevice {
	c := &calls{}
	return &fakeDevice{
		calls:   c,
		texture: &fakeTexture{calls: c},
		shader:  &fakeShader{calls: c},
		model:   &fakeModel{calls: c},
	}
}

func (d *fakeDevice) NewTexture(Display) (Texture, error) {
	if d.textureErr != nil {
		return nil, d.textureErr
	}
	return d.texture, nil
}

func (d *fakeDevice) NewShader() (Shader, error) {
	if d.shaderErr != nil {
		return nil, d.shaderErr
	}
	return d.shader, nil
}

func (d *fakeDevice) NewModel() (Model, error) {
	if d.modelErr != nil {
		return nil, d.modelErr
	}
	return d.model, nil
}

type binding struct {
	description string
	fn          func()
}

type fakeKeys struct {
	bindErr error
	binds   map[string]binding
}

func (k *fakeKeys) Bind(key, description string, fn func()) error {
	if k.bindErr != nil {
		return k.bindErr
	}
	if k.binds == nil {
		k.binds = make(map[string]binding)
	}
	k.binds[key] = binding{description, fn}
	return nil
}

type alert struct {
	level AlertLevel
	text  string
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []alert
}

func (a *fakeAlerts) Alert(level AlertLevel, format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert{level, fmt.Sprintf(format, args...)})
}

func (a *fakeAlerts) last() alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.alerts) == 0 {
		return alert{}
	}
	return a.alerts[len(a.alerts)-1]
}

type fakeOptions map[string]int

func (o fakeOptions) Int(section, key string) (int, error) {
	v, ok := o[section+"."+key]
	if !ok {
		return 0, fmt.Errorf("unknown option %s.%s", section, key)
	}
	return v, nil
}

func options(nvMax, nvGain, cbMode int) fakeOptions {
	return fakeOptions{
		"desktop-render.nvGainMax": nvMax,
		"desktop-render.nvGain":    nvGain,
		"desktop-render.cbMode":    cbMode,
	}
}

var testShaders = ShaderTable{
	VariantGeneric: {Vertex: "vertex", Fragment: "fragment"},
}

type fakeDisplay struct{}

func (fakeDisplay) MakeContextCurrent() {}
