package desktop

// Display is the graphics context the desktop renders into. It is
// borrowed; the desktop never releases it.
type Display interface {
	MakeContextCurrent()
}

// Texture holds the latest frame on the GPU.
type Texture interface {
	// Setup (re)allocates storage for frames of the given layout.
	// Streaming textures are optimised for full-frame replacement.
	Setup(pf PixelFormat, width, height, pitch int, streaming, zeroCopy bool) error
	// UpdateFromFrame copies pixels into the texture.
	UpdateFromFrame(pixels []byte) error
	// UpdateFromBuffer imports a GPU-resident buffer without a host copy.
	UpdateFromBuffer(buf BufferHandle) error
	// Process runs the post-upload step. It returns ErrNotReady while a
	// previous upload is still in flight.
	Process() error
	Free()
}

// Shader is a compiled GPU program with uniform access.
type Shader interface {
	Compile(vertex, fragment string) error
	UniformLocation(name string) int32
	Use()
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Uniform4f(loc int32, x, y, z, w float32)
	Free()
}

// Model is the quad the texture is drawn on.
type Model interface {
	SetDefault()
	SetTexture(tex Texture)
	Render()
	Free()
}

// Device creates GPU resources.
type Device interface {
	NewTexture(display Display) (Texture, error)
	NewShader() (Shader, error)
	NewModel() (Model, error)
}

// Keybinder registers a hotkey. key is a key name such as "N" or "F12".
type Keybinder interface {
	Bind(key, description string, fn func()) error
}

// AlertLevel is the severity of a user notification.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertSuccess
	AlertWarning
	AlertError
)

func (l AlertLevel) String() string {
	switch l {
	case AlertInfo:
		return "info"
	case AlertSuccess:
		return "success"
	case AlertWarning:
		return "warning"
	case AlertError:
		return "error"
	}
	return "unknown"
}

// Alerter shows short-lived notifications. Alert must not block.
type Alerter interface {
	Alert(level AlertLevel, format string, args ...any)
}

// Options is the configuration store.
type Options interface {
	Int(section, key string) (int, error)
}
