// Package gpu is the OpenGL 4.1 core backend for the desktop renderer.
// Every call must run on the thread that owns the current GL context.
package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"

	"desktopview/internal/logger"
	"desktopview/pkg/desktop"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the GL function pointers. It needs a current context and
// only does work on the first call.
func Init() error {
	initOnce.Do(func() {
		if err := gl.Init(); err != nil {
			initErr = fmt.Errorf("failed to initialize OpenGL: %w", err)
		}
	})
	return initErr
}

// Device creates GL resources for the desktop.
type Device struct {
	log *logger.Logger
}

// NewDevice initializes GL and returns a device bound to the current
// context.
func NewDevice(log *logger.Logger) (*Device, error) {
	if log == nil {
		log = logger.Discard()
	}
	if err := Init(); err != nil {
		return nil, err
	}

	log.Infof("OpenGL %s, GLSL %s, %s",
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		gl.GoStr(gl.GetString(gl.RENDERER)))

	return &Device{log: log}, nil
}

// NewTexture implements desktop.Device.
func (d *Device) NewTexture(display desktop.Display) (desktop.Texture, error) {
	if display != nil {
		display.MakeContextCurrent()
	}
	return &Texture{log: d.log}, nil
}

// NewShader implements desktop.Device.
func (d *Device) NewShader() (desktop.Shader, error) {
	return &Program{}, nil
}

// NewModel implements desktop.Device.
func (d *Device) NewModel() (desktop.Model, error) {
	q := &Quad{}
	q.init()
	return q, nil
}

// NewExternalBuffer allocates a pixel buffer object of size bytes that can
// be handed to Desktop.Update for a zero-copy import.
func (d *Device) NewExternalBuffer(size int) (desktop.BufferHandle, error) {
	if size <= 0 {
		return desktop.NoBuffer, fmt.Errorf("invalid buffer size %d", size)
	}

	var buf uint32
	gl.GenBuffers(1, &buf)
	if buf == 0 {
		return desktop.NoBuffer, errors.New("glGenBuffers returned no buffer")
	}
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, buf)
	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)

	if err := checkError("glBufferData"); err != nil {
		gl.DeleteBuffers(1, &buf)
		return desktop.NoBuffer, err
	}
	return desktop.BufferHandle(buf), nil
}

// WriteExternalBuffer fills an external buffer, standing in for the
// capture side producing a frame on the GPU.
func (d *Device) WriteExternalBuffer(h desktop.BufferHandle, data []byte) error {
	if !h.Valid() {
		return fmt.Errorf("invalid buffer handle %d", h)
	}
	if len(data) == 0 {
		return nil
	}

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, uint32(h))
	gl.BufferSubData(gl.PIXEL_UNPACK_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	return checkError("glBufferSubData")
}

// FreeExternalBuffer deletes a buffer made by NewExternalBuffer.
func (d *Device) FreeExternalBuffer(h desktop.BufferHandle) {
	if !h.Valid() {
		return
	}
	buf := uint32(h)
	gl.DeleteBuffers(1, &buf)
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s failed: GL error 0x%04x", op, code)
	}
	return nil
}
