package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"desktopview/internal/logger"
	"desktopview/pkg/desktop"
)

// Texture is a 2D texture fed either through a streaming pixel buffer
// or straight from an external buffer object.
type Texture struct {
	log *logger.Logger

	id   uint32
	pbo  uint32
	sync uintptr

	format        glFormat
	width, height int
	pitch         int
	bpp           int
	zeroCopy      bool
}

// Setup (re)allocates texture storage for the given layout.
func (t *Texture) Setup(pf desktop.PixelFormat, width, height, pitch int, streaming, zeroCopy bool) error {
	f, err := lookupGLFormat(pf)
	if err != nil {
		return err
	}
	pitch, err = framePitch(pf, width, height, pitch)
	if err != nil {
		return err
	}
	bpp := pf.BytesPerPixel()

	t.release()
	t.format = f
	t.width, t.height, t.pitch, t.bpp = width, height, pitch, bpp
	t.zeroCopy = zeroCopy

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, f.internal, int32(width), int32(height), 0, f.format, f.xtype, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if streaming && !zeroCopy {
		gl.GenBuffers(1, &t.pbo)
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, t.pbo)
		gl.BufferData(gl.PIXEL_UNPACK_BUFFER, t.frameSize(), nil, gl.STREAM_DRAW)
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	}

	if err := checkError("texture setup"); err != nil {
		t.release()
		return err
	}

	t.log.Debugf("Texture %dx%d internal 0x%x pbo=%t zero-copy=%t", width, height, f.internal, t.pbo != 0, zeroCopy)
	return nil
}

// framePitch validates a frame layout and returns its row stride. A zero
// pitch means tightly packed rows.
func framePitch(pf desktop.PixelFormat, width, height, pitch int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	bpp := pf.BytesPerPixel()
	if pitch == 0 {
		return width * bpp, nil
	}
	if pitch < width*bpp || pitch%bpp != 0 {
		return 0, fmt.Errorf("pitch %d does not fit %d pixels of %d bytes", pitch, width, bpp)
	}
	return pitch, nil
}

func (t *Texture) frameSize() int {
	return t.pitch * t.height
}

// UpdateFromFrame copies pixels, laid out with the negotiated pitch, into
// the texture.
func (t *Texture) UpdateFromFrame(pixels []byte) error {
	if t.id == 0 {
		return errors.New("texture is not set up")
	}
	size := t.frameSize()
	if len(pixels) < size {
		return fmt.Errorf("short frame: %d bytes, want %d", len(pixels), size)
	}

	if t.pbo == 0 {
		t.upload(gl.Ptr(pixels))
		return checkError("glTexSubImage2D")
	}

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, t.pbo)
	// orphan the previous frame so the driver need not wait for it
	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, size, nil, gl.STREAM_DRAW)
	ptr := gl.MapBufferRange(gl.PIXEL_UNPACK_BUFFER, 0, size,
		gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
		return fmt.Errorf("failed to map the upload buffer: %w", checkError("glMapBufferRange"))
	}
	copy(unsafe.Slice((*byte)(ptr), size), pixels[:size])
	gl.UnmapBuffer(gl.PIXEL_UNPACK_BUFFER)

	t.upload(gl.PtrOffset(0))
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	t.fence()
	return checkError("glTexSubImage2D")
}

// UpdateFromBuffer sources the texture from a pixel buffer object created
// elsewhere, without touching host memory.
func (t *Texture) UpdateFromBuffer(buf desktop.BufferHandle) error {
	if t.id == 0 {
		return errors.New("texture is not set up")
	}
	if !buf.Valid() {
		return fmt.Errorf("invalid buffer handle %d", buf)
	}
	if !t.zeroCopy {
		t.log.Warn("Importing an external buffer into a texture set up for copies")
	}

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, uint32(buf))
	t.upload(gl.PtrOffset(0))
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	t.fence()
	return checkError("glTexSubImage2D")
}

func (t *Texture) upload(src unsafe.Pointer) {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(t.pitch/t.bpp))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height), t.format.format, t.format.xtype, src)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) fence() {
	if t.sync != 0 {
		gl.DeleteSync(t.sync)
	}
	t.sync = gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
}

// Process polls the fence of the last upload without blocking.
func (t *Texture) Process() error {
	if t.sync == 0 {
		return nil
	}

	switch gl.ClientWaitSync(t.sync, gl.SYNC_FLUSH_COMMANDS_BIT, 0) {
	case gl.TIMEOUT_EXPIRED:
		return desktop.ErrNotReady
	case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
		gl.DeleteSync(t.sync)
		t.sync = 0
		return nil
	default:
		gl.DeleteSync(t.sync)
		t.sync = 0
		return fmt.Errorf("glClientWaitSync failed: GL error 0x%04x", gl.GetError())
	}
}

// Bind attaches the texture to unit 0.
func (t *Texture) Bind() {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) release() {
	if t.sync != 0 {
		gl.DeleteSync(t.sync)
		t.sync = 0
	}
	if t.pbo != 0 {
		gl.DeleteBuffers(1, &t.pbo)
		t.pbo = 0
	}
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func (t *Texture) Free() {
	t.release()
}
