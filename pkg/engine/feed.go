package engine

import (
	"fmt"

	"desktopview/internal/logger"
	"desktopview/pkg/desktop"
	"desktopview/pkg/frame"
)

// bufferAllocator provides GPU-resident frame buffers for zero-copy feeds.
type bufferAllocator interface {
	NewExternalBuffer(size int) (desktop.BufferHandle, error)
	FreeExternalBuffer(h desktop.BufferHandle)
}

// formatTarget is the renderer a feed negotiates formats with.
type formatTarget interface {
	Setup(format desktop.FrameFormat, zeroCopy bool) error
}

// feed owns the frame source and, in zero-copy mode, the buffer frames
// are staged in.
type feed struct {
	log     *logger.Logger
	buffers bufferAllocator
	target  formatTarget

	width, height int
	zeroCopy      bool

	source   *frame.Pattern
	format   desktop.FrameFormat
	external desktop.BufferHandle
}

func newFeed(log *logger.Logger, buffers bufferAllocator, target formatTarget, width, height int, zeroCopy bool) *feed {
	if log == nil {
		log = logger.Discard()
	}
	return &feed{
		log:      log,
		buffers:  buffers,
		target:   target,
		width:    width,
		height:   height,
		zeroCopy: zeroCopy,
		external: desktop.NoBuffer,
	}
}

// switchTo moves the source to tag and renegotiates the target. On
// failure the previous source, format and buffer stay in use.
func (f *feed) switchTo(tag desktop.FormatTag) error {
	source, err := frame.NewPattern(tag, f.width, f.height)
	if err != nil {
		return fmt.Errorf("failed to initialize frame source: %w", err)
	}
	format := source.Format()

	external := desktop.NoBuffer
	if f.zeroCopy {
		if external, err = f.buffers.NewExternalBuffer(format.Pitch * format.Height); err != nil {
			return fmt.Errorf("failed to allocate frame buffer: %w", err)
		}
	}

	if err := f.target.Setup(format, f.zeroCopy); err != nil {
		f.buffers.FreeExternalBuffer(external)
		f.restore()
		return err
	}

	f.buffers.FreeExternalBuffer(f.external)
	f.source, f.format, f.external = source, format, external
	f.log.Infof("Source format %s %dx%d", format.Tag, format.Width, format.Height)
	return nil
}

// restore renegotiates the format in use before a failed switch, since a
// failed Setup leaves the target without a format.
func (f *feed) restore() {
	if f.source == nil {
		return
	}
	if err := f.target.Setup(f.format, f.zeroCopy); err != nil {
		f.log.Errorf("Failed to restore source format %s: %v", f.format.Tag, err)
	}
}

// next returns the tag following the current one, wrapping around.
func (f *feed) next() desktop.FormatTag {
	tag := f.format.Tag
	for {
		tag++
		if tag > desktop.FormatRGBA16F {
			tag = desktop.FormatBGRA8
		}
		if desktop.Supported(tag) {
			return tag
		}
	}
}

// close releases the staging buffer.
func (f *feed) close() {
	f.buffers.FreeExternalBuffer(f.external)
	f.external = desktop.NoBuffer
}
