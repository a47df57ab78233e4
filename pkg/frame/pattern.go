// Package frame produces synthetic desktop frames in every supported
// encoding, standing in for a capture source.
package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/x448/float16"

	"desktopview/pkg/desktop"
)

// rowAlign is the row stride alignment of generated frames.
const rowAlign = 64

// Pattern renders a scrolling gradient test card.
type Pattern struct {
	format desktop.FrameFormat
	pixel  desktop.PixelFormat
	buf    []byte
	frame  int
}

// NewPattern returns a source of width x height frames encoded as tag.
func NewPattern(tag desktop.FormatTag, width, height int) (*Pattern, error) {
	pf, err := desktop.PixelFormatOf(tag)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	pitch := Pitch(pf, width)
	return &Pattern{
		format: desktop.FrameFormat{Tag: tag, Width: width, Height: height, Pitch: pitch},
		pixel:  pf,
		buf:    make([]byte, pitch*height),
	}, nil
}

// Pitch returns the aligned row stride for width pixels of pf.
func Pitch(pf desktop.PixelFormat, width int) int {
	row := width * pf.BytesPerPixel()
	return (row + rowAlign - 1) / rowAlign * rowAlign
}

// Format describes the frames Next returns.
func (p *Pattern) Format() desktop.FrameFormat {
	return p.format
}

// Next renders the next frame. The returned slice is reused by the
// following call.
func (p *Pattern) Next() []byte {
	w, h := p.format.Width, p.format.Height
	bpp := p.pixel.BytesPerPixel()
	shift := p.frame * 4

	for y := 0; y < h; y++ {
		row := p.buf[y*p.format.Pitch:]
		g := float32(y) / float32(h)
		for x := 0; x < w; x++ {
			r := float32(x) / float32(w)
			b := float32((x+y+shift)&0xff) / 255
			EncodePixel(p.pixel, row[x*bpp:x*bpp+bpp], r, g, b, 1)
		}
	}

	p.frame++
	return p.buf
}

// EncodePixel writes one pixel of normalized components into dst, which
// must hold pf.BytesPerPixel() bytes.
func EncodePixel(pf desktop.PixelFormat, dst []byte, r, g, b, a float32) {
	switch pf {
	case desktop.PixelBGRA:
		dst[0], dst[1], dst[2], dst[3] = unorm8(b), unorm8(g), unorm8(r), unorm8(a)
	case desktop.PixelRGBA:
		dst[0], dst[1], dst[2], dst[3] = unorm8(r), unorm8(g), unorm8(b), unorm8(a)
	case desktop.PixelRGBA10:
		v := unorm(r, 1023) | unorm(g, 1023)<<10 | unorm(b, 1023)<<20 | unorm(a, 3)<<30
		binary.LittleEndian.PutUint32(dst, v)
	case desktop.PixelRGBA16F:
		binary.LittleEndian.PutUint16(dst[0:], float16.Fromfloat32(r).Bits())
		binary.LittleEndian.PutUint16(dst[2:], float16.Fromfloat32(g).Bits())
		binary.LittleEndian.PutUint16(dst[4:], float16.Fromfloat32(b).Bits())
		binary.LittleEndian.PutUint16(dst[6:], float16.Fromfloat32(a).Bits())
	}
}

func unorm(v float32, top uint32) uint32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return top
	}
	return uint32(v*float32(top) + 0.5)
}

func unorm8(v float32) byte {
	return byte(unorm(v, 255))
}
