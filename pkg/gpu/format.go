package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"desktopview/pkg/desktop"
)

// glFormat is the TexImage2D triple for a pixel format.
type glFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

var glFormats = map[desktop.PixelFormat]glFormat{
	desktop.PixelBGRA:    {gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE},
	desktop.PixelRGBA:    {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
	desktop.PixelRGBA10:  {gl.RGB10_A2, gl.RGBA, gl.UNSIGNED_INT_2_10_10_10_REV},
	desktop.PixelRGBA16F: {gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT},
}

func lookupGLFormat(pf desktop.PixelFormat) (glFormat, error) {
	f, ok := glFormats[pf]
	if !ok {
		return glFormat{}, fmt.Errorf("%w: no GL format for %s", desktop.ErrUnsupportedFormat, pf)
	}
	return f, nil
}
