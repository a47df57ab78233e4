package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"desktopview/pkg/desktop"
)

// Layout fits a frame into the window keeping its aspect ratio, centred,
// and classifies the resulting scale. With dontUpscale a frame smaller
// than the window is shown 1:1.
func Layout(winW, winH, frameW, frameH int, rot desktop.Rotation, dontUpscale bool) (desktop.Rect, desktop.ScaleType) {
	if winW <= 0 || winH <= 0 || frameW <= 0 || frameH <= 0 {
		return desktop.Rect{}, desktop.ScaleNone
	}

	win := mgl32.Vec2{float32(winW), float32(winH)}
	src := mgl32.Vec2{float32(frameW), float32(frameH)}
	if rot.Swapped() {
		src = mgl32.Vec2{src.Y(), src.X()}
	}

	scale := min(win.X()/src.X(), win.Y()/src.Y())
	if dontUpscale && scale > 1 {
		scale = 1
	}
	dst := src.Mul(scale)

	rect := desktop.Rect{
		ScaleX: dst.X() / win.X(),
		ScaleY: dst.Y() / win.Y(),
	}

	switch {
	case mgl32.FloatEqual(scale, 1):
		return rect, desktop.ScaleNone
	case scale > 1:
		return rect, desktop.ScaleUp
	default:
		return rect, desktop.ScaleDown
	}
}
