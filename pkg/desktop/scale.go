package desktop

// ScaleType classifies how the frame relates to its destination rectangle.
type ScaleType int

const (
	ScaleNone ScaleType = iota
	ScaleUp
	ScaleDown
)

// ScaleAlgo is the sampling filter selected in the shader.
type ScaleAlgo int32

const (
	ScaleNearest ScaleAlgo = 0
	ScaleLinear  ScaleAlgo = 1
)

// Algo picks nearest for 1:1 and magnified frames, linear when minifying.
func (s ScaleType) Algo() ScaleAlgo {
	if s == ScaleDown {
		return ScaleLinear
	}
	return ScaleNearest
}

func (s ScaleType) String() string {
	switch s {
	case ScaleNone:
		return "none"
	case ScaleUp:
		return "up"
	case ScaleDown:
		return "down"
	}
	return "unknown"
}

// Rotation of the displayed frame, clockwise.
type Rotation int32

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// RotationFromDegrees maps 0/90/180/270 (any multiple of 90) to a Rotation.
func RotationFromDegrees(deg int) Rotation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return Rotation(deg / 90)
}

// Degrees returns the rotation in degrees.
func (r Rotation) Degrees() int {
	return int(r) * 90
}

// Next returns the rotation 90 degrees further clockwise.
func (r Rotation) Next() Rotation {
	return (r + 1) % 4
}

// Swapped reports whether the frame's axes are exchanged on screen.
func (r Rotation) Swapped() bool {
	return r == Rotate90 || r == Rotate270
}

// Rect is the destination of the quad in normalized device coordinates:
// X, Y is the centre offset and ScaleX, ScaleY the fraction of the
// viewport covered on each axis. Rect{0, 0, 1, 1} fills the viewport.
type Rect struct {
	X, Y           float32
	ScaleX, ScaleY float32
}
