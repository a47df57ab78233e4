package desktop

import "errors"

var (
	// ErrInit is returned by New when a GPU resource, the shader, the
	// model, the keybind or an option could not be set up.
	ErrInit = errors.New("desktop: initialization failed")

	// ErrUnsupportedFormat is returned by Setup for an unknown frame format.
	ErrUnsupportedFormat = errors.New("desktop: unsupported frame format")

	// ErrIngest is returned by Update when the copy or import into the
	// texture fails.
	ErrIngest = errors.New("desktop: frame ingestion failed")

	// ErrNotReady is reported by Texture.Process while a previous upload
	// is still being converted. Update swallows it.
	ErrNotReady = errors.New("desktop: texture not ready")

	// ErrNoShader is returned by Render when no Setup has succeeded.
	ErrNoShader = errors.New("desktop: no active shader")
)
