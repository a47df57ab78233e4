package desktop

import (
	"fmt"
	"strings"
)

// FormatTag identifies the pixel layout of frames produced by the
// capture side.
type FormatTag uint32

const (
	FormatInvalid FormatTag = iota
	FormatBGRA8
	FormatRGBA8
	FormatRGBA10
	FormatRGBA16F
)

var formatNames = map[FormatTag]string{
	FormatInvalid: "invalid",
	FormatBGRA8:   "bgra8",
	FormatRGBA8:   "rgba8",
	FormatRGBA10:  "rgba10",
	FormatRGBA16F: "rgba16f",
}

func (t FormatTag) String() string {
	if name, ok := formatNames[t]; ok {
		return name
	}
	return fmt.Sprintf("format(0x%x)", uint32(t))
}

// ParseFormatTag converts a format name (case-insensitive) to its tag.
func ParseFormatTag(s string) (FormatTag, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for tag, n := range formatNames {
		if tag != FormatInvalid && n == name {
			return tag, nil
		}
	}
	return FormatInvalid, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// PixelFormat is the texture-side format a FormatTag maps to.
type PixelFormat int

const (
	PixelBGRA PixelFormat = iota + 1
	PixelRGBA
	PixelRGBA10
	PixelRGBA16F
)

func (p PixelFormat) String() string {
	switch p {
	case PixelBGRA:
		return "BGRA"
	case PixelRGBA:
		return "RGBA"
	case PixelRGBA10:
		return "RGBA10"
	case PixelRGBA16F:
		return "RGBA16F"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(p))
}

// BytesPerPixel returns the packed size of one pixel.
func (p PixelFormat) BytesPerPixel() int {
	if p == PixelRGBA16F {
		return 8
	}
	return 4
}

// FrameFormat describes the frames of a session. Pitch is the row stride
// in bytes.
type FrameFormat struct {
	Tag    FormatTag
	Width  int
	Height int
	Pitch  int
}

// BufferHandle refers to a GPU-resident buffer holding a frame that can be
// imported without a host copy. NoBuffer means the frame must be copied.
type BufferHandle int

const NoBuffer BufferHandle = -1

// Valid reports whether h refers to an importable buffer.
func (h BufferHandle) Valid() bool {
	return h >= 0
}

type formatEntry struct {
	pixel   PixelFormat
	variant string
}

// formats maps every supported tag to its texture format and shader
// variant. Adding a colorspace-specific variant only touches this table.
var formats = map[FormatTag]formatEntry{
	FormatBGRA8:   {PixelBGRA, VariantGeneric},
	FormatRGBA8:   {PixelRGBA, VariantGeneric},
	FormatRGBA10:  {PixelRGBA10, VariantGeneric},
	FormatRGBA16F: {PixelRGBA16F, VariantGeneric},
}

func lookupFormat(tag FormatTag) (formatEntry, error) {
	entry, ok := formats[tag]
	if !ok {
		return formatEntry{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, tag)
	}
	return entry, nil
}

// Supported reports whether Setup accepts the tag.
func Supported(tag FormatTag) bool {
	_, ok := formats[tag]
	return ok
}

// PixelFormatOf returns the texture format frames tagged tag are stored in.
func PixelFormatOf(tag FormatTag) (PixelFormat, error) {
	entry, err := lookupFormat(tag)
	if err != nil {
		return 0, err
	}
	return entry.pixel, nil
}
