// Package desktop draws the captured remote desktop onto a GPU surface.
//
// A Desktop owns the frame texture, the shader variants that sample it and
// the quad it is drawn on. The surrounding viewer calls New once, Setup on
// every format change, then Update and Render once per frame, and Free on
// shutdown. Update and Render must run on the render thread; Setup and Free
// require the render loop to be idle. ToggleNightVision may be called from
// any goroutine.
package desktop

import (
	"errors"
	"fmt"
	"sync/atomic"

	"desktopview/internal/logger"
)

// Option section and keys read by New.
const (
	OptionSection   = "desktop-render"
	OptionNVGainMax = "nvGainMax"
	OptionNVGain    = "nvGain"
	OptionCBMode    = "cbMode"
)

// DefaultNightVisionKey toggles night vision unless Deps overrides it.
const DefaultNightVisionKey = "N"

// Deps are the collaborators a Desktop is built from.
type Deps struct {
	Device  Device
	Shaders ShaderTable
	Keys    Keybinder
	Alerts  Alerter
	Options Options
	Log     *logger.Logger

	// NightVisionKey names the key bound to ToggleNightVision.
	NightVisionKey string
}

// Desktop renders the latest remote frame.
type Desktop struct {
	display Display
	log     *logger.Logger
	alerts  Alerter

	texture Texture
	active  *ShaderVariant
	model   Model

	width, height int

	generic *ShaderVariant

	nvMax  int32
	nvGain atomic.Int32
	cbMode int32
}

// New builds the desktop's GPU resources against display. On failure
// everything already created is released and an error wrapping ErrInit is
// returned.
func New(display Display, deps Deps) (*Desktop, error) {
	if deps.Device == nil || deps.Options == nil {
		return nil, fmt.Errorf("%w: device and options are required", ErrInit)
	}

	d := &Desktop{
		display: display,
		log:     deps.Log,
		alerts:  deps.Alerts,
	}
	if d.log == nil {
		d.log = logger.Discard()
	}

	if err := d.init(deps); err != nil {
		d.log.Errorf("Failed to initialize the desktop: %v", err)
		d.Free()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	return d, nil
}

func (d *Desktop) init(deps Deps) error {
	var err error

	if d.texture, err = deps.Device.NewTexture(d.display); err != nil {
		return fmt.Errorf("failed to initialize the desktop texture: %w", err)
	}

	src, ok := deps.Shaders[VariantGeneric]
	if !ok {
		return fmt.Errorf("no source for the %s desktop shader", VariantGeneric)
	}
	if d.generic, err = newShaderVariant(deps.Device, VariantGeneric, src); err != nil {
		return err
	}

	if d.model, err = deps.Device.NewModel(); err != nil {
		return fmt.Errorf("failed to initialize the desktop model: %w", err)
	}
	d.model.SetDefault()
	d.model.SetTexture(d.texture)

	if err := d.readOptions(deps.Options); err != nil {
		return err
	}

	// nothing may fail once d is reachable from a keybind
	if deps.Keys != nil {
		key := deps.NightVisionKey
		if key == "" {
			key = DefaultNightVisionKey
		}
		if err := deps.Keys.Bind(key, "Toggle night vision mode", func() { d.ToggleNightVision() }); err != nil {
			return fmt.Errorf("failed to bind night vision key: %w", err)
		}
	}

	return nil
}

func (d *Desktop) readOptions(opts Options) error {
	nvMax, err := opts.Int(OptionSection, OptionNVGainMax)
	if err != nil {
		return err
	}
	nvGain, err := opts.Int(OptionSection, OptionNVGain)
	if err != nil {
		return err
	}
	cbMode, err := opts.Int(OptionSection, OptionCBMode)
	if err != nil {
		return err
	}

	if nvMax < 0 {
		d.log.Warnf("%s.%s is negative (%d), night vision disabled", OptionSection, OptionNVGainMax, nvMax)
		nvMax = 0
	}
	if nvGain < 0 || nvGain > nvMax {
		clamped := min(max(nvGain, 0), nvMax)
		d.log.Warnf("%s.%s %d outside [0, %d], using %d", OptionSection, OptionNVGain, nvGain, nvMax, clamped)
		nvGain = clamped
	}

	d.nvMax = int32(nvMax)
	d.nvGain.Store(int32(nvGain))
	d.cbMode = int32(cbMode)
	return nil
}

// Setup negotiates the frame format. An unsupported format or a texture
// failure leaves the desktop without an active shader, so Render fails
// until a later Setup succeeds. Must not overlap Update or Render.
func (d *Desktop) Setup(format FrameFormat, zeroCopy bool) error {
	entry, err := lookupFormat(format.Tag)
	if err != nil {
		d.active = nil
		d.log.Errorf("Unsupported frame format %s", format.Tag)
		return err
	}
	if d.texture == nil {
		d.active = nil
		return errors.New("desktop is freed")
	}

	if err := d.texture.Setup(entry.pixel, format.Width, format.Height, format.Pitch, true, zeroCopy); err != nil {
		d.active = nil
		d.log.Errorf("Failed to setup the desktop texture: %v", err)
		return fmt.Errorf("failed to setup the desktop texture: %w", err)
	}

	d.active = d.variant(entry.variant)
	d.width = format.Width
	d.height = format.Height

	d.log.Debugf("Desktop format %s %dx%d pitch %d zero-copy=%t",
		format.Tag, format.Width, format.Height, format.Pitch, zeroCopy)
	return nil
}

func (d *Desktop) variant(name string) *ShaderVariant {
	switch name {
	case VariantGeneric:
		return d.generic
	}
	return nil
}

// Update ingests a frame. A valid buf is imported directly and pixels are
// ignored; otherwise pixels are copied. Only the ingestion itself can fail:
// a texture that is still converting the previous frame, or fails to
// convert this one, keeps the last good image and Update succeeds.
func (d *Desktop) Update(pixels []byte, buf BufferHandle) error {
	if d.texture == nil {
		return fmt.Errorf("%w: desktop is freed", ErrIngest)
	}

	var err error
	if buf.Valid() {
		err = d.texture.UpdateFromBuffer(buf)
	} else {
		err = d.texture.UpdateFromFrame(pixels)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIngest, err)
	}

	if err := d.texture.Process(); err != nil && !errors.Is(err, ErrNotReady) {
		d.log.Errorf("Failed to process the desktop texture: %v", err)
	}
	return nil
}

// Render draws the desktop into rect. It returns ErrNoShader without
// touching the GPU when no format has been negotiated.
func (d *Desktop) Render(rect Rect, scale ScaleType, rot Rotation) error {
	v := d.active
	if v == nil {
		return ErrNoShader
	}

	// one load so the enable flag and gain agree
	gain := d.nvGain.Load()

	s := v.shader
	s.Use()
	s.Uniform4f(v.uPosition, rect.X, rect.Y, rect.ScaleX, rect.ScaleY)
	s.Uniform1i(v.uRotate, int32(rot))
	s.Uniform1i(v.uScaleAlgo, int32(scale.Algo()))
	s.Uniform2f(v.uSize, float32(d.width), float32(d.height))

	if gain != 0 {
		s.Uniform1i(v.uNV, 1)
		s.Uniform1f(v.uNVGain, float32(gain))
	} else {
		s.Uniform1i(v.uNV, 0)
	}

	s.Uniform1i(v.uCBMode, d.cbMode)
	d.model.Render()
	return nil
}

// Free releases the texture, the shaders and the model, in that order.
// It is safe on a nil or partially built Desktop and on repeated calls.
// Must not overlap Update or Render.
func (d *Desktop) Free() {
	if d == nil {
		return
	}

	d.active = nil

	if d.texture != nil {
		d.texture.Free()
		d.texture = nil
	}
	if d.generic != nil {
		d.generic.free()
		d.generic = nil
	}
	if d.model != nil {
		d.model.Free()
		d.model = nil
	}
}

// Size returns the dimensions from the last successful Setup.
func (d *Desktop) Size() (width, height int) {
	return d.width, d.height
}

// Active reports whether a shader is selected and Render can draw.
func (d *Desktop) Active() bool {
	return d.active != nil
}

// ColorblindMode returns the configured colorblind mode.
func (d *Desktop) ColorblindMode() int {
	return int(d.cbMode)
}
