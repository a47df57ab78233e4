package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"desktopview/internal/logger"
	"desktopview/pkg/config"
	"desktopview/pkg/desktop"
	"desktopview/pkg/gpu"
)

// Engine owns the viewer window and drives the desktop renderer
type Engine struct {
	window  *glfw.Window
	config  *config.Config
	logger  *logger.Logger
	device  *gpu.Device
	desktop *desktop.Desktop
	keys    *Keybinds
	alerts  *Alerts

	feed *feed

	rotation          desktop.Rotation
	fbWidth, fbHeight int
	nextFormat        bool

	isRunning  bool
	frameRate  int
	frameLimit int
	frames     int
}

// NewEngine opens the window and builds the renderer
func NewEngine(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Window.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	e := &Engine{
		window:    window,
		config:    cfg,
		logger:    log,
		rotation:  desktop.RotationFromDegrees(cfg.Window.Rotate),
		frameRate: cfg.Window.FrameRate,
	}

	if err := e.init(); err != nil {
		e.cleanup()
		return nil, err
	}
	return e, nil
}

func (e *Engine) init() error {
	var err error

	if e.device, err = gpu.NewDevice(e.logger); err != nil {
		return err
	}

	e.keys = NewKeybinds()
	e.alerts = NewAlerts(e.logger, e.config.Window.Title, time.Duration(e.config.Window.AlertSeconds)*time.Second)

	e.window.SetKeyCallback(e.keys.Callback)
	e.window.SetFramebufferSizeCallback(e.resizeCallback)
	e.fbWidth, e.fbHeight = e.window.GetFramebufferSize()

	if err := e.keys.Bind(e.config.Input.Rotate, "Rotate the desktop", e.rotate); err != nil {
		return fmt.Errorf("failed to bind rotate key: %w", err)
	}
	if err := e.keys.Bind(e.config.Input.Format, "Cycle the source format", func() { e.nextFormat = true }); err != nil {
		return fmt.Errorf("failed to bind format key: %w", err)
	}
	if err := e.keys.Bind(e.config.Input.Quit, "Quit", e.Stop); err != nil {
		return fmt.Errorf("failed to bind quit key: %w", err)
	}

	e.desktop, err = desktop.New(e.window, desktop.Deps{
		Device:         e.device,
		Shaders:        gpu.DesktopShaders(),
		Keys:           e.keys,
		Alerts:         e.alerts,
		Options:        e.config,
		Log:            e.logger,
		NightVisionKey: e.config.Input.NightVision,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize desktop renderer: %w", err)
	}

	tag, err := desktop.ParseFormatTag(e.config.Source.Format)
	if err != nil {
		return err
	}
	e.feed = newFeed(e.logger, e.device, e.desktop, e.config.Source.Width, e.config.Source.Height, e.config.Source.ZeroCopy)
	if err := e.feed.switchTo(tag); err != nil {
		return err
	}

	for _, line := range e.keys.Describe() {
		e.logger.Infof("Keybind %s", line)
	}
	return nil
}

// SetFrameLimit stops Run after n frames; 0 runs until the window closes.
func (e *Engine) SetFrameLimit(n int) {
	e.frameLimit = n
}

// Run starts the render loop
func (e *Engine) Run() {
	e.isRunning = true

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()

		e.update()
		e.render()

		// Swap buffers and poll events
		e.window.SwapBuffers()
		glfw.PollEvents()

		e.frames++
		if e.frameLimit > 0 && e.frames >= e.frameLimit {
			e.logger.Infof("Frame limit %d reached", e.frameLimit)
			e.isRunning = false
		}

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// Stop ends the loop after the current frame
func (e *Engine) Stop() {
	e.isRunning = false
}

// cycleFormat moves the source to the next supported format.
func (e *Engine) cycleFormat() {
	tag := e.feed.next()
	if err := e.feed.switchTo(tag); err != nil {
		e.alerts.Alert(desktop.AlertError, "Format %s failed", tag)
		e.logger.Errorf("Failed to switch source format: %v", err)
		return
	}
	e.alerts.Alert(desktop.AlertInfo, "Format %s", tag)
}

// update feeds the next source frame to the desktop
func (e *Engine) update() {
	if e.nextFormat {
		e.nextFormat = false
		e.cycleFormat()
	}

	pixels := e.feed.source.Next()

	var err error
	if ext := e.feed.external; ext.Valid() {
		if err = e.device.WriteExternalBuffer(ext, pixels); err == nil {
			err = e.desktop.Update(nil, ext)
		}
	} else {
		err = e.desktop.Update(pixels, desktop.NoBuffer)
	}
	if err != nil {
		e.logger.Errorf("Failed to update the desktop: %v", err)
	}
}

// render draws the current frame
func (e *Engine) render() {
	gl.Viewport(0, 0, int32(e.fbWidth), int32(e.fbHeight))
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	w, h := e.desktop.Size()
	rect, scale := Layout(e.fbWidth, e.fbHeight, w, h, e.rotation, e.config.Window.DontUpscale)
	if err := e.desktop.Render(rect, scale, e.rotation); err != nil && !errors.Is(err, desktop.ErrNoShader) {
		e.logger.Errorf("Failed to render the desktop: %v", err)
	}

	e.alerts.Update(e.window)
}

func (e *Engine) rotate() {
	e.rotation = e.rotation.Next()
	e.alerts.Alert(desktop.AlertInfo, "Rotation %d", e.rotation.Degrees())
}

func (e *Engine) resizeCallback(_ *glfw.Window, width int, height int) {
	e.fbWidth, e.fbHeight = width, height
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down engine...")
	e.desktop.Free()
	e.desktop = nil
	if e.feed != nil {
		e.feed.close()
	}
	e.window.Destroy()
	glfw.Terminate()
}
