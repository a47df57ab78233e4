package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"runtime"

	"github.com/urfave/cli"

	"desktopview/internal/logger"
	"desktopview/pkg/config"
	"desktopview/pkg/desktop"
	"desktopview/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "desktopview"
	app.Description = "Renders a remote desktop frame stream with OpenGL"
	app.Usage = "desktopview [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to configuration file",
			Value: "config.yaml",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error); overrides the config",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "Also write the log to this file; overrides the config",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Exit after rendering this many frames (0 = run until closed)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "Frame format of the test source (bgra8, rgba8, rgba10, rgba16f)",
		},
		cli.BoolFlag{
			Name:  "zero-copy",
			Usage: "Feed frames through a GPU buffer instead of host copies",
		},
		cli.BoolFlag{
			Name:  "write-config",
			Usage: "Write the effective configuration to --config and exit",
		},
	}
	app.Action = runViewer

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error running viewer: %v", err)
	}
}

func runViewer(c *cli.Context) error {
	configPath := c.String("config")

	cfg, cfgErr := config.LoadConfig(configPath)

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	}
	if c.IsSet("format") {
		if _, err := desktop.ParseFormatTag(c.String("format")); err != nil {
			return err
		}
		cfg.Source.Format = c.String("format")
	}
	if c.Bool("zero-copy") {
		cfg.Source.ZeroCopy = true
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	switch {
	case cfgErr == nil:
		logger.Infof("Loaded configuration from %s", configPath)
	case errors.Is(cfgErr, fs.ErrNotExist):
		logger.Warnf("No configuration at %s, using defaults", configPath)
	default:
		return cfgErr
	}

	if c.Bool("write-config") {
		if err := config.SaveConfig(cfg, configPath); err != nil {
			return err
		}
		logger.Infof("Wrote configuration to %s", configPath)
		return nil
	}

	logger.Info("Starting desktop viewer...")

	viewer, err := engine.NewEngine(cfg, logger)
	if err != nil {
		return err
	}
	viewer.SetFrameLimit(c.Int("frames"))

	logger.Info("Engine initialized, starting render loop...")
	viewer.Run()
	return nil
}

func newLogger(cfg config.LogConfig) (*logger.Logger, error) {
	if cfg.File == "" {
		return logger.NewLogger(cfg.Level), nil
	}
	return logger.NewMultiLogger(cfg.Level, cfg.File)
}
