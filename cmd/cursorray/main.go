// Command cursorray shows a cursor ray following the pointer over a terminal or
// a native window, and reports where it meets a plane.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	gekko "github.com/gekko3d/gekko-cursor"
	"github.com/gekko3d/gekko-cursor/platform/glfwsurface"
	"github.com/gekko3d/gekko-cursor/platform/termsurface"
)

const plotSize = 512

var (
	configPath = flag.String("config", "", "YAML config file")
	backend    = flag.String("backend", "term", "Window backend: term or glfw")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	plotPath   = flag.String("plot", "", "Write plane hits to this PNG on exit")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanup such as closing the log
// file happens before main exits.
func run() int {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cursorray: %v\n", err)
		return 1
	}
	if *debug {
		cfg.Logging.Debug = true
	}

	var surface gekko.Module
	switch *backend {
	case "term":
		surface = termsurface.Module{Title: cfg.Window.Title, Primary: true}
	case "glfw":
		surface = glfwsurface.NewModule(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, true)
	default:
		fmt.Fprintf(os.Stderr, "cursorray: unknown backend %q\n", *backend)
		return 2
	}

	logOut, closeLog, err := logWriter(cfg.Logging, *backend == "term")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cursorray: %v\n", err)
		return 1
	}
	defer closeLog()

	scene := &Scene{Plane: cfg.Plane}
	app := newApp(cfg, logOut, surface, scene)
	if *backend == "term" {
		app.UseSystem(
			gekko.System(hudSystem).
				InStage(gekko.Render),
		)
	}
	limiter := &frameLimiter{}
	app.UseSystem(
		gekko.System(limiter.paceSystem).
			InStage(gekko.Finale),
	)

	app.Run()

	if *plotPath != "" {
		if err := WritePlot(*plotPath, scene.Hits, cfg.Plane, plotSize); err != nil {
			fmt.Fprintf(os.Stderr, "cursorray: %v\n", err)
			return 1
		}
	}
	return 0
}

// newApp wires the demo around any window backend.
func newApp(cfg Config, logOut io.Writer, surface gekko.Module, scene *Scene) *gekko.App {
	return gekko.NewAppBuilder().
		UseModule(
			gekko.LoggingModule{Prefix: cfg.Logging.Prefix, Debug: cfg.Logging.Debug, Out: logOut, Err: logOut},
			gekko.TimeModule{},
			surface,
			gekko.HierarchyModule{},
			gekko.CursorRayModule{},
			demoModule{cfg: cfg, scene: scene},
		).
		Build()
}

// logWriter picks where logs go. A terminal backend owns stdout, so without a
// log file the output is dropped.
func logWriter(cfg LoggingConfig, terminal bool) (io.Writer, func(), error) {
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if terminal {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}
