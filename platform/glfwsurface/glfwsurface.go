// Package glfwsurface publishes a native GLFW window as a gekko window entity:
// its size and the pointer position are copied into the WindowComponent every
// frame, before cursor rays are computed.
package glfwsurface

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-cursor"
)

type Module struct {
	Width   int
	Height  int
	Title   string
	Primary bool
}

// NewModule creates a module for one window. Zero sizes get defaults.
func NewModule(width, height int, title string, primary bool) Module {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Gekko"
	}
	return Module{Width: width, Height: height, Title: title, Primary: primary}
}

// State is the resource holding the native window and the entity mirroring it.
type State struct {
	Window gekko.EntityId

	glfwWindow *glfw.Window
}

func (m Module) Install(app *gekko.App, cmd *gekko.Commands) {
	if app.HasResource(&State{}) {
		return
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	// Nothing is drawn through GLFW itself.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(m.Width, m.Height, m.Title, nil, nil)
	if err != nil {
		panic(err)
	}

	components := []any{gekko.NewWindow(m.Title, m.Width, m.Height)}
	if m.Primary {
		components = append(components, gekko.PrimaryWindow{})
	}

	cmd.AddResources(&State{
		Window:     cmd.AddEntity(components...),
		glfwWindow: win,
	})
	app.UseSystem(
		gekko.System(syncWindowSystem).
			InStage(gekko.PreUpdate),
	)
	app.UseSystem(
		gekko.System(closeWindowSystem).
			InStage(gekko.Finale),
	)
}

func syncWindowSystem(cmd *gekko.Commands, s *State) {
	if s.glfwWindow == nil {
		return
	}
	glfw.PollEvents()

	if s.glfwWindow.ShouldClose() {
		cmd.Exit()
	}

	window, err := gekko.MakeQuery1[gekko.WindowComponent](cmd).Get(s.Window)
	if err != nil {
		// Spawned this frame, not flushed yet.
		return
	}

	window.Width, window.Height = s.glfwWindow.GetSize()

	if s.glfwWindow.GetAttrib(glfw.Hovered) != glfw.True {
		window.ClearCursor()
		return
	}
	x, y := s.glfwWindow.GetCursorPos()
	window.SetCursorPosition(mgl32.Vec2{float32(x), float32(y)})
}

func closeWindowSystem(cmd *gekko.Commands, s *State) {
	if !cmd.Exiting() || s.glfwWindow == nil {
		return
	}
	s.glfwWindow.Destroy()
	s.glfwWindow = nil
	glfw.Terminate()
}
