// Package termsurface turns a terminal into a gekko window. Each character
// cell is one pixel; mouse events place the cursor at the centre of the cell
// under the pointer.
package termsurface

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-cursor"
)

const eventBuffer = 100

type Module struct {
	Title   string
	Primary bool
	// Screen defaults to the controlling terminal. Tests pass a
	// tcell.SimulationScreen.
	Screen tcell.Screen
}

// State is the resource holding the terminal and the entity mirroring it.
type State struct {
	Window gekko.EntityId
	Screen tcell.Screen

	events    chan tcell.Event
	done      chan struct{}
	stopped   chan struct{}
	width     int
	height    int
	cursor    mgl32.Vec2
	hasCursor bool
	quit      bool
}

func (m Module) Install(app *gekko.App, cmd *gekko.Commands) {
	if app.HasResource(&State{}) {
		return
	}

	screen := m.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			panic(err)
		}
	}
	if err := screen.Init(); err != nil {
		panic(err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)

	s := NewState(screen)
	components := []any{gekko.NewWindow(m.Title, s.width, s.height)}
	if m.Primary {
		components = append(components, gekko.PrimaryWindow{})
	}
	s.Window = cmd.AddEntity(components...)
	s.startPump()

	cmd.AddResources(s)
	app.UseSystem(
		gekko.System(syncTerminalSystem).
			InStage(gekko.PreUpdate),
	)
	app.UseSystem(
		gekko.System(closeTerminalSystem).
			InStage(gekko.Finale),
	)
}

// NewState wraps an initialised screen without starting the event pump.
func NewState(screen tcell.Screen) *State {
	w, h := screen.Size()
	return &State{
		Screen: screen,
		events:  make(chan tcell.Event, eventBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		width:   w,
		height:  h,
	}
}

// startPump forwards terminal events until the screen is finalised or Close
// is called, even if nobody drains them any more.
func (s *State) startPump() {
	screen, events, done, stopped := s.Screen, s.events, s.done, s.stopped
	go func() {
		defer close(stopped)
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalised.
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
}

// HandleEvent folds one terminal event into the state.
func (s *State) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		s.cursor = mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
		s.hasCursor = true
	case *tcell.EventResize:
		w, h := ev.Size()
		if w != s.width || h != s.height {
			s.width, s.height = w, h
			s.hasCursor = false
		}
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			s.quit = true
		}
	}
}

// Apply copies the terminal size and pointer into window.
func (s *State) Apply(window *gekko.WindowComponent) {
	window.Width, window.Height = s.width, s.height
	if s.hasCursor {
		window.SetCursorPosition(s.cursor)
	} else {
		window.ClearCursor()
	}
}

func (s *State) QuitRequested() bool {
	return s.quit
}

// DrawText writes text at cell (x, y). Call Show to flush.
func (s *State) DrawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= s.width {
			return
		}
		s.Screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (s *State) Show() {
	s.Screen.Show()
}

func (s *State) Close() {
	if s.Screen == nil {
		return
	}
	close(s.done)
	s.Screen.Fini()
	s.Screen = nil
}

func syncTerminalSystem(cmd *gekko.Commands, s *State) {
	if s.Screen == nil {
		return
	}

drain:
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				break drain
			}
			s.HandleEvent(ev)
		default:
			break drain
		}
	}

	if s.quit {
		cmd.Exit()
	}

	window, err := gekko.MakeQuery1[gekko.WindowComponent](cmd).Get(s.Window)
	if err != nil {
		return
	}
	s.Apply(window)
}

func closeTerminalSystem(cmd *gekko.Commands, s *State) {
	if cmd.Exiting() {
		s.Close()
	}
}
