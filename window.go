package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// WindowComponent is an on-screen surface. Width and Height are in the same
// pixel units as the cursor position, with the origin at the top-left corner.
type WindowComponent struct {
	Title  string
	Width  int
	Height int

	cursor    mgl32.Vec2
	hasCursor bool
}

// PrimaryWindow flags the window that RenderTargetPrimaryWindow resolves to.
// Exactly one window should carry it.
type PrimaryWindow struct{}

func NewWindow(title string, width, height int) WindowComponent {
	return WindowComponent{Title: title, Width: width, Height: height}
}

func (w *WindowComponent) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(w.Width), float32(w.Height)}
}

// CursorPosition reports where the pointer is over this window. It reports
// false when the pointer is elsewhere or outside the window bounds.
func (w *WindowComponent) CursorPosition() (mgl32.Vec2, bool) {
	if !w.hasCursor {
		return mgl32.Vec2{}, false
	}
	x, y := w.cursor.X(), w.cursor.Y()
	if x < 0 || y < 0 || x >= float32(w.Width) || y >= float32(w.Height) {
		return mgl32.Vec2{}, false
	}
	return w.cursor, true
}

func (w *WindowComponent) SetCursorPosition(pos mgl32.Vec2) {
	w.cursor = pos
	w.hasCursor = true
}

func (w *WindowComponent) ClearCursor() {
	w.cursor = mgl32.Vec2{}
	w.hasCursor = false
}
