package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestWindow_CursorPosition(t *testing.T) {
	w := NewWindow("main", 800, 600)
	assert.Equal(t, mgl32.Vec2{800, 600}, w.Size())

	_, ok := w.CursorPosition()
	assert.False(t, ok, "no cursor before the backend reports one")

	w.SetCursorPosition(mgl32.Vec2{400, 300})
	pos, ok := w.CursorPosition()
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec2{400, 300}, pos)

	w.ClearCursor()
	_, ok = w.CursorPosition()
	assert.False(t, ok)
}

func TestWindow_CursorOutsideBounds(t *testing.T) {
	for _, pos := range []mgl32.Vec2{{-1, 10}, {10, -0.5}, {800, 10}, {10, 600}} {
		w := NewWindow("main", 800, 600)
		w.SetCursorPosition(pos)
		_, ok := w.CursorPosition()
		assert.False(t, ok, "cursor %v", pos)
	}

	// A window shrinking under the cursor hides it.
	w := NewWindow("main", 800, 600)
	w.SetCursorPosition(mgl32.Vec2{700, 500})
	w.Width, w.Height = 640, 480
	_, ok := w.CursorPosition()
	assert.False(t, ok)
}

func TestAssetId(t *testing.T) {
	a, b := NewAssetId(), NewAssetId()
	assert.NotEqual(t, a, b)
	assert.True(t, a.Valid())
	assert.False(t, AssetId("not-a-uuid").Valid())
}
