package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gekko "github.com/gekko3d/gekko-cursor"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cursorray.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  debug: true
window:
  width: 1024
camera:
  position: [1, 2, 3]
  projection: orthographic
  scale: 0.5
plane:
  origin: [0, -1, 0]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "cursorray", cfg.Logging.Prefix)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, cfg.Plane.Origin)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cfg.Plane.Normal)

	projection, err := cfg.Camera.projection()
	require.NoError(t, err)
	assert.Equal(t, gekko.OrthographicProjection, projection.Kind)
	assert.Equal(t, float32(0.5), projection.Scale)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "window: [1, 2"},
		{"empty window", "window:\n  width: 0\n"},
		{"zero normal", "plane:\n  normal: [0, 0, 0]\n"},
		{"camera looks at itself", "camera:\n  position: [0, 0, 0]\n  look_at: [0, 0, 0]\n"},
		{"unknown projection", "camera:\n  projection: fisheye\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPerspectiveProjectionConvertsDegrees(t *testing.T) {
	projection, err := DefaultConfig().Camera.projection()
	require.NoError(t, err)
	assert.Equal(t, gekko.PerspectiveProjection, projection.Kind)
	assert.InDelta(t, 0.7853982, projection.FovY, 1e-6)
}
