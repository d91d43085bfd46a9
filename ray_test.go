package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRay3D_GetPoint(t *testing.T) {
	ray := Ray3D{Origin: mgl32.Vec3{1, 2, 3}, Direction: mgl32.Vec3{0, 0, -1}}
	assert.Equal(t, mgl32.Vec3{1, 2, 1}, ray.GetPoint(2))
}

func TestRay3D_IntersectPlane(t *testing.T) {
	ground := mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name     string
		ray      Ray3D
		hit      bool
		expected float32
	}{
		{"straight down", Ray3D{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}}, true, 5},
		{"slanted", Ray3D{Origin: mgl32.Vec3{0, 3, 0}, Direction: mgl32.Vec3{0.6, -0.8, 0}}, true, 3.75},
		{"parallel", Ray3D{Origin: mgl32.Vec3{0, 1, 0}, Direction: mgl32.Vec3{1, 0, 0}}, false, 0},
		{"pointing away", Ray3D{Origin: mgl32.Vec3{0, 1, 0}, Direction: mgl32.Vec3{0, 1, 0}}, false, 0},
		{"from below", Ray3D{Origin: mgl32.Vec3{0, -2, 0}, Direction: mgl32.Vec3{0, 1, 0}}, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ok := tt.ray.IntersectPlane(mgl32.Vec3{}, ground)
			require.Equal(t, tt.hit, ok)
			assert.InDelta(t, tt.expected, dist, 1e-5)
		})
	}
}

func TestTransform_Ray(t *testing.T) {
	tr := IdentityTransform()
	tr.Position = mgl32.Vec3{1, 1, 1}
	tr.Rotation = rotationLookingTo(mgl32.Vec3{1, 0, 0})

	ray := tr.Ray()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, ray.Origin)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, ray.Direction, 1e-5)
}
