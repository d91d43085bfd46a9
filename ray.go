package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const planeEpsilon float32 = 1e-6

type Ray3D struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray3D) GetPoint(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlane returns the distance along the ray to the plane through
// planeOrigin with the given normal. It reports false for rays parallel to
// the plane or pointing away from it.
func (r Ray3D) IntersectPlane(planeOrigin, planeNormal mgl32.Vec3) (float32, bool) {
	denom := planeNormal.Dot(r.Direction)
	if float32(math.Abs(float64(denom))) <= planeEpsilon {
		return 0, false
	}

	t := planeOrigin.Sub(r.Origin).Dot(planeNormal) / denom
	if t <= planeEpsilon {
		return 0, false
	}
	return t, true
}

// Ray reads a transform as a ray: its position and forward axis.
func (t TransformComponent) Ray() Ray3D {
	return Ray3D{Origin: t.Position, Direction: t.Forward().Normalize()}
}
