package gekko

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrDegenerateScale = errors.New("transform has a zero scale axis")

// Canonical object axes. Objects face -Z with +Y up.
var (
	forwardAxis = mgl32.Vec3{0, 0, -1}
	upAxis      = mgl32.Vec3{0, 1, 0}
)

// TransformComponent is the resolved world-space pose of an entity.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// LocalTransformComponent is the pose of an entity relative to its Parent, or
// relative to the world for roots.
type LocalTransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Parent links an entity into the transform hierarchy.
type Parent struct {
	Entity EntityId
}

func IdentityTransform() TransformComponent {
	return TransformComponent{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func IdentityLocalTransform() LocalTransformComponent {
	return LocalTransformComponent(IdentityTransform())
}

// Local returns the same pose as a local transform, i.e. relative to an
// identity parent.
func (t TransformComponent) Local() LocalTransformComponent {
	return LocalTransformComponent(t)
}

// MulTransform places local inside t:
//
//	Position = t.Position + t.Rotation * (t.Scale ⊙ local.Position)
//	Rotation = t.Rotation * local.Rotation
//	Scale    = t.Scale ⊙ local.Scale
func (t TransformComponent) MulTransform(local LocalTransformComponent) TransformComponent {
	scaled := mulElem(t.Scale, local.Position)
	return TransformComponent{
		Position: t.Position.Add(t.Rotation.Rotate(scaled)),
		Rotation: t.Rotation.Mul(local.Rotation).Normalize(),
		Scale:    mulElem(t.Scale, local.Scale),
	}
}

// ReparentedTo re-expresses the world pose t relative to parent, so that
// parent.MulTransform(result) reproduces t.
func (t TransformComponent) ReparentedTo(parent TransformComponent) (LocalTransformComponent, error) {
	if parent.Scale.X() == 0 || parent.Scale.Y() == 0 || parent.Scale.Z() == 0 {
		return LocalTransformComponent{}, fmt.Errorf("parent scale %v: %w", parent.Scale, ErrDegenerateScale)
	}

	invRot := parent.Rotation.Inverse()
	rel := invRot.Rotate(t.Position.Sub(parent.Position))
	return LocalTransformComponent{
		Position: divElem(rel, parent.Scale),
		Rotation: invRot.Mul(t.Rotation).Normalize(),
		Scale:    divElem(t.Scale, parent.Scale),
	}, nil
}

func (t TransformComponent) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(forwardAxis)
}

func (t TransformComponent) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(upAxis)
}

// Mat4 returns the object-to-world matrix T * R * S.
func (t TransformComponent) Mat4() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// LookAtTransform places an object at eye facing target. When up is parallel
// to the viewing direction another world axis is used instead.
func LookAtTransform(eye, target, up mgl32.Vec3) TransformComponent {
	tr := IdentityTransform()
	tr.Position = eye

	dir := target.Sub(eye)
	if dir.Len() < 1e-6 {
		return tr
	}
	if dir.Normalize().Cross(up.Normalize()).Len() < 1e-4 {
		up = mgl32.Vec3{0, 0, 1}
		if dir.Normalize().Cross(up).Len() < 1e-4 {
			up = mgl32.Vec3{0, 1, 0}
		}
	}

	// The view matrix rotates world into camera space; the object rotation is
	// its inverse.
	view := mgl32.LookAtV(eye, target, up)
	tr.Rotation = mgl32.Mat4ToQuat(view).Conjugate().Normalize()
	return tr
}

// rotationLookingTo returns the shortest-arc rotation turning the forward
// axis (-Z) onto dir. Roll around dir is whatever that arc produces; for
// dir = +Z it is a half turn about +Y.
func rotationLookingTo(dir mgl32.Vec3) mgl32.Quat {
	dir = dir.Normalize()

	// w is 1 + forwardAxis·dir = 1 - dir.z. Near +Z that subtraction cancels,
	// so it is rewritten as (x² + y²) / (1 + z) there.
	var w float32
	if dir.Z() > 0 {
		w = (dir.X()*dir.X() + dir.Y()*dir.Y()) / (1 + dir.Z())
	} else {
		w = 1 - dir.Z()
	}
	v := forwardAxis.Cross(dir)
	if dir.Z() > 0 && v.Len() < 1e-7 {
		return mgl32.QuatRotate(math.Pi, upAxis)
	}
	return mgl32.Quat{W: w, V: v}.Normalize()
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func divElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() / b.X(), a.Y() / b.Y(), a.Z() / b.Z()}
}
