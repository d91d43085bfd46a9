package gekko

import (
	"fmt"
)

// CursorRay makes an entity follow the pointer ray of a camera. The entity's
// transform is rewritten every frame: positioned on the camera's near plane
// under the cursor and facing (-Z) into the scene.
//
// A zero Target is unbound and reported as CameraNotFound.
type CursorRay struct {
	Target EntityId
}

// CursorRayBundle is what a cursor ray entity needs. Add a Parent component
// to the spawned entity to place it inside a hierarchy.
type CursorRayBundle struct {
	CursorRay CursorRay
	Local     LocalTransformComponent
	World     TransformComponent
}

func NewCursorRayBundle(camera EntityId) CursorRayBundle {
	return CursorRayBundle{
		CursorRay: CursorRay{Target: camera},
		Local:     IdentityLocalTransform(),
		World:     IdentityTransform(),
	}
}

// Components spreads the bundle for Commands.AddEntity.
func (b CursorRayBundle) Components() []any {
	return []any{b.CursorRay, b.Local, b.World}
}

// CursorRayErrorKind classifies why a cursor ray was not updated. Kinds are
// errors themselves so errors.Is(err, CameraNotFound) works.
type CursorRayErrorKind int

const (
	CameraNotFound CursorRayErrorKind = iota + 1
	PrimarySurfaceAmbiguous
	UnsupportedRenderTarget
	SurfaceNotFound
	UnprojectionFailed
	ParentTransformNotFound
	ParentTransformDegenerate
)

func (k CursorRayErrorKind) String() string {
	switch k {
	case CameraNotFound:
		return "CameraNotFound"
	case PrimarySurfaceAmbiguous:
		return "PrimarySurfaceAmbiguous"
	case UnsupportedRenderTarget:
		return "UnsupportedRenderTarget"
	case SurfaceNotFound:
		return "SurfaceNotFound"
	case UnprojectionFailed:
		return "UnprojectionFailed"
	case ParentTransformNotFound:
		return "ParentTransformNotFound"
	case ParentTransformDegenerate:
		return "ParentTransformDegenerate"
	default:
		return fmt.Sprintf("CursorRayErrorKind(%d)", int(k))
	}
}

func (k CursorRayErrorKind) Error() string {
	return k.String()
}

type CursorRayError struct {
	Kind   CursorRayErrorKind
	Entity EntityId // the cursor ray
	Camera EntityId
	Target RenderTarget
	Err    error // underlying lookup or unprojection error, if any
}

func (e *CursorRayError) Error() string {
	var detail string
	switch e.Kind {
	case CameraNotFound:
		detail = fmt.Sprintf("camera %d was not found: %v", e.Camera, e.Err)
	case PrimarySurfaceAmbiguous:
		detail = fmt.Sprintf("camera %d: a single primary window was not found: %v", e.Camera, e.Err)
	case UnsupportedRenderTarget:
		detail = fmt.Sprintf("camera %d: %v is not a window", e.Camera, e.Target)
	case SurfaceNotFound:
		detail = fmt.Sprintf("camera %d: window for %v was not found: %v", e.Camera, e.Target, e.Err)
	case UnprojectionFailed:
		detail = fmt.Sprintf("camera %d: %v", e.Camera, e.Err)
	case ParentTransformNotFound:
		detail = fmt.Sprintf("a parent world transform was not found: %v", e.Err)
	case ParentTransformDegenerate:
		detail = fmt.Sprintf("cannot re-express the ray against its parent: %v", e.Err)
	default:
		detail = fmt.Sprint(e.Err)
	}
	return fmt.Sprintf("%s: cursor ray %d: %s", e.Kind, e.Entity, detail)
}

func (e *CursorRayError) Unwrap() error {
	return e.Err
}

func (e *CursorRayError) Is(target error) bool {
	kind, ok := target.(CursorRayErrorKind)
	return ok && kind == e.Kind
}
