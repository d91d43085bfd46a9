package gekko

import (
	"errors"
)

// CursorRayStage runs after PreUpdate, where window backends publish cursor
// positions, and before Update, where gameplay reads the rays.
var CursorRayStage = Stage{Name: "CursorRay"}

type CursorRayModule struct{}

func (CursorRayModule) Install(app *App, cmd *Commands) {
	if !app.HasStage(CursorRayStage) {
		app.UseStage(CursorRayStage, AfterStage(PreUpdate))
	}
	cmd.AddResources(&CursorRayDiagnostics{})
	app.UseSystem(
		System(UpdateCursorRaysSystem).
			InStage(CursorRayStage),
	)
}

// CursorRayDiagnostics holds the failures of the most recent update.
type CursorRayDiagnostics struct {
	Errors []error
}

func (d *CursorRayDiagnostics) Count(kind CursorRayErrorKind) int {
	n := 0
	for _, err := range d.Errors {
		if errors.Is(err, kind) {
			n++
		}
	}
	return n
}

type cursorRayOutcome struct {
	local    LocalTransformComponent
	world    TransformComponent
	dstLocal *LocalTransformComponent
	dstWorld *TransformComponent
}

// UpdateCursorRaysSystem recomputes every cursor ray from its camera. All
// rays are resolved against the same state before any is written, then the
// successes are applied and the failures logged. A failed or pointer-less ray
// keeps its previous transform.
func UpdateCursorRaysSystem(cmd *Commands, diagnostics *CursorRayDiagnostics) {
	resolver := cursorRayResolver{
		cameras:   MakeQuery2[CameraComponent, TransformComponent](cmd),
		windows:   MakeQuery1[WindowComponent](cmd),
		primaries: MakeQuery1[PrimaryWindow](cmd),
		worlds:    MakeQuery1[TransformComponent](cmd),
	}

	var (
		outcomes []cursorRayOutcome
		failures []error
	)
	MakeQuery4[CursorRay, LocalTransformComponent, TransformComponent, Parent](cmd).Map(
		func(eid EntityId, ray *CursorRay, local *LocalTransformComponent, world *TransformComponent, parent *Parent) bool {
			newWorld, newLocal, ok, err := resolver.resolve(eid, *ray, parent)
			switch {
			case err != nil:
				failures = append(failures, err)
			case ok:
				outcomes = append(outcomes, cursorRayOutcome{
					local:    newLocal,
					world:    newWorld,
					dstLocal: local,
					dstWorld: world,
				})
			}
			return true
		},
		TransformComponent{}, Parent{},
	)

	for _, o := range outcomes {
		*o.dstLocal = o.local
		if o.dstWorld != nil {
			*o.dstWorld = o.world
		}
	}

	logger := cmd.Logger()
	for _, err := range failures {
		logger.Errorf("%v", err)
	}
	diagnostics.Errors = failures
}

type cursorRayResolver struct {
	cameras   Query2[CameraComponent, TransformComponent]
	windows   Query1[WindowComponent]
	primaries Query1[PrimaryWindow]
	worlds    Query1[TransformComponent]
}

// resolve computes the new world and local pose of one cursor ray. ok is
// false with a nil error when the pointer is not over the camera's window.
func (r cursorRayResolver) resolve(eid EntityId, ray CursorRay, parent *Parent) (TransformComponent, LocalTransformComponent, bool, error) {
	fail := func(kind CursorRayErrorKind, target RenderTarget, err error) (TransformComponent, LocalTransformComponent, bool, error) {
		return TransformComponent{}, LocalTransformComponent{}, false, &CursorRayError{
			Kind:   kind,
			Entity: eid,
			Camera: ray.Target,
			Target: target,
			Err:    err,
		}
	}

	camera, cameraWorld, err := r.cameras.Get(ray.Target)
	if err != nil {
		return fail(CameraNotFound, RenderTarget{}, err)
	}

	var windowId EntityId
	switch camera.Target.Kind {
	case RenderTargetPrimaryWindow:
		windowId, _, err = r.primaries.Single()
		if err != nil {
			return fail(PrimarySurfaceAmbiguous, camera.Target, err)
		}
	case RenderTargetWindow:
		windowId = camera.Target.Window
	default:
		return fail(UnsupportedRenderTarget, camera.Target, nil)
	}

	window, err := r.windows.Get(windowId)
	if err != nil {
		return fail(SurfaceNotFound, camera.Target, err)
	}

	cursor, ok := window.CursorPosition()
	if !ok {
		return TransformComponent{}, LocalTransformComponent{}, false, nil
	}

	cameraRay, err := camera.ViewportToWorld(*cameraWorld, window.Width, window.Height, cursor)
	if err != nil {
		return fail(UnprojectionFailed, camera.Target, err)
	}

	world := IdentityTransform()
	world.Position = cameraRay.Origin
	world.Rotation = rotationLookingTo(cameraRay.Direction)

	if parent == nil {
		return world, world.Local(), true, nil
	}

	parentWorld, err := r.worlds.Get(parent.Entity)
	if err != nil {
		return fail(ParentTransformNotFound, camera.Target, err)
	}
	local, err := world.ReparentedTo(*parentWorld)
	if err != nil {
		return fail(ParentTransformDegenerate, camera.Target, err)
	}
	return world, local, true, nil
}
