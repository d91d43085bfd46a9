package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-cursor"
	"github.com/gekko3d/gekko-cursor/platform/termsurface"
)

const framePeriod = 16 * time.Millisecond

// Scene is the demo resource: the spawned entities and every point where the
// cursor ray met the plane.
type Scene struct {
	Camera gekko.EntityId
	Ray    gekko.EntityId
	Plane  PlaneConfig

	Hits    []mgl32.Vec3
	LastHit *mgl32.Vec3
}

type demoModule struct {
	cfg   Config
	scene *Scene
}

func (m demoModule) Install(app *gekko.App, cmd *gekko.Commands) {
	projection, err := m.cfg.Camera.projection()
	if err != nil {
		panic(err)
	}

	camera := cmd.AddEntity(
		gekko.NewCamera(gekko.PrimaryWindowTarget(), projection),
		m.cfg.Camera.transform(),
	)
	ray := cmd.AddEntity(gekko.NewCursorRayBundle(camera).Components()...)

	m.scene.Camera = camera
	m.scene.Ray = ray
	m.scene.Plane = m.cfg.Plane
	cmd.AddResources(m.scene)
	app.UseSystem(
		gekko.System(planeHitSystem).
			InStage(gekko.Update),
	)
}

// planeHitSystem intersects this frame's cursor ray with the plane. Frames
// without a pointer over the window record nothing.
func planeHitSystem(cmd *gekko.Commands, scene *Scene) {
	scene.LastHit = nil

	primary, _, err := gekko.MakeQuery1[gekko.PrimaryWindow](cmd).Single()
	if err != nil {
		return
	}
	window, err := gekko.MakeQuery1[gekko.WindowComponent](cmd).Get(primary)
	if err != nil {
		return
	}
	if _, ok := window.CursorPosition(); !ok {
		return
	}

	world, err := gekko.MakeQuery1[gekko.TransformComponent](cmd).Get(scene.Ray)
	if err != nil {
		return
	}

	ray := world.Ray()
	t, ok := ray.IntersectPlane(scene.Plane.Origin, scene.Plane.Normal.Normalize())
	if !ok {
		return
	}

	hit := ray.GetPoint(t)
	scene.LastHit = &hit
	scene.Hits = append(scene.Hits, hit)
	cmd.Logger().Debugf("plane hit at %v", hit)
}

// hudSystem prints the cursor, the ray and the hit on the terminal.
func hudSystem(cmd *gekko.Commands, term *termsurface.State, scene *Scene, diag *gekko.CursorRayDiagnostics) {
	if term.Screen == nil {
		return
	}
	term.Screen.Clear()

	lines := []string{"cursor ray demo (q to quit)"}
	if window, err := gekko.MakeQuery1[gekko.WindowComponent](cmd).Get(term.Window); err == nil {
		if cursor, ok := window.CursorPosition(); ok {
			lines = append(lines, fmt.Sprintf("cursor %.1f, %.1f of %dx%d", cursor.X(), cursor.Y(), window.Width, window.Height))
		} else {
			lines = append(lines, "cursor outside")
		}
	}
	if world, err := gekko.MakeQuery1[gekko.TransformComponent](cmd).Get(scene.Ray); err == nil {
		r := world.Ray()
		lines = append(lines, fmt.Sprintf("ray origin %s dir %s", formatVec3(r.Origin), formatVec3(r.Direction)))
	}
	if scene.LastHit != nil {
		lines = append(lines, "plane hit "+formatVec3(*scene.LastHit))
	} else {
		lines = append(lines, "plane missed")
	}
	for _, err := range diag.Errors {
		lines = append(lines, err.Error())
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for y, line := range lines {
		term.DrawText(0, y, style, line)
	}
	term.Show()
}

type frameLimiter struct {
	last time.Time
}

func (f *frameLimiter) paceSystem() {
	if elapsed := time.Since(f.last); elapsed < framePeriod {
		time.Sleep(framePeriod - elapsed)
	}
	f.last = time.Now()
}

func formatVec3(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
