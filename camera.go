package gekko

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnprojection = errors.New("cannot compute a camera ray")

type RenderTargetKind int

const (
	// RenderTargetPrimaryWindow is the zero value: cameras draw to the
	// primary window unless told otherwise.
	RenderTargetPrimaryWindow RenderTargetKind = iota
	RenderTargetWindow
	RenderTargetImage
)

func (k RenderTargetKind) String() string {
	switch k {
	case RenderTargetPrimaryWindow:
		return "PrimaryWindow"
	case RenderTargetWindow:
		return "Window"
	case RenderTargetImage:
		return "Image"
	default:
		return fmt.Sprintf("RenderTargetKind(%d)", int(k))
	}
}

// RenderTarget says where a camera draws. Window is set for
// RenderTargetWindow, Image for RenderTargetImage.
type RenderTarget struct {
	Kind   RenderTargetKind
	Window EntityId
	Image  AssetId
}

func PrimaryWindowTarget() RenderTarget {
	return RenderTarget{Kind: RenderTargetPrimaryWindow}
}

func WindowTarget(window EntityId) RenderTarget {
	return RenderTarget{Kind: RenderTargetWindow, Window: window}
}

func ImageTarget(image AssetId) RenderTarget {
	return RenderTarget{Kind: RenderTargetImage, Image: image}
}

// NewImageTarget allocates a fresh off-screen image handle.
func NewImageTarget() RenderTarget {
	return ImageTarget(NewAssetId())
}

func (t RenderTarget) String() string {
	switch t.Kind {
	case RenderTargetWindow:
		return fmt.Sprintf("Window(%d)", t.Window)
	case RenderTargetImage:
		return fmt.Sprintf("Image(%s)", t.Image)
	default:
		return t.Kind.String()
	}
}

type ProjectionKind int

const (
	PerspectiveProjection ProjectionKind = iota
	OrthographicProjection
)

// Projection is either perspective (FovY, radians) or orthographic (Scale,
// world units per pixel). Near and Far apply to both.
type Projection struct {
	Kind  ProjectionKind
	FovY  float32
	Scale float32
	Near  float32
	Far   float32
}

func DefaultPerspective() Projection {
	return Projection{
		Kind: PerspectiveProjection,
		FovY: math.Pi / 4,
		Near: 0.1,
		Far:  1000,
	}
}

func DefaultOrthographic() Projection {
	return Projection{
		Kind:  OrthographicProjection,
		Scale: 1,
		Near:  0,
		Far:   1000,
	}
}

// Matrix builds the clip-space projection for a viewport of the given size.
func (p Projection) Matrix(width, height int) (mgl32.Mat4, error) {
	if width <= 0 || height <= 0 {
		return mgl32.Mat4{}, fmt.Errorf("viewport %dx%d is empty: %w", width, height, ErrUnprojection)
	}

	switch p.Kind {
	case PerspectiveProjection:
		if p.FovY <= 0 || p.FovY >= math.Pi || p.Near <= 0 || p.Far <= p.Near {
			return mgl32.Mat4{}, fmt.Errorf("perspective fov=%v near=%v far=%v: %w", p.FovY, p.Near, p.Far, ErrUnprojection)
		}
		return mgl32.Perspective(p.FovY, float32(width)/float32(height), p.Near, p.Far), nil
	case OrthographicProjection:
		if p.Scale <= 0 || p.Far == p.Near {
			return mgl32.Mat4{}, fmt.Errorf("orthographic scale=%v near=%v far=%v: %w", p.Scale, p.Near, p.Far, ErrUnprojection)
		}
		hw := float32(width) * p.Scale / 2
		hh := float32(height) * p.Scale / 2
		return mgl32.Ortho(-hw, hw, -hh, hh, p.Near, p.Far), nil
	default:
		return mgl32.Mat4{}, fmt.Errorf("projection kind %d: %w", p.Kind, ErrUnprojection)
	}
}

// Viewport is a sub-rectangle of the render target in target pixels, origin
// top-left. A zero Width or Height means the whole target.
type Viewport struct {
	X, Y          int
	Width, Height int
}

type CameraComponent struct {
	Target     RenderTarget
	Projection Projection
	Viewport   Viewport
}

func NewCamera(target RenderTarget, projection Projection) CameraComponent {
	return CameraComponent{Target: target, Projection: projection}
}

func (c *CameraComponent) viewport(targetWidth, targetHeight int) Viewport {
	if c.Viewport.Width == 0 || c.Viewport.Height == 0 {
		return Viewport{Width: targetWidth, Height: targetHeight}
	}
	return c.Viewport
}

// ViewportToWorld unprojects a cursor position on the camera's render target
// (target pixels, origin top-left) into a world-space ray. The origin lies on
// the near plane and the direction has unit length.
func (c *CameraComponent) ViewportToWorld(cameraWorld TransformComponent, targetWidth, targetHeight int, cursor mgl32.Vec2) (Ray3D, error) {
	vp := c.viewport(targetWidth, targetHeight)

	proj, err := c.Projection.Matrix(vp.Width, vp.Height)
	if err != nil {
		return Ray3D{}, err
	}
	view := cameraWorld.Mat4().Inv()

	// UnProject works bottom-up like OpenGL window coordinates.
	winX := cursor.X()
	winY := float32(targetHeight) - cursor.Y()
	initialY := targetHeight - vp.Y - vp.Height

	near, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 0}, view, proj, vp.X, initialY, vp.Width, vp.Height)
	if err != nil {
		return Ray3D{}, fmt.Errorf("%v: %w", err, ErrUnprojection)
	}
	far, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 1}, view, proj, vp.X, initialY, vp.Width, vp.Height)
	if err != nil {
		return Ray3D{}, fmt.Errorf("%v: %w", err, ErrUnprojection)
	}

	dir := far.Sub(near)
	if !finiteVec3(near) || !finiteVec3(dir) || dir.Len() < 1e-6 {
		return Ray3D{}, fmt.Errorf("degenerate ray near=%v far=%v: %w", near, far, ErrUnprojection)
	}

	return Ray3D{Origin: near, Direction: dir.Normalize()}, nil
}

func finiteVec3(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
