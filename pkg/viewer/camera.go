package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/geometry"
)

// ViewOffset renders a sub-rectangle of a larger virtual viewport, which
// shifts the projected scene without moving the camera.
type ViewOffset struct {
	Enabled    bool
	FullWidth  float64
	FullHeight float64
	OffsetX    float64
	OffsetY    float64
	Width      float64
	Height     float64
}

// Camera is a perspective camera looking from Position at Target
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Vertical field of view in degrees
	Aspect   float64
	Near     float64
	Far      float64

	view       ViewOffset
	projection mgl64.Mat4
	viewMatrix mgl64.Mat4
}

// NewCamera creates a camera at the origin looking down -Z
func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Position: geometry.NewVector3(0, 0, 0),
		Target:   geometry.NewVector3(0, 0, -1),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.UpdateProjectionMatrix()
	return c
}

// FitDistance returns the distance at which an object of the given half
// extent fills the vertical field of view
func FitDistance(halfExtent, fovDegrees float64) float64 {
	return halfExtent / math.Tan(anglemath.DegToRad(fovDegrees)/2)
}

// SetViewOffset selects a sub-rectangle of a fullWidth x fullHeight viewport
func (c *Camera) SetViewOffset(fullWidth, fullHeight, x, y, width, height float64) {
	c.view = ViewOffset{
		Enabled:    true,
		FullWidth:  fullWidth,
		FullHeight: fullHeight,
		OffsetX:    x,
		OffsetY:    y,
		Width:      width,
		Height:     height,
	}
	c.UpdateProjectionMatrix()
}

// ClearViewOffset removes a view offset
func (c *Camera) ClearViewOffset() {
	c.view.Enabled = false
	c.UpdateProjectionMatrix()
}

// View returns the current view offset
func (c *Camera) View() ViewOffset {
	return c.view
}

// SetFOV changes the vertical field of view and rebuilds the projection
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.UpdateProjectionMatrix()
}

// SetAspect changes the aspect ratio and rebuilds the projection
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix rebuilds the frustum after FOV, aspect or view offset changes
func (c *Camera) UpdateProjectionMatrix() {
	top := c.Near * math.Tan(anglemath.DegToRad(c.FOV)/2)
	height := 2 * top
	width := c.Aspect * height
	left := -0.5 * width

	if c.view.Enabled && c.view.FullWidth > 0 && c.view.FullHeight > 0 {
		left += c.view.OffsetX * width / c.view.FullWidth
		top -= c.view.OffsetY * height / c.view.FullHeight
		width *= c.view.Width / c.view.FullWidth
		height *= c.view.Height / c.view.FullHeight
	}

	c.projection = mgl64.Frustum(left, left+width, top-height, top, c.Near, c.Far)
}

// ProjectionMatrix returns the cached projection
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

// ViewMatrix returns the world-to-camera transform
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	c.viewMatrix = mgl64.LookAtV(c.Position.Vec(), c.Target.Vec(), c.Up.Vec())
	return c.viewMatrix
}

// LookAt points the camera at a target
func (c *Camera) LookAt(target geometry.Vector3) {
	c.Target = target
}

// Project projects a world point to screen coordinates. The third value is
// the view-space depth; points with depth <= Near are behind the camera.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	view := c.ViewMatrix()
	eye := view.Mul4x1(point.Vec().Vec4(1))
	depth := -eye[2]

	clip := c.projection.Mul4x1(eye)
	w := clip[3]
	if math.Abs(w) < 1e-12 {
		w = 1e-12
	}
	ndcX := clip[0] / w
	ndcY := clip[1] / w

	screenX := (ndcX + 1) / 2 * width
	screenY := (1 - ndcY) / 2 * height
	return screenX, screenY, depth
}

// Unproject converts screen coordinates to a world-space ray origin and direction
func (c *Camera) Unproject(screenX, screenY, width, height float64) (origin, direction geometry.Vector3) {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	inv := c.projection.Mul4(c.ViewMatrix()).Inv()
	near := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	nearPoint := geometry.FromVec(near.Vec3().Mul(1 / near[3]))
	farPoint := geometry.FromVec(far.Vec3().Mul(1 / far[3]))

	return c.Position, farPoint.Sub(nearPoint).Normalize()
}

// Ray returns the pick ray through a screen coordinate
func (c *Camera) Ray(screenX, screenY, width, height float64) geometry.Ray {
	origin, dir := c.Unproject(screenX, screenY, width, height)
	return geometry.Ray{Origin: origin, Direction: dir}
}
