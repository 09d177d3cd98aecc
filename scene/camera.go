package scene

import (
	"math"

	"github.com/mncc8337/shrimpy/types"
)

var worldUp = types.Vec3{0, 1, 0}

// The camera type controls the viewer position and the ray generation
// parameters consumed by the shader. The right/up basis vectors are
// derived on demand from Direction so they never drift out of sync
// with it.
type Camera struct {
	Position  types.Vec3
	Direction types.Vec3

	// Vertical field of view in radians.
	FOV float32

	// Viewport plane width in world units.
	Width float32

	// Thin lens parameters.
	FocusDistance   float32
	Aperture        float32
	DivergeStrength float32

	// Per-path bounce budget for the shader.
	MaxRayBounces uint32
}

// Create a camera with the default lens parameters, looking down the
// negative z axis.
func NewCamera() *Camera {
	return &Camera{
		Position:        types.Vec3{0, 0, 0},
		Direction:       types.Vec3{0, 0, -1},
		FOV:             75.0 * math.Pi / 180.0,
		Width:           1.0,
		FocusDistance:   2.0,
		Aperture:        0.02,
		DivergeStrength: 0.004,
		MaxRayBounces:   50,
	}
}

// Get the camera right basis vector.
func (c *Camera) Right() types.Vec3 {
	return c.Direction.Cross(worldUp).Normalize()
}

// Get the camera up basis vector.
func (c *Camera) Up() types.Vec3 {
	return c.Direction.Cross(c.Right())
}

// Translate the camera along its view direction.
func (c *Camera) Dolly(amount float32) {
	c.Position = c.Position.Add(c.Direction.Mul(amount))
}

// Translate the camera along its right vector.
func (c *Camera) Strafe(amount float32) {
	c.Position = c.Position.Add(c.Right().Mul(amount))
}

// Translate the camera along its up vector.
func (c *Camera) Pedestal(amount float32) {
	c.Position = c.Position.Add(c.Up().Mul(amount))
}

// Rotate the view direction about the up axis by angle radians.
func (c *Camera) Pan(angle float32) {
	rot := types.QuatFromAxisAngle(c.Up(), angle)
	c.Direction = rot.Rotate(c.Direction).Normalize()
}

// Rotate the view direction about the right axis by angle radians.
func (c *Camera) Tilt(angle float32) {
	rot := types.QuatFromAxisAngle(c.Right(), angle)
	c.Direction = rot.Rotate(c.Direction).Normalize()
}
