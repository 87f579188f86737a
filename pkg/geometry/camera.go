package geometry

import (
	"fmt"
	"math"

	"github.com/stjomd/raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter for depth of field (0 = pinhole)
	DefocusAngle  float64   // Cone angle in degrees of rays through a pixel; overrides Aperture when > 0
	FocusDistance float64   // Distance to focus plane (0 = distance from Center to LookAt)
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  400,
		Height: 225,
		VFov:   45.0,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	if override.Aperture > 0 {
		result.Aperture = override.Aperture
	}
	if override.DefocusAngle > 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance > 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering
type Camera struct {
	config     CameraConfig
	origin     core.Vec3
	u, v, w    core.Vec3 // Orthonormal basis: right, up, backward
	pixel00    core.Vec3 // Center of the top-left pixel on the focus plane
	pixelDU    core.Vec3 // Offset to the pixel to the right
	pixelDV    core.Vec3 // Offset to the pixel below
	lensRadius float64
	defocusU   core.Vec3 // Lens disk horizontal radius vector
	defocusV   core.Vec3 // Lens disk vertical radius vector
}

// NewCamera creates a camera from the configuration.
// Degenerate configurations are rejected with core.ErrInvalidCamera.
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := validateCameraConfig(config); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	// Viewport dimensions on the focus plane
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	// Orthonormal basis
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Viewport edges: across the top and down the left side
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)

	pixelDU := viewportU.Divide(float64(config.Width))
	pixelDV := viewportV.Divide(float64(config.Height))

	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDU.Add(pixelDV).Multiply(0.5))

	lensRadius := config.Aperture / 2
	if config.DefocusAngle > 0 {
		lensRadius = focusDistance * math.Tan(config.DefocusAngle*math.Pi/360.0)
	}

	return &Camera{
		config:     config,
		origin:     config.Center,
		u:          u,
		v:          v,
		w:          w,
		pixel00:    pixel00,
		pixelDU:    pixelDU,
		pixelDV:    pixelDV,
		lensRadius: lensRadius,
		defocusU:   u.Multiply(lensRadius),
		defocusV:   v.Multiply(lensRadius),
	}, nil
}

func validateCameraConfig(config CameraConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("image size %dx%d: %w", config.Width, config.Height, core.ErrInvalidCamera)
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return fmt.Errorf("vertical field of view %g must be in (0, 180): %w", config.VFov, core.ErrInvalidCamera)
	}
	if config.Aperture < 0 || config.DefocusAngle < 0 || config.DefocusAngle >= 180 || config.FocusDistance < 0 {
		return fmt.Errorf("aperture %g, defocus angle %g, focus distance %g: %w",
			config.Aperture, config.DefocusAngle, config.FocusDistance, core.ErrInvalidCamera)
	}
	if !config.Center.IsFinite() || !config.LookAt.IsFinite() || !config.Up.IsFinite() {
		return fmt.Errorf("camera vectors must be finite: %w", core.ErrInvalidCamera)
	}

	direction := config.Center.Subtract(config.LookAt)
	if direction.NearZero() {
		return fmt.Errorf("camera center and look-at point coincide at %v: %w", config.Center, core.ErrInvalidCamera)
	}
	if config.Up.Cross(direction).NearZero() {
		return fmt.Errorf("up vector %v is parallel to the view direction: %w", config.Up, core.ErrInvalidCamera)
	}
	return nil
}

// GetRay generates a ray through the continuous pixel position (px, py).
// The origin of pixel space is the top-left image corner; the center of
// pixel (i, j) is (i+0.5, j+0.5). The sampler is only consumed for lens sampling.
func (c *Camera) GetRay(px, py float64, sampler core.Sampler) core.Ray {
	pixelSample := c.pixel00.
		Add(c.pixelDU.Multiply(px - 0.5)).
		Add(c.pixelDV.Multiply(py - 0.5))

	origin := c.origin
	if c.lensRadius > 0 {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = origin.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// GetConfig returns the configuration the camera was built from
func (c *Camera) GetConfig() CameraConfig {
	return c.config
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetBasis returns the orthonormal camera basis (right, up, backward)
func (c *Camera) GetBasis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// LensRadius returns the radius of the lens disk (0 for a pinhole camera)
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// Size returns the image size in pixels
func (c *Camera) Size() (width, height int) {
	return c.config.Width, c.config.Height
}
