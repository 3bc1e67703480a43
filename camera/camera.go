// Package camera provides an orbit camera around the ring field.
package camera

import "math"

// Camera orbits a target point. Angles are in radians; pitch is measured
// up from the ground plane.
type Camera struct {
	// Target is the orbit center in world coordinates
	TargetX, TargetY, TargetZ float32

	Yaw, Pitch float32
	Distance   float32

	// Vertical field of view in degrees
	Fovy float32

	// Constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	home struct{ yaw, pitch, distance float32 }
}

// New creates a camera looking at the origin.
func New(distance, yaw, pitch, fovy float32) *Camera {
	c := &Camera{
		Fovy:        fovy,
		MinDistance: 1,
		MaxDistance: 500,
		MinPitch:    0.05,
		MaxPitch:    math.Pi/2 - 0.05,
	}
	c.home.yaw, c.home.pitch, c.home.distance = yaw, pitch, distance
	c.Reset()
	return c
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() (x, y, z float32) {
	cp := float32(math.Cos(float64(c.Pitch)))
	sp := float32(math.Sin(float64(c.Pitch)))
	cy := float32(math.Cos(float64(c.Yaw)))
	sy := float32(math.Sin(float64(c.Yaw)))
	return c.TargetX + c.Distance*cp*cy,
		c.TargetY + c.Distance*sp,
		c.TargetZ + c.Distance*cp*sy
}

// Rotate orbits by the given angle deltas. Yaw wraps; pitch is clamped.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// SetDistance sets the orbit radius, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy multiplies the orbit radius by factor. Factors below 1 move closer.
func (c *Camera) ZoomBy(factor float32) {
	c.SetDistance(c.Distance * factor)
}

// Fit sets the distance so a disc of the given radius fills the view, and
// makes it the distance Reset returns to.
func (c *Camera) Fit(radius float32) {
	half := float64(c.Fovy) * math.Pi / 360
	if half <= 0 || radius <= 0 {
		return
	}
	c.SetDistance(float32(float64(radius)*1.2/math.Tan(half)) + radius*0.2)
	c.home.distance = c.Distance
}

// Reset returns the camera to its initial orbit.
func (c *Camera) Reset() {
	c.Yaw = wrapAngle(c.home.yaw)
	c.Pitch = clamp(c.home.pitch, c.MinPitch, c.MaxPitch)
	c.SetDistance(c.home.distance)
}

// wrapAngle maps a to [0, 2π).
func wrapAngle(a float32) float32 {
	r := float32(math.Mod(float64(a), 2*math.Pi))
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
