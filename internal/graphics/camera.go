package graphics

import (
	"voxelcore/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera tracks the projection parameters the demo embedder needs to turn
// a Player's pose into a view-projection matrix pair; it holds no GL state
// of its own.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

// NewCamera builds a Camera for the given framebuffer size. fov/near/far
// come from the embedder's config rather than being hardcoded here, so a
// voxelcore.toml change doesn't require touching this package.
func NewCamera(width, height int, fov, near, far float32) *Camera {
	c := &Camera{FOV: fov, NearPlane: near, FarPlane: far}
	c.Resize(width, height)
	return c
}

// Resize recomputes the aspect ratio for a new framebuffer size, e.g. from
// a GLFW FramebufferSizeCallback.
func (c *Camera) Resize(width, height int) {
	if height == 0 {
		height = 1
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// GetViewMatrix delegates to the player, which owns the eye position and
// yaw/pitch the view matrix is built from.
func (c *Camera) GetViewMatrix(p *physics.Player) mgl32.Mat4 {
	return p.GetViewMatrix()
}
