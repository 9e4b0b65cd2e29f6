package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/input"
	"voxelcore/internal/physics"
)

// fpsCamera is the demo's CameraController: mouse-look via raw cursor
// delta and WASD/space movement relative to the player's current yaw,
// in the teacher's direct-velocity-write style rather than a physics
// impulse.
type fpsCamera struct {
	window      *glfw.Window
	sensitivity float32
	moveSpeed   float32

	haveLast bool
	lastX    float64
	lastY    float64
}

func newFPSCamera(window *glfw.Window, sensitivity, moveSpeed float32) *fpsCamera {
	return &fpsCamera{window: window, sensitivity: sensitivity, moveSpeed: moveSpeed}
}

func (c *fpsCamera) Update(p *physics.Player, in *input.InputManager, dt float32) {
	x, y := c.window.GetCursorPos()
	if !c.haveLast {
		c.lastX, c.lastY = x, y
		c.haveLast = true
	}
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y

	p.Yaw += dx * c.sensitivity
	p.Pitch -= dy * c.sensitivity
	if p.Pitch > 89 {
		p.Pitch = 89
	}
	if p.Pitch < -89 {
		p.Pitch = -89
	}

	forward := p.Forward()
	forwardXZ := mgl32.Vec3{forward.X(), 0, forward.Z()}
	if forwardXZ.Len() > 0 {
		forwardXZ = forwardXZ.Normalize()
	}
	right := forwardXZ.Cross(mgl32.Vec3{0, 1, 0})
	if right.Len() > 0 {
		right = right.Normalize()
	}

	var move mgl32.Vec3
	if in.IsActive(input.ActionMoveForward) {
		move = move.Add(forwardXZ)
	}
	if in.IsActive(input.ActionMoveBackward) {
		move = move.Sub(forwardXZ)
	}
	if in.IsActive(input.ActionMoveRight) {
		move = move.Add(right)
	}
	if in.IsActive(input.ActionMoveLeft) {
		move = move.Sub(right)
	}
	if move.Len() > 0 {
		move = move.Normalize()
	}

	vel := p.Velocity
	vel[0] = move.X() * c.moveSpeed
	vel[2] = move.Z() * c.moveSpeed
	p.Velocity = vel

	if in.JustPressed(input.ActionJump) {
		p.TryJump()
	}
}
