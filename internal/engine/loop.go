// Package engine orchestrates a single frame: tick-gated chunk residency,
// pending chunk drain, input-driven camera update, physics stepping,
// raycast selection, dirty-mesh rebuild, and the render handoff. It is the
// only place that sequences the other packages against real time; nothing
// here reaches into Chunk internals or issues GPU calls itself.
package engine

import (
	"voxelcore/internal/input"
	"voxelcore/internal/physics"
	"voxelcore/internal/profiling"
	"voxelcore/internal/world"
)

// ChunkUpdateInterval is the fixed tick rate (20 Hz) at which residency is
// reevaluated; every frame still drains already-completed chunks.
const ChunkUpdateInterval = 0.05

// CameraController turns the current input state into updated player
// look/velocity state. The concrete key bindings and mouse-look feel are
// an embedder concern; EngineLoop only drives the interface once per frame.
type CameraController interface {
	Update(p *physics.Player, in *input.InputManager, dt float32)
}

// Frustum reports whether a chunk is visible given its world-space origin
// and vertical mesh bounds, for render-time culling. The concrete
// projection/view math lives with the renderer collaborator.
type Frustum interface {
	Visible(originX, originZ int, minY, maxY float32) bool
}

// Renderer receives the frame's culled mesh list and the raycaster's
// current selection. GPU submission, shader state, and HUD drawing are
// all out of core scope.
type Renderer interface {
	Render(meshes []*world.ChunkMesh, selection physics.RaycastResult)
}

// EngineLoop wires one World, one Stepper, one Player, and the embedder's
// collaborators together. The embedder calls Update then Render once per
// frame.
type EngineLoop struct {
	World    *world.World
	Stepper  *physics.Stepper
	Input    *input.InputManager
	Camera   CameraController
	Player   *physics.Player
	Renderer Renderer

	tickAccumulator float32
	selection       physics.RaycastResult
}

// NewEngineLoop returns a loop ready to drive w and player. Camera and
// Renderer may be set after construction (or left nil in a headless test).
func NewEngineLoop(w *world.World, player *physics.Player, in *input.InputManager) *EngineLoop {
	return &EngineLoop{
		World:   w,
		Stepper: physics.NewStepper(w),
		Input:   in,
		Player:  player,
	}
}

// Update runs one frame's worth of simulation: tick-gated residency,
// unconditional pending drain, camera input, physics stepping, and raycast
// selection, in that fixed order.
func (e *EngineLoop) Update(dt float32) {
	defer profiling.Track("engine.EngineLoop.Update")()

	e.tickAccumulator += dt
	for e.tickAccumulator >= ChunkUpdateInterval {
		e.World.UpdateChunks(float64(e.Player.Position.X()), float64(e.Player.Position.Z()))
		e.tickAccumulator -= ChunkUpdateInterval
	}

	e.World.ProcessPending()

	if e.Camera != nil && e.Input != nil {
		e.Camera.Update(e.Player, e.Input, dt)
	}

	e.Stepper.Update(e.Player, dt)

	eye := e.Player.EyePosition()
	e.selection = physics.Raycast(e.World, eye, e.Player.Forward())

	if e.Input != nil {
		e.Input.PostUpdate()
	}
}

// Selection returns the most recent raycast result computed by Update.
func (e *EngineLoop) Selection() physics.RaycastResult {
	return e.selection
}

// Render rebuilds every dirty chunk mesh, culls the resulting mesh list
// against frustum (nil disables culling), and hands the remaining meshes
// plus the current selection to the Renderer collaborator.
func (e *EngineLoop) Render(frustum Frustum) {
	defer profiling.Track("engine.EngineLoop.Render")()

	e.World.RebuildDirtyMeshes()

	entries := e.World.MeshedChunks()
	visible := make([]*world.ChunkMesh, 0, len(entries))
	for _, entry := range entries {
		if frustum != nil && !frustum.Visible(entry.OriginX, entry.OriginZ, entry.Mesh.BoundsMinY, entry.Mesh.BoundsMaxY) {
			continue
		}
		visible = append(visible, entry.Mesh)
	}

	if e.Renderer != nil {
		e.Renderer.Render(visible, e.selection)
	}
}
