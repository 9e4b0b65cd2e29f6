package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/config"
	"voxelcore/internal/graphics"
	"voxelcore/internal/physics"
	"voxelcore/internal/world"
)

// glRenderer implements engine.Renderer: it flattens the frame's culled
// chunk meshes into one dynamic buffer and draws them in a single pass,
// then overlays a wireframe box on the current raycast selection.
type glRenderer struct {
	camera   *graphics.Camera
	player   *physics.Player
	settings *config.LiveSettings

	blockShader     *graphics.Shader
	highlightShader *graphics.Shader
	atlasTexture    uint32

	vao, vbo           uint32
	highlightVAO, highlightVBO uint32
}

func newGLRenderer(camera *graphics.Camera, player *physics.Player, settings *config.LiveSettings, atlasPath string) (*glRenderer, error) {
	blockShader, err := graphics.NewShader("assets/shaders/blocks/block.vert", "assets/shaders/blocks/block.frag")
	if err != nil {
		return nil, err
	}
	highlightShader, err := graphics.NewShader("assets/shaders/highlight.vert", "assets/shaders/highlight.frag")
	if err != nil {
		return nil, err
	}
	atlas, _, _, err := graphics.LoadTexture(atlasPath)
	if err != nil {
		return nil, err
	}

	r := &glRenderer{
		camera:          camera,
		player:          player,
		settings:        settings,
		blockShader:     blockShader,
		highlightShader: highlightShader,
		atlasTexture:    atlas,
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 8*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 8*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, 8*4, gl.PtrOffset(6*4))
	gl.BindVertexArray(0)

	gl.GenVertexArrays(1, &r.highlightVAO)
	gl.GenBuffers(1, &r.highlightVBO)
	gl.BindVertexArray(r.highlightVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.highlightVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return r, nil
}

// Render implements engine.Renderer.
func (r *glRenderer) Render(meshes []*world.ChunkMesh, selection physics.RaycastResult) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.45, 0.68, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.settings.WireframeMode() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	projection := r.camera.GetProjectionMatrix()
	view := r.camera.GetViewMatrix(r.player)

	var verts []float32
	for _, m := range meshes {
		if m == nil || m.Geometry == nil {
			continue
		}
		for _, v := range m.Geometry.Vertices {
			verts = append(verts, v.X, v.Y, v.Z, v.NX, v.NY, v.NZ, v.U, v.V)
		}
	}

	if len(verts) > 0 {
		r.blockShader.Use()
		r.blockShader.SetMatrix4("projection", &projection[0])
		r.blockShader.SetMatrix4("view", &view[0])
		r.blockShader.SetInt("atlas", 0)

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.atlasTexture)

		gl.BindVertexArray(r.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/8))
	}

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	if selection.Hit {
		r.renderHighlight(projection, view, selection.Block)
	}
}

// renderHighlight draws a wireframe unit cube around the selected block,
// inflated slightly to avoid z-fighting with its faces.
func (r *glRenderer) renderHighlight(projection, view mgl32.Mat4, block world.BlockPos) {
	const pad = 0.002
	cx, cy, cz := float32(block.X), float32(block.Y), float32(block.Z)
	min := mgl32.Vec3{cx - 0.5 - pad, cy - 0.5 - pad, cz - 0.5 - pad}
	max := mgl32.Vec3{cx + 0.5 + pad, cy + 0.5 + pad, cz + 0.5 + pad}

	lines := cubeEdgeLines(min, max)

	gl.Disable(gl.CULL_FACE)
	r.highlightShader.Use()
	r.highlightShader.SetMatrix4("projection", &projection[0])
	r.highlightShader.SetMatrix4("view", &view[0])

	gl.BindVertexArray(r.highlightVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.highlightVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, gl.Ptr(lines), gl.DYNAMIC_DRAW)
	gl.LineWidth(2.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)/3))
	gl.Enable(gl.CULL_FACE)
}

// cubeEdgeLines returns the 12 edges of the box [min,max] as a flat
// (x,y,z)-triples line list.
func cubeEdgeLines(min, max mgl32.Vec3) []float32 {
	corners := [8]mgl32.Vec3{
		{min.X(), min.Y(), min.Z()}, {max.X(), min.Y(), min.Z()},
		{max.X(), min.Y(), max.Z()}, {min.X(), min.Y(), max.Z()},
		{min.X(), max.Y(), min.Z()}, {max.X(), max.Y(), min.Z()},
		{max.X(), max.Y(), max.Z()}, {min.X(), max.Y(), max.Z()},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	out := make([]float32, 0, len(edges)*2*3)
	for _, e := range edges {
		a, b := corners[e[0]], corners[e[1]]
		out = append(out, a.X(), a.Y(), a.Z(), b.X(), b.Y(), b.Z())
	}
	return out
}
