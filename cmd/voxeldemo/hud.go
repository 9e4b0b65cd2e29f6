package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/graphics"
	"voxelcore/internal/physics"
	"voxelcore/internal/profiling"
)

// hud draws the debug overlay: player position, FPS, and the frame's
// slowest tracked operations. Item/inventory/health overlays are out of
// scope here — this repo has no inventory or health model.
type hud struct {
	renderer *graphics.FontRenderer
}

func newHUD() (*hud, error) {
	fontPath := filepath.Join("assets", "fonts", "OpenSans-Regular.ttf")
	atlas, err := graphics.BuildFontAtlas(fontPath, 32)
	if err != nil {
		return nil, err
	}
	fr, err := graphics.NewFontRenderer(atlas)
	if err != nil {
		return nil, err
	}
	return &hud{renderer: fr}, nil
}

func (h *hud) resize(width, height int) {
	h.renderer.Resize(width, height)
}

func (h *hud) render(p *physics.Player, fps int) {
	white := mgl32.Vec3{1, 1, 1}
	pos := fmt.Sprintf("Pos: %.2f, %.2f, %.2f", p.Position.X(), p.Position.Y(), p.Position.Z())
	h.renderer.Render(pos, 10, 20, 0.5, white)
	h.renderer.Render(fmt.Sprintf("FPS: %d", fps), 10, 40, 0.5, white)
	if top := profiling.TopN(3); top != "" {
		h.renderer.Render(top, 10, 60, 0.35, white)
	}
}
