// Package config loads voxelcore's embedder-tunable options from a TOML
// file and exposes the handful of them a running engine may still adjust.
package config

import (
	"sync"

	"github.com/BurntSushi/toml"
)

// Config holds every option in the external options table, loaded once at
// startup. Values absent from the TOML file keep their Default().
type Config struct {
	TextureAtlasPath string `toml:"texture_atlas_path"`
	AtlasGridSize    int    `toml:"atlas_grid_size"`

	PlayerStart      [3]float64 `toml:"player_start"`
	PlayerMoveSpeed  float64    `toml:"player_move_speed"`
	FieldOfView      float64    `toml:"field_of_view"`
	InitialPitch     float64    `toml:"initial_pitch"`
	MouseSensitivity float64    `toml:"mouse_sensitivity"`

	Gravity          float64 `toml:"gravity"`
	JumpVelocity     float64 `toml:"jump_velocity"`
	TerminalVelocity float64 `toml:"terminal_velocity"`

	InitialChunkRadius int `toml:"initial_chunk_radius"`
	ChunkPreloadRadius int `toml:"chunk_preload_radius"`

	WorldSavePath          string `toml:"world_save_path"`
	DefaultGroundBlockType int32  `toml:"default_ground_block_type"`
	WorldSeed              int64  `toml:"world_seed"`
	AutoCreateGround       bool   `toml:"auto_create_ground"`
}

// Default returns the built-in value of every option. TextureAtlasPath
// defaults to "assets/atlas.png"; nothing falls back to untextured
// rendering when that file is absent.
func Default() Config {
	return Config{
		TextureAtlasPath: "assets/atlas.png",
		AtlasGridSize:    16,

		PlayerStart:      [3]float64{0, -0.5, 0},
		PlayerMoveSpeed:  5,
		FieldOfView:      67,
		InitialPitch:     -20,
		MouseSensitivity: 0.1,

		Gravity:          -20,
		JumpVelocity:     7,
		TerminalVelocity: -50,

		InitialChunkRadius: 16,
		ChunkPreloadRadius: 1,

		WorldSavePath:          "saves/world1",
		DefaultGroundBlockType: 0,
		WorldSeed:              0,
		AutoCreateGround:       true,
	}
}

// Load decodes path as TOML over Default(), so a file that only overrides
// a handful of keys still gets sane values for the rest.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LiveSettings holds the subset of configuration a running engine may
// adjust after startup (e.g. from a debug overlay), guarded by a mutex the
// same way the original render-settings singleton was.
type LiveSettings struct {
	mu                 sync.RWMutex
	chunkPreloadRadius int
	wireframeMode      bool
}

// NewLiveSettings seeds live settings from a loaded Config.
func NewLiveSettings(cfg Config) *LiveSettings {
	return &LiveSettings{chunkPreloadRadius: cfg.ChunkPreloadRadius}
}

// ChunkPreloadRadius returns the current preload radius, in chunks.
func (s *LiveSettings) ChunkPreloadRadius() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunkPreloadRadius
}

// SetChunkPreloadRadius clamps and sets the preload radius.
func (s *LiveSettings) SetChunkPreloadRadius(radius int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if radius < 0 {
		radius = 0
	}
	if radius > 8 {
		radius = 8
	}
	s.chunkPreloadRadius = radius
}

// WireframeMode reports whether the renderer should draw in wireframe.
func (s *LiveSettings) WireframeMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wireframeMode
}

// ToggleWireframeMode flips the wireframe debug flag.
func (s *LiveSettings) ToggleWireframeMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wireframeMode = !s.wireframeMode
}
