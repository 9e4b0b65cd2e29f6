// Command voxeldemo is voxelcore's reference embedder: it opens a window,
// loads voxelcore.toml (if present), and drives a World/EngineLoop/Player
// against a GL renderer. It exists so the module is runnable end to end;
// windowing, input capture, and GPU submission are deliberately outside
// the core packages it wires together.
package main

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/config"
	"voxelcore/internal/engine"
	"voxelcore/internal/graphics"
	"voxelcore/internal/input"
	"voxelcore/internal/physics"
	"voxelcore/internal/profiling"
	"voxelcore/internal/world"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	configPath   = "voxelcore.toml"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := loadConfig(configPath)
	settings := config.NewLiveSettings(cfg)

	if err := glfw.Init(); err != nil {
		log.Fatalf("voxeldemo: glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "voxelcore", nil, nil)
	if err != nil {
		log.Fatalf("voxeldemo: create window: %v", err)
	}
	window.MakeContextCurrent()
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	if err := gl.Init(); err != nil {
		log.Fatalf("voxeldemo: gl init: %v", err)
	}

	inputMgr := input.NewInputManager()
	inputMgr.SetKeyCallback(window)
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		inputMgr.HandleMouseButtonEvent(button, action)
	})

	generator := world.NewFlatGenerator(cfg.WorldSeed, cfg.AutoCreateGround)
	policy := world.NewRadiusLoadPolicy(cfg.InitialChunkRadius, cfg.InitialChunkRadius*2, 512)
	w := world.NewWorld(cfg.WorldSavePath, generator, policy, world.BlockType(cfg.DefaultGroundBlockType), cfg.AtlasGridSize)
	defer w.Shutdown()

	startPos := mgl32.Vec3{float32(cfg.PlayerStart[0]), float32(cfg.PlayerStart[1]), float32(cfg.PlayerStart[2])}
	player := physics.NewPlayer(startPos)
	player.Pitch = float32(cfg.InitialPitch)

	loop := engine.NewEngineLoop(w, player, inputMgr)
	loop.Camera = newFPSCamera(window, float32(cfg.MouseSensitivity), float32(cfg.PlayerMoveSpeed))

	camera := graphics.NewCamera(windowWidth, windowHeight, float32(cfg.FieldOfView), 0.1, 1000.0)

	renderer, err := newGLRenderer(camera, player, settings, cfg.TextureAtlasPath)
	if err != nil {
		log.Fatalf("voxeldemo: init renderer: %v", err)
	}
	loop.Renderer = renderer

	hud, err := newHUD()
	if err != nil {
		log.Printf("voxeldemo: HUD disabled: %v", err)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		camera.Resize(width, height)
		if hud != nil {
			hud.resize(width, height)
		}
	})

	lastTime := glfw.GetTime()
	frames := 0
	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()
	currentFPS := 0

	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := float32(now - lastTime)
		lastTime = now
		profiling.ResetFrame()

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}
		if inputMgr.JustPressed(input.ActionToggleWireframe) {
			settings.ToggleWireframeMode()
		}

		loop.Update(dt)

		vp := camera.GetProjectionMatrix().Mul4(camera.GetViewMatrix(player))
		frustum := newFrustumPlanes(vp)
		loop.Render(frustum)

		if hud != nil {
			hud.render(player, currentFPS)
		}

		window.SwapBuffers()
		glfw.PollEvents()

		frames++
		select {
		case <-fpsTicker.C:
			currentFPS = frames
			frames = 0
		default:
		}
	}
}

func loadConfig(path string) config.Config {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("voxeldemo: stat config: %v", err)
		}
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("voxeldemo: load config %s: %v, using defaults", filepath.Clean(path), err)
		return config.Default()
	}
	return cfg
}
