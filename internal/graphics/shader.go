package graphics

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader is a linked GLSL program plus a cache of its uniform locations,
// since the block and highlight shaders in cmd/voxeldemo set the same
// handful of uniforms every frame.
type Shader struct {
	program uint32

	mu   sync.Mutex
	locs map[string]int32
}

// NewShader compiles and links a vertex/fragment shader pair read from
// disk.
func NewShader(vertexPath, fragmentPath string) (*Shader, error) {
	vertexSrc, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("graphics: read vertex shader %s: %w", vertexPath, err)
	}
	fragmentSrc, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("graphics: read fragment shader %s: %w", fragmentPath, err)
	}

	vs, err := compileStage(string(vertexSrc), gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("graphics: compile %s: %w", vertexPath, err)
	}
	fs, err := compileStage(string(fragmentSrc), gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("graphics: compile %s: %w", fragmentPath, err)
	}

	program, err := linkProgram(vs, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if err != nil {
		return nil, fmt.Errorf("graphics: link %s+%s: %w", vertexPath, fragmentPath, err)
	}

	return &Shader{program: program, locs: make(map[string]int32)}, nil
}

// Use binds the program for subsequent draw calls.
func (s *Shader) Use() {
	gl.UseProgram(s.program)
}

func (s *Shader) location(name string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc, ok := s.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	s.locs[name] = loc
	return loc
}

func (s *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	gl.Uniform1i(s.location(name), v)
}

func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

func (s *Shader) SetVector3(name string, x, y, z float32) {
	gl.Uniform3f(s.location(name), x, y, z)
}

func (s *Shader) SetMatrix4(name string, value *float32) {
	gl.UniformMatrix4fv(s.location(name), 1, false, value)
}

func linkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("%s", programInfoLog(program))
	}
	return program, nil
}

func compileStage(source string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("%s", shaderInfoLog(shader))
	}
	return shader, nil
}

func programInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	log := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
	return log
}

func shaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	log := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
	return log
}
