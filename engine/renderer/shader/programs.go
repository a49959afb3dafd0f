package shader

import (
	"embed"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
)

//go:embed programs/*.wgsl
var programFS embed.FS

// Program names. Each is a <name>.wgsl file holding one vertex and one fragment entry point.
const (
	ProgramQuad    = "quad"
	ProgramBrush   = "brush"
	ProgramOverlay = "overlay"
	ProgramModel   = "model"
	ProgramHair    = "hair"
)

// Programs lists every render program in draw order.
var Programs = []string{ProgramQuad, ProgramBrush, ProgramOverlay, ProgramModel, ProgramHair}

// LoadProgram loads one program. With a non-empty dir the source is read from
// dir/<name>.wgsl, otherwise from the copy compiled into the binary.
//
// Parameters:
//   - name: the program name
//   - dir: the shader directory, or "" for the embedded programs
//
// Returns:
//   - Shader: the parsed program
//   - error: error if the file is missing or fails to parse
func LoadProgram(name, dir string) (Shader, error) {
	file := name + ".wgsl"
	if dir != "" {
		return NewShaderFromPath(name, filepath.Join(dir, file))
	}
	data, err := programFS.ReadFile("programs/" + file)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	return NewShader(name, string(data))
}

// LoadPrograms loads every program in Programs. Programs that fail are left out of the
// result and their errors are combined.
//
// Parameters:
//   - dir: the shader directory, or "" for the embedded programs
//
// Returns:
//   - map[string]Shader: the programs that loaded, keyed by name
//   - error: the combined errors of the programs that did not
func LoadPrograms(dir string) (map[string]Shader, error) {
	out := make(map[string]Shader, len(Programs))
	var errs error
	for _, name := range Programs {
		s, err := LoadProgram(name, dir)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out[name] = s
	}
	return out, errs
}
