// Package shader loads WGSL programs, expands their @hs: annotations and derives the bind
// group layouts that pipeline creation needs.
package shader

import (
	"errors"
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoEntryPoint is returned for a program without a @vertex or a @fragment function.
var ErrNoEntryPoint = errors.New("shader has no vertex or fragment entry point")

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation.
type shader struct {
	key                        string
	source                     string
	vertexEntry                string
	fragmentEntry              string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader is a pre-processed WGSL render program holding one vertex and one fragment entry
// point, with the bind group layouts parsed from its declarations.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source.
	//
	// Returns:
	//   - string: the expanded WGSL source code
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// BindGroupLayoutDescriptor retrieves the layout descriptor for one group.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty one if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or "" if nothing is declared there
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index of a variable within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// Module returns the shader module descriptor built from the expanded source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor with the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the @hs:group annotations found in the source.
	//
	// Returns:
	//   - []Annotation: the group declarations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes and parses a WGSL program.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - source: the raw WGSL source
//
// Returns:
//   - Shader: the parsed shader
//   - error: error if an annotation is malformed or an entry point is missing
func NewShader(key string, source string) (Shader, error) {
	s := &shader{
		key:                        key,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindingVarNames:            make(map[int]map[int]string),
		pp:                         NewPreProcessor(),
	}
	if err := s.parseSource(source); err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return s, nil
}

// NewShaderFromPath reads a WGSL program from disk and parses it with NewShader.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - path: the file path to read WGSL source from
//
// Returns:
//   - Shader: the parsed shader
//   - error: error if the file cannot be read or parsed
func NewShaderFromPath(key, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShader(key, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

// parseSource expands the annotations, builds the module descriptor and extracts entry
// points and bind group layouts. Every binding is visible to both stages.
func (s *shader) parseSource(raw string) error {
	source, err := s.pp.Process(raw)
	if err != nil {
		return fmt.Errorf("pre-process: %w", err)
	}
	s.source = source
	s.vertexEntry, s.fragmentEntry = parseEntryPoints(source)
	if s.vertexEntry == "" || s.fragmentEntry == "" {
		return ErrNoEntryPoint
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	return nil
}
