package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/hairstylist/engine/camera"
	"github.com/Carmen-Shannon/hairstylist/engine/hairstyle"
	"github.com/Carmen-Shannon/hairstylist/engine/light"
	"github.com/Carmen-Shannon/hairstylist/engine/model"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/material"
)

// registryEntry pairs an embedded WGSL struct source with its WGSL type name.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor replaces @hs: annotations in WGSL source with the registered struct sources
// and generated binding declarations.
type PreProcessor interface {
	// Process expands every annotation in source.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error if any annotation is malformed or references an unknown type
	Process(source string) (string, error)

	// Declarations returns the group annotations seen by the last Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every GPU struct of the engine registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:    {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgTransform: {Source: model.GPUTransformUniformSource, Type: "TransformUniform"},
			AnnotationArgQuad:      {Source: model.GPUQuadUniformSource, Type: "QuadUniform"},
			AnnotationArgLight:     {Source: light.GPULightSource, Type: "DirLight"},
			AnnotationArgMaterial:  {Source: material.GPUMaterialSource, Type: "Material"},
			AnnotationArgHair:      {Source: hairstyle.GPUHairUniformSource, Type: "HairUniform"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	included := make(map[AnnotationArg]bool)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unregistered @hs:include argument %q", i+1, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			entry, ok := p.structRegistry[a.Args[2]]
			if !ok {
				return "", fmt.Errorf("line %d: unregistered struct type %q", i+1, a.Args[2])
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
