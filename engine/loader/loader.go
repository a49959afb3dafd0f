package loader

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/model"
	"github.com/Carmen-Shannon/hairstylist/engine/paint"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeBinaryMesh selects the count-prefixed binary dump backend with the head layout.
	BackendTypeBinaryMesh LoaderBackendType = iota
)

// defaultBrushSize is the side of the procedural brush used when no sprite can be read.
const defaultBrushSize = 128

// Request lists the files LoadAll reads at startup.
type Request struct {
	// MeshName is the cache key of the mesh.
	MeshName string
	// VertexPath and IndexPath are the binary mesh files. Both are required.
	VertexPath, IndexPath string
	// DiffusePath is the optional face texture.
	DiffusePath string
	// BrushPath is the optional brush sprite.
	BrushPath string
	// BrushSize is the side of the procedural fallback brush.
	BrushSize int
}

// Assets is the result of LoadAll.
type Assets struct {
	Head    model.Model
	Diffuse common.TextureStagingData
	Brush   *paint.Brush

	// DiffuseFallback and BrushFallback report that the optional file could not be read.
	DiffuseFallback bool
	BrushFallback   bool
}

// loader is the implementation of the Loader interface.
type loader struct {
	renderer renderer.Renderer
	log      *zap.Logger
	workers  int

	backend loaderBackend
}

// Loader defines the public-facing interface for loading the startup assets.
// It abstracts the mesh file format behind a backend.
type Loader interface {
	// LoadAll reads the mesh, the diffuse texture and the brush sprite in parallel on a worker
	// pool and waits for all three. A missing diffuse texture falls back to flat white and a
	// missing brush to a procedural soft brush; a mesh failure is returned.
	//
	// Parameters:
	//   - req: the files to read
	//
	// Returns:
	//   - *Assets: the decoded assets, with the mesh uploaded
	//   - error: error if the mesh cannot be loaded
	LoadAll(req Request) (*Assets, error)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeBinaryMesh)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers: 3,
		log:     zap.NewNop(),
	}

	switch backendType {
	case BackendTypeBinaryMesh:
		fallthrough
	default:
		l.backend = newBinaryLoaderBackend(model.HeadLayout)
	}

	for _, option := range options {
		option(l)
	}
	return l
}

// upload creates the GPU buffers of m when a renderer is set.
func (l *loader) upload(m model.Model) (model.Model, error) {
	if l.renderer != nil {
		if err := l.renderer.InitMeshBuffers(m.MeshProvider(), m.VertexBytes(), m.IndexBytes(), m.IndexCount()); err != nil {
			return nil, fmt.Errorf("failed to init mesh buffers for %q: %w", m.Name(), err)
		}
	}

	l.log.Info("mesh loaded",
		zap.String("name", m.Name()),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", m.IndexCount()),
		zap.String("size", humanize.Bytes(uint64(len(m.VertexBytes())+len(m.IndexBytes())))),
	)
	return m, nil
}

func (l *loader) LoadAll(req Request) (*Assets, error) {
	pool := worker.NewDynamicWorkerPool(l.workers, 8, 1*time.Second)
	defer pool.Stop()

	var (
		wg         sync.WaitGroup
		mesh       model.Model
		meshErr    error
		diffuse    common.TextureStagingData
		diffuseErr error
		brush      *paint.Brush
		brushErr   error
	)

	// Each task writes only its own results; the WaitGroup is the barrier.
	wg.Add(3)
	pool.SubmitTask(worker.Task{
		ID: 0,
		Do: func() (any, error) {
			defer wg.Done()
			mesh, meshErr = l.backend.Load(req.MeshName, req.VertexPath, req.IndexPath)
			return mesh, meshErr
		},
	})
	pool.SubmitTask(worker.Task{
		ID: 1,
		Do: func() (any, error) {
			defer wg.Done()
			diffuse, diffuseErr = decodeTexture(req.DiffusePath)
			return diffuse, diffuseErr
		},
	})
	pool.SubmitTask(worker.Task{
		ID: 2,
		Do: func() (any, error) {
			defer wg.Done()
			brush, brushErr = decodeBrush(req.BrushPath)
			return brush, brushErr
		},
	})
	wg.Wait()

	if meshErr != nil {
		return nil, fmt.Errorf("failed to load %s: %w", req.MeshName, meshErr)
	}
	head, err := l.upload(mesh)
	if err != nil {
		return nil, err
	}

	assets := &Assets{Head: head, Diffuse: diffuse, Brush: brush}
	if diffuseErr != nil {
		l.log.Warn("diffuse texture unavailable, using white", zap.String("path", req.DiffusePath), zap.Error(diffuseErr))
		assets.Diffuse = common.SolidTexture(1, 1, 255, 255, 255, 255)
		assets.DiffuseFallback = true
	}
	if brushErr != nil {
		l.log.Warn("brush sprite unavailable, using soft brush", zap.String("path", req.BrushPath), zap.Error(brushErr))
		size := req.BrushSize
		if size <= 0 {
			size = defaultBrushSize
		}
		assets.Brush = paint.SoftBrush(size)
		assets.BrushFallback = true
	}
	return assets, nil
}

// decodeTexture reads a color image with its bottom row first.
func decodeTexture(path string) (common.TextureStagingData, error) {
	if path == "" {
		return common.TextureStagingData{}, fmt.Errorf("no diffuse texture configured")
	}
	return common.ImageAsset{Name: "diffuse", Path: path, FlipVertical: true}.Staging()
}

// decodeBrush reads a brush sprite with its bottom row first, like the mask.
func decodeBrush(path string) (*paint.Brush, error) {
	if path == "" {
		return nil, fmt.Errorf("no brush sprite configured")
	}
	img, err := common.ImageAsset{Name: "brush", Path: path, FlipVertical: true}.Decode()
	if err != nil {
		return nil, err
	}
	return paint.NewBrush(img), nil
}
