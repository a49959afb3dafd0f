package profiler

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Stats is one reporting interval's worth of frame and memory statistics.
type Stats struct {
	// Frames is the number of frames in the interval.
	Frames int
	// FPS is Frames divided by the interval length.
	FPS float64
	// FrameTime is the mean frame duration.
	FrameTime time.Duration
	// Heap is the live heap size in bytes.
	Heap uint64
	// AllocRate is the allocation rate in bytes per second.
	AllocRate float64
	// GCCount is the total number of completed GC cycles.
	GCCount uint32
	// Sys is the memory obtained from the OS in bytes.
	Sys uint64
}

// Title formats the stats for a window title bar.
//
// Parameters:
//   - base: the window title
//
// Returns:
//   - string: e.g. "HairStylist FPS: 60 Frame time: 16.667 ms/frame"
func (s Stats) Title(base string) string {
	ms := float64(s.FrameTime) / float64(time.Millisecond)
	return fmt.Sprintf("%s FPS: %d Frame time: %.3f ms/frame", base, int(s.FPS+0.5), ms)
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	log            *zap.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		log:            zap.NewNop(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// When the update interval has elapsed it computes the interval's Stats and logs them at debug level.
//
// Returns:
//   - Stats: the stats of the interval that just ended, valid only when the bool is true
//   - bool: true if an interval ended on this tick
func (p *Profiler) Tick() (Stats, bool) {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	s := Stats{
		Frames:    p.frameCount,
		FPS:       float64(p.frameCount) / elapsed.Seconds(),
		FrameTime: elapsed / time.Duration(p.frameCount),
		Heap:      p.memStats.Alloc,
		AllocRate: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / elapsed.Seconds(),
		GCCount:   p.memStats.NumGC,
		Sys:       p.memStats.Sys,
	}

	p.log.Debug("frame stats",
		zap.Float64("fps", s.FPS),
		zap.Duration("frame_time", s.FrameTime),
		zap.String("heap", humanize.Bytes(s.Heap)),
		zap.String("alloc_rate", humanize.Bytes(uint64(s.AllocRate))+"/s"),
		zap.Uint32("gc", s.GCCount),
		zap.String("sys", humanize.Bytes(s.Sys)),
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return s, true
}

// Last returns the stats of the most recent completed interval.
func (p *Profiler) Last() Stats {
	return p.last
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the logger the stats are written to.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(log *zap.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.log = log
	}
}

// WithInterval sets how often stats are computed.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithTimeSource replaces time.Now, for tests.
//
// Parameters:
//   - now: the time source
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithTimeSource(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
