package profiler

import (
	"testing"
	"time"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	p := NewProfiler(WithTimeSource(func() time.Time { return now }))

	for i := range 59 {
		now = now.Add(16 * time.Millisecond)
		if _, ok := p.Tick(); ok {
			t.Fatalf("reported early at frame %d", i)
		}
	}
	now = start.Add(time.Second)
	s, ok := p.Tick()
	if !ok {
		t.Fatal("no report after one second")
	}
	if s.Frames != 60 || int(s.FPS+0.5) != 60 {
		t.Fatalf("frames %d fps %v", s.Frames, s.FPS)
	}
	if got := s.Title("HairStylist"); got != "HairStylist FPS: 60 Frame time: 16.667 ms/frame" {
		t.Fatalf("title = %q", got)
	}
	if p.Last().Frames != 60 {
		t.Fatal("Last not updated")
	}

	now = now.Add(time.Second / 60)
	if _, ok := p.Tick(); ok {
		t.Fatal("interval did not restart")
	}
}
