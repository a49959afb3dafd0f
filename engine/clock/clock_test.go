package clock

import (
	"testing"
	"time"
)

func TestTick(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	c := New(func() time.Time { return now })

	now = base.Add(16 * time.Millisecond)
	if d := c.Tick(); d != 16*time.Millisecond {
		t.Fatalf("first Tick = %v, want 16ms", d)
	}
	now = base.Add(50 * time.Millisecond)
	if d := c.Tick(); d != 34*time.Millisecond {
		t.Fatalf("second Tick = %v, want 34ms", d)
	}
	if c.Total() != 50*time.Millisecond {
		t.Fatalf("Total = %v, want 50ms", c.Total())
	}
	if c.Frame() != 2 {
		t.Fatalf("Frame = %d, want 2", c.Frame())
	}
	if got := c.DeltaSeconds(); got < 0.0339 || got > 0.0341 {
		t.Fatalf("DeltaSeconds = %v", got)
	}
}

func TestNewDefaultsToTimeNow(t *testing.T) {
	c := New(nil)
	if c.Tick() < 0 {
		t.Fatal("negative delta")
	}
}
