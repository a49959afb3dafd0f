package main

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/hairstylist/engine/window"
	"go.uber.org/zap"
)

// fakeEngine records Close calls and can panic inside Run.
type fakeEngine struct {
	panicInRun bool
	closeErr   error
	closed     int
}

func (f *fakeEngine) Window() window.Window { return nil }

func (f *fakeEngine) Run() {
	if f.panicInRun {
		panic("device lost")
	}
}

func (f *fakeEngine) Quit() {}

func (f *fakeEngine) Close() error {
	f.closed++
	return f.closeErr
}

func TestRunEngineClosesOnExit(t *testing.T) {
	tests := []struct {
		name     string
		engine   *fakeEngine
		wantCode int
	}{
		{name: "clean quit", engine: &fakeEngine{}, wantCode: 0},
		{name: "panic in run", engine: &fakeEngine{panicInRun: true}, wantCode: 1},
		{name: "close error", engine: &fakeEngine{closeErr: errors.New("terminate")}, wantCode: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := runEngine(tt.engine, zap.NewNop())
			if code != tt.wantCode {
				t.Errorf("runEngine() = %d, want %d", code, tt.wantCode)
			}
			if tt.engine.closed != 1 {
				t.Errorf("Close called %d times, want 1", tt.engine.closed)
			}
		})
	}
}
