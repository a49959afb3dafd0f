// Command hairstylist paints a hair mask onto a head texture and previews the resulting strands in 3D.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/hairstylist/engine"
	"github.com/Carmen-Shannon/hairstylist/engine/config"
	"github.com/Carmen-Shannon/hairstylist/engine/logger"
	"go.uber.org/zap"
)

// GLFW and the wgpu surface must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() (code int) {
	configPath := flag.String("config", "hairstylist.yaml", "path to the YAML config file")
	verbose := flag.Bool("v", false, "development logging")
	dev := flag.Bool("dev", false, "enable F1 shader reload and the FPS title")
	flag.Parse()

	log, err := logger.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()
	undo := zap.ReplaceGlobals(log)
	defer undo()

	// Config and logger setup can still panic before the engine owns any resource.
	defer func() {
		if r := recover(); r != nil {
			log.Error("fatal", zap.Any("panic", r))
			code = 1
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", zap.Error(err))
		return 1
	}
	cfg.Debug.Dev = cfg.Debug.Dev || *dev

	e, err := engine.NewEngine(
		engine.WithConfig(cfg),
		engine.WithLogger(log),
	)
	if err != nil {
		log.Error("failed to start", zap.Error(err))
		return 1
	}
	return runEngine(e, log)
}

// runEngine runs the frame loop and closes e on the way out, including after a panic.
func runEngine(e engine.Engine, log *zap.Logger) (code int) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("fatal", zap.Any("panic", r))
			code = 1
		}
		if err := e.Close(); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()
	e.Run()
	return 0
}
