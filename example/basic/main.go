package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/scene"
	"github.com/oomph-ac/kinematic/settings"
	"github.com/oomph-ac/kinematic/world"
	"github.com/oomph-ac/kinematic/worker"
	"github.com/sirupsen/logrus"
)

// The following program walks a few scripted bodies around an arena. The scene file is reloaded
// whenever it is edited.
func main() {
	settingsPath := "kinematic.toml"
	if len(os.Args) > 1 {
		settingsPath = os.Args[1]
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	s, err := settings.Load(settingsPath)
	if err != nil {
		logger.Fatalf("unable to load settings: %v", err)
	}
	lvl, err := s.LogLevel()
	if err != nil {
		logger.Fatalf("invalid settings: %v", err)
	}
	logger.SetLevel(lvl)

	if s.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Sentry.DSN}); err != nil {
			logger.Fatalf("unable to start sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 2)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	cfg, err := s.Config()
	if err != nil {
		logger.Fatalf("invalid controller settings: %v", err)
	}
	interval, err := s.TickInterval()
	if err != nil {
		logger.Fatalf("invalid settings: %v", err)
	}

	snapshot, err := loadScene(s.Scene.Path)
	if err != nil {
		logger.Fatalf("unable to load scene: %v", err)
	}
	logger.Infof("loaded scene %s with %d colliders (fingerprint %x)", s.Scene.Path, snapshot.Len(), snapshot.Fingerprint())

	pool := worker.NewPool(s.Simulation.Workers, logger)
	defer pool.Close()
	w := world.New(pool, logger)

	players := []*player{
		newPlayer(w, cfg, mgl32.Vec3{0, 2, 0}, keyboardScript, logger),
		newPlayer(w, cfg, mgl32.Vec3{-6, 1, -12}, gamepadScript, logger),
		newPlayer(w, cfg, mgl32.Vec3{4.5, 3, -3.5}, nil, logger),
	}

	var reload <-chan string
	if s.Scene.Watch {
		dirs := uniqueDirs(s.Scene.Path, settingsPath)
		watcher, err := scene.NewWatcher(dirs...)
		if err != nil {
			logger.Errorf("unable to watch %v, hot reload disabled: %v", dirs, err)
		} else {
			defer watcher.Close()
			reload = watcher.Events
			go func() {
				for err := range watcher.Errors {
					logger.Errorf("watcher: %v", err)
				}
			}()
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	dt := float32(interval.Seconds())
	var tick uint64

	logger.Infof("simulating %d bodies at %d ticks per second", w.Len(), s.Simulation.TickRate)
	for {
		select {
		case <-stop:
			logger.Info("stopping")
			return
		case path, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			snapshot = handleReload(path, s.Scene.Path, settingsPath, snapshot, logger)
		case <-ticker.C:
			tick++
			intents := make(map[world.BodyID]movement.Intent, len(players))
			for _, p := range players {
				intents[p.id] = p.intent(tick)
			}

			report := w.Tick(snapshot, intents, dt)
			for id, err := range report.Errors {
				logger.WithField("body", id).Errorf("tick %d failed: %v", tick, err)
			}
			if tick%uint64(s.Simulation.TickRate) == 0 {
				stats := w.TickStats()
				logger.Debugf("tick time over %d ticks: mean=%.3fms stddev=%.3fms max=%.3fms", stats.Samples, stats.Mean, stats.StdDev, stats.Max)
				for _, info := range w.Bodies() {
					logger.WithField("body", info.ID).Infof("pos=%v vel=%v mode=%v", info.Position, info.State.Velocity, info.State.Mode)
				}
			}
		}
	}
}

// loadScene loads the scene spec at path, writing the default arena to it first if it does not exist.
func loadScene(path string) (*scene.Snapshot, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		data, err := scene.DefaultArena().Marshal()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed writing default scene: %w", err)
		}
	}

	spec, err := scene.LoadSpec(path)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

// handleReload reloads the scene if the file changed is the scene file. The current snapshot is kept
// if the new one fails to load or holds the same colliders.
func handleReload(changed, scenePath, settingsPath string, current *scene.Snapshot, logger *logrus.Logger) *scene.Snapshot {
	switch filepath.Clean(changed) {
	case filepath.Clean(settingsPath):
		s, err := settings.Load(settingsPath)
		if err != nil {
			logger.Errorf("unable to reload settings: %v", err)
			return current
		}
		if lvl, err := s.LogLevel(); err == nil {
			logger.SetLevel(lvl)
		}
		logger.Info("settings reloaded, controller changes apply on restart")
		return current
	case filepath.Clean(scenePath):
		next, err := loadScene(scenePath)
		if err != nil {
			logger.Errorf("unable to reload scene: %v", err)
			return current
		}
		if next.Fingerprint() == current.Fingerprint() {
			return current
		}
		logger.Infof("scene reloaded with %d colliders (fingerprint %x)", next.Len(), next.Fingerprint())
		return next
	}
	return current
}

func uniqueDirs(paths ...string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
