package main

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/prefabs"
	"github.com/milk9111/littlehelpers/progress"
	"github.com/milk9111/littlehelpers/system"
)

// Game adapts a scene to ebiten: it feeds input events and a fixed step to
// the scene each tick and draws the result.
type Game struct {
	logger *log.Logger
	ready  *system.Ready
	scene  *system.Scene

	input    *Input
	renderer *Renderer
	status   *StatusUI
	watcher  *prefabs.Watcher

	lastState progress.State
}

func NewGame(ready *system.Ready, logger *log.Logger, debug bool, watcher *prefabs.Watcher) (*Game, error) {
	scene, err := system.NewScene(ready, logger)
	if err != nil {
		return nil, err
	}
	g := &Game{
		logger:    logger,
		ready:     ready,
		scene:     scene,
		input:     NewInput(),
		renderer:  &Renderer{Debug: debug},
		status:    NewStatusUI(),
		watcher:   watcher,
		lastState: scene.State(),
	}
	g.status.Refresh(scene)
	return g, nil
}

func (g *Game) Update() error {
	if g.input.Quit() {
		return ebiten.Termination
	}
	if g.input.ToggleDebug() {
		g.renderer.Debug = !g.renderer.Debug
	}
	g.drainWatcher()

	for _, e := range g.input.Poll() {
		g.scene.HandleInput(e)
	}
	g.scene.Step(1000 / float64(ebiten.TPS()))

	if state := g.scene.State(); g.scene.ShouldUpdateOverlay() || state != g.lastState {
		g.status.Refresh(g.scene)
		g.lastState = state
	}
	g.status.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene, g.ready.Tuning)
	g.status.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return screenWidth, screenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// drainWatcher applies every pending file change without blocking.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watch error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch {
	case prefabs.IsTuningFile(path):
		t, err := loadTuning()
		if err != nil {
			g.logger.Error("tuning reload failed", "path", path, "err", err)
			return
		}
		g.ready.Tuning = t
		g.scene.SetTuning(t)
		g.logger.Info("tuning reloaded", "path", path)
	case prefabs.IsPatternFile(path):
		if g.ready.Patterns != nil {
			g.ready.Patterns.Reset()
		}
		g.logger.Info("movement patterns reloaded", "path", path)
	case prefabs.IsLevelFile(path):
		key := strings.TrimSuffix(filepath.Base(path), levels.Ext)
		if key != g.ready.LevelKeys[g.scene.LevelIndex()] {
			g.logger.Debug("ignoring edit to another level", "path", path)
			return
		}
		if err := g.scene.ReloadLevel(); err != nil {
			g.logger.Error("level reload failed", "path", path, "err", err)
			return
		}
		g.logger.Info("level reloaded", "level", key)
	}
}
