package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/obj"
	"github.com/milk9111/littlehelpers/prefabs"
)

// World is the environment of one level: the grid, the scroll position and
// the dynamic elements extracted from it.
type World struct {
	Level   *obj.Level
	Space   *obj.Space
	Goals   []*obj.Item
	Enemies []*obj.Item
	// Unresolved lists model tags that did not resolve, once each.
	Unresolved []string
}

// NewWorld builds the environment for spec. The scroll starts with the
// level's bottom-left corner in the viewport's bottom-left corner.
func NewWorld(spec *levels.Spec, t *prefabs.Tuning, logger *log.Logger) (*World, error) {
	if spec == nil {
		return nil, fmt.Errorf("world: nil level")
	}
	if spec.Height() == 0 || spec.Width() == 0 {
		return nil, fmt.Errorf("world: %w", levels.ErrNoGrid)
	}
	lvl := obj.NewLevel(spec, t.LevelScale.X(), t.LevelScale.Y(), t.LevelScale.Z())
	space := &obj.Space{Scale: t.WorldScale, Scroll: lvl.InitialTileOffset().Mul(-1)}

	w := &World{Level: lvl, Space: space}
	w.spawnElements(t)
	if len(w.Unresolved) > 0 && logger != nil {
		logger.Warn("unresolved models", "models", strings.Join(w.Unresolved, ","))
	}
	return w, nil
}

// Items returns goals followed by enemies.
func (w *World) Items() []*obj.Item {
	out := make([]*obj.Item, 0, len(w.Goals)+len(w.Enemies))
	out = append(out, w.Goals...)
	return append(out, w.Enemies...)
}

// RequireModels fails with ErrMissingModel when any element's model did not
// resolve.
func (w *World) RequireModels() error {
	if len(w.Unresolved) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingModel, strings.Join(w.Unresolved, ", "))
}

// Backdrop is the level's backdrop tag, or empty.
func (w *World) Backdrop() string { return w.Level.Backdrop() }
