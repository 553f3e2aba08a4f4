package system

import (
	"errors"

	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/prefabs"
)

// LevelReport summarises one level for the level checker.
type LevelReport struct {
	Key           string
	Width, Height int
	Symbols       int
	// Regions is the number of merged solid rectangles.
	Regions        int
	Goals, Enemies int
	Undeclared     []string
	Unresolved     []string
	Backdrop       string
	// BackdropKnown is false when the backdrop tag has no configured colour.
	BackdropKnown bool
	Err           error
}

func (r LevelReport) OK() bool { return r.Err == nil }

// Inspect parses a level strictly and builds its world. Undeclared symbols
// and unresolved models are listed and also count as errors.
func Inspect(key string, data []byte, t *prefabs.Tuning) LevelReport {
	r := LevelReport{Key: key}

	spec, err := levels.ParseWithOptions(data, levels.ParseOptions{RejectUndeclared: true})
	if errors.Is(err, levels.ErrUndeclaredSymbol) {
		r.Err = err
		spec, err = levels.Parse(data)
		if err == nil {
			r.Undeclared = spec.Undeclared
		}
	}
	if err != nil {
		r.Err = err
		return r
	}

	r.Width, r.Height = spec.Width(), spec.Height()
	r.Symbols = len(spec.Symbols) - 1

	w, err := NewWorld(spec, t, nil)
	if err != nil {
		r.Err = errors.Join(r.Err, err)
		return r
	}
	r.Goals, r.Enemies = len(w.Goals), len(w.Enemies)
	r.Unresolved = w.Unresolved
	r.Regions = len(w.Level.SolidRegions(w.Space.TileOffset()))
	r.Backdrop = w.Backdrop()
	_, r.BackdropKnown = t.Backdrops[r.Backdrop]
	if err := w.RequireModels(); err != nil {
		r.Err = errors.Join(r.Err, err)
	}
	return r
}

// InspectAll reports on every key, reading each through load.
func InspectAll(keys []string, load func(string) ([]byte, error), t *prefabs.Tuning) []LevelReport {
	out := make([]LevelReport, 0, len(keys))
	for _, key := range keys {
		data, err := load(key)
		if err != nil {
			out = append(out, LevelReport{Key: key, Err: err})
			continue
		}
		out = append(out, Inspect(key, data, t))
	}
	return out
}
