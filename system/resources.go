package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/prefabs"
)

var (
	ErrLevelIndex   = errors.New("system: level index out of range")
	ErrMissingModel = errors.New("system: model does not resolve")
	ErrNoLevels     = errors.New("system: no levels")
)

// Resources resolves the named assets a scene reads while running.
type Resources interface {
	Level(name string) (*levels.Spec, error)
	Pattern(name string) ([]byte, error)
}

// Catalog serves levels and patterns from the embedded files, preferring
// copies on disk.
type Catalog struct {
	Options levels.ParseOptions
}

func (c Catalog) Level(name string) (*levels.Spec, error) {
	return levels.LoadSpec(name, c.Options)
}

func (c Catalog) Pattern(name string) ([]byte, error) {
	return prefabs.LoadPattern(name)
}

// Ready holds everything a scene needs before its first step. Building one
// with Prepare does all fallible loading up front.
type Ready struct {
	Tuning    *prefabs.Tuning
	Resources Resources
	LevelKeys []string
	Patterns  *Patterns
}

// Prepare checks that every level parses and every movement pattern they
// reference compiles.
func Prepare(res Resources, tuning *prefabs.Tuning, keys []string, logger *log.Logger) (*Ready, error) {
	if tuning == nil {
		return nil, errors.New("system: nil tuning")
	}
	if len(keys) == 0 {
		return nil, ErrNoLevels
	}
	patterns := NewPatterns(res.Pattern, logger)
	for _, key := range keys {
		spec, err := res.Level(key)
		if err != nil {
			return nil, fmt.Errorf("prepare %s: %w", key, err)
		}
		for _, attrs := range spec.Attributes {
			if attrs == nil || attrs.ElementType != levels.ElementEnemy {
				continue
			}
			if err := patterns.Compile(attrs.MovementPattern); err != nil {
				return nil, fmt.Errorf("prepare %s: %w", key, err)
			}
		}
	}
	return &Ready{Tuning: tuning, Resources: res, LevelKeys: keys, Patterns: patterns}, nil
}
