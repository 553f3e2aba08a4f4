package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed patterns/*.tengo
var PatternsFS embed.FS

// LoadPattern reads a movement pattern script by name, preferring the copy
// under prefabs/patterns on disk.
func LoadPattern(name string) ([]byte, error) {
	clean := cleanPatternPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PatternsFS.ReadFile(clean)
}

//go:embed *.yaml
var PrefabsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanPatternPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	s = strings.TrimPrefix(s, "patterns/")
	if !strings.HasSuffix(s, PatternExt) {
		s += PatternExt
	}
	return "patterns/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
