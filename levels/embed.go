package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.ssls
var LevelsFS embed.FS

// Ext is the level file extension.
const Ext = ".ssls"

// Count is the number of levels in the campaign.
const Count = 10

// Key returns the resource key of the level at index i.
func Key(i int) string {
	return fmt.Sprintf("LittleHelpersLevel%d", i+1)
}

// Keys lists every campaign level key in play order.
func Keys() []string {
	out := make([]string, Count)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// Load reads a level by key or file name. A file under levels/ on disk takes
// precedence over the embedded copy so levels can be edited without a
// rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	data, err := LevelsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return data, nil
}

// LoadSpec reads and parses a level.
func LoadSpec(name string, opts ParseOptions) (*Spec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, err
	}
	spec, err := ParseWithOptions(data, opts)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return spec, nil
}

// DiskPath is where an on-disk override of a level lives.
func DiskPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, Ext) {
		s += Ext
	}
	return s
}
