package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatched(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"prefabs/tuning.yaml", true},
		{"prefabs/other.YML", true},
		{"prefabs/patterns/hover.tengo", true},
		{"levels/level_3.ssls", true},
		{"levels/notes.txt", false},
		{"prefabs/tuning.yaml~", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Watched(tt.path))
		})
	}
}

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "level_1.ssls")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for level write")
	}
}

func TestLoadPatternPrefersEmbedded(t *testing.T) {
	data, err := LoadPattern("hover")
	require.NoError(t, err)
	assert.Contains(t, string(data), "velocity")

	_, err = LoadPattern("does_not_exist")
	require.Error(t, err)
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "patterns/hover.tengo", cleanPatternPath("hover"))
	assert.Equal(t, "patterns/hover.tengo", cleanPatternPath("prefabs/patterns/hover.tengo"))
	assert.Equal(t, "tuning.yaml", cleanPrefabPath("prefabs/tuning.yaml"))
	assert.Equal(t, "", cleanPrefabPath(""))
}
