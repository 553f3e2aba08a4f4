package main

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/littlehelpers/prefabs"
	"github.com/spf13/cobra"
)

var (
	flagLevel string
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Play the campaign in a window.

Controls:
  A/D, Left/Right, left stick  - Walk
  Space, gamepad A             - Jump (also restarts after the game ends)
  F3                           - Toggle collision outlines
  Esc/F12                      - Quit

Examples:
  littlehelpers play
  littlehelpers play --level 4
  littlehelpers play --watch --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level key, file or 1-based number to start at")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload levels, tuning and patterns when their files change")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger("littlehelpers")

	ready, err := prepare(flagLevel, logger)
	if err != nil {
		return err
	}

	var watcher *prefabs.Watcher
	if flagWatch {
		watcher, err = prefabs.NewWatcher("levels", "prefabs", filepath.Join("prefabs", "patterns"))
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer watcher.Close()
		logger.Info("watching for changes", "dirs", "levels, prefabs")
	}

	game, err := NewGame(ready, logger, flagDebug, watcher)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Little Helpers")
	return ebiten.RunGame(game)
}
