// littlehelpers runs the Little Helpers platformer.
//
// Usage:
//
//	littlehelpers play                 - Open the game window
//	littlehelpers check [level...]     - Validate levels
//	littlehelpers simulate --script f  - Replay an input script headlessly
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/prefabs"
	"github.com/milk9111/littlehelpers/system"
	"github.com/spf13/cobra"
)

var (
	flagDebug  bool
	flagTuning string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "littlehelpers",
	Short: "Little Helpers - a 2.5D platformer about collecting lost pieces",
	Long: `Little Helpers is a side-scrolling platformer. Collect every piece in a
level before your durability runs out to move on to the next one.

Available commands:
  play      - Open the game window
  check     - Parse levels strictly and report problems
  simulate  - Replay an input script without a window`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagTuning, "tuning", "", "Path to a tuning YAML (default: prefabs/tuning.yaml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(simulateCmd)
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func loadTuning() (*prefabs.Tuning, error) {
	if flagTuning != "" {
		return prefabs.LoadTuningFile(flagTuning)
	}
	return prefabs.LoadTuning()
}

// prepare loads the tuning and every campaign level. A non-empty level,
// given as a key or a 1-based number, starts the play order there. Any other
// name plays that single level file.
func prepare(level string, logger *log.Logger) (*system.Ready, error) {
	tuning, err := loadTuning()
	if err != nil {
		return nil, err
	}
	keys, err := playOrder(level)
	if err != nil {
		return nil, err
	}
	return system.Prepare(system.Catalog{}, tuning, keys, logger)
}

func playOrder(level string) ([]string, error) {
	keys := levels.Keys()
	if level == "" {
		return keys, nil
	}
	if n, err := strconv.Atoi(level); err == nil && n >= 1 && n <= levels.Count {
		level = levels.Key(n - 1)
	}
	for i, k := range keys {
		if k == level {
			return keys[i:], nil
		}
	}
	if _, err := levels.Load(level); err != nil {
		return nil, err
	}
	return []string{level}, nil
}
