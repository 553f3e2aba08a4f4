package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/milk9111/littlehelpers/system"
	"github.com/spf13/cobra"
)

var (
	flagScript string
	flagDT     float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay an input script without a window",
	Long: `Replay a YAML input script against the campaign with a fixed step and
log the final status. The same script always produces the same result.

Script format:
  level: 0          # 0-based level index
  dt: 16            # step in ms
  steps: 600
  events:
    - {step: 10, action: right, magnitude: 1}
    - {step: 40, action: jump, magnitude: 1}

Examples:
  littlehelpers simulate --script run.yaml
  littlehelpers simulate --script run.yaml --dt 8`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Path to the input script YAML")
	simulateCmd.Flags().Float64Var(&flagDT, "dt", 0, "Override the script step in ms")
	_ = simulateCmd.MarkFlagRequired("script")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	runID := uuid.New()
	logger := newLogger("simulate").With("run", runID.String())

	data, err := os.ReadFile(flagScript)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := system.ParseScript(data)
	if err != nil {
		return err
	}

	ready, err := prepare("", logger)
	if err != nil {
		return err
	}
	scene, err := system.NewScene(ready, logger)
	if err != nil {
		return err
	}

	logger.Info("replaying", "script", flagScript, "steps", script.Steps, "events", len(script.Events))
	out, err := system.Replay(scene, script, flagDT)
	if err != nil {
		return err
	}
	logger.Info("replay finished",
		"level", out.Level+1,
		"found", out.Found,
		"total", out.Total,
		"health", out.Health,
		"state", out.State,
		"elapsed_ms", out.Elapsed,
		"game_over", out.GameOver,
		"game_complete", out.GameComplete,
	)
	return nil
}
