package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/system"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("some levels failed the check")

var (
	checkHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	checkCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	checkOKStyle     = checkCellStyle.Foreground(lipgloss.Color("2"))
	checkFailStyle   = checkCellStyle.Foreground(lipgloss.Color("1"))
	checkBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var checkCmd = &cobra.Command{
	Use:   "check [level...]",
	Short: "Parse levels strictly and report problems",
	Long: `Parse every campaign level, or the named ones, rejecting undeclared
symbols, and build each world to find unresolved models.

Examples:
  littlehelpers check
  littlehelpers check LittleHelpersLevel3 levels/custom.ssls`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger("check")

	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	keys := args
	if len(keys) == 0 {
		keys = levels.Keys()
	}

	reports := system.InspectAll(keys, levels.Load, tuning)
	fmt.Fprintln(cmd.OutOrStdout(), checkTable(reports))

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			logger.Error("level failed", "level", r.Key, "err", r.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errCheckFailed, failed, len(reports))
	}
	logger.Info("all levels passed", "count", len(reports))
	return nil
}

func checkTable(reports []system.LevelReport) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		status := "ok"
		if r.Err != nil {
			status = "FAIL"
		}
		backdrop := r.Backdrop
		if backdrop != "" && !r.BackdropKnown {
			backdrop += " (no colour)"
		}
		rows = append(rows, []string{
			r.Key,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			strconv.Itoa(r.Symbols),
			strconv.Itoa(r.Regions),
			strconv.Itoa(r.Goals),
			strconv.Itoa(r.Enemies),
			listOrDash(r.Undeclared),
			listOrDash(r.Unresolved),
			orDash(backdrop),
			status,
		})
	}

	statusCol := 9
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(checkBorderStyle).
		Headers("LEVEL", "SIZE", "SYMBOLS", "REGIONS", "GOALS", "ENEMIES", "UNDECLARED", "UNRESOLVED", "BACKDROP", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return checkHeaderStyle
			case col == statusCol && rows[row][col] == "ok":
				return checkOKStyle
			case col == statusCol:
				return checkFailStyle
			}
			return checkCellStyle
		}).
		String()
}

func listOrDash(items []string) string {
	return orDash(strings.Join(items, " "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
