package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/analytics"
	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus analytics",
	Long: `Aggregate the planner history into focus analytics.

Examples:
  chrono stats
  chrono stats --window week
  chrono stats --window month`,
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		windowName, _ := cmd.Flags().GetString("window")
		window, err := parseWindow(windowName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		now := time.Now()
		from, to := window.Range(now)
		blocks, err := st.ByRange(from, to)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		history, err := st.All()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📊 Stats for %s (%s to %s)\n\n", windowName, from, to)
		if len(blocks) == 0 {
			fmt.Println("No blocks in this window yet.")
			return
		}

		renderDistribution(analytics.CategoryDistribution(blocks))
		renderPlannedVsActual(analytics.PlannedVsActual(blocks))

		fmt.Printf("Completion: %.0f%%\n", analytics.CompletionRate(blocks))
		subs := analytics.SubTasks(blocks)
		if subs.Total > 0 {
			fmt.Printf("Sub-tasks:  %d/%d done\n", subs.Completed, subs.Total)
		}
		fmt.Println()

		renderTrend(analytics.SubTaskTrend(history, now))
		renderHeatmap(analytics.FocusHeatmap(history, now))
	}),
}

func parseWindow(name string) (analytics.Window, error) {
	switch name {
	case "today":
		return analytics.WindowToday, nil
	case "week":
		return analytics.WindowWeek, nil
	case "month":
		return analytics.WindowMonth, nil
	default:
		return 0, fmt.Errorf("unknown window %q, expected today, week or month", name)
	}
}

func renderDistribution(totals []analytics.CategoryTotal) {
	if len(totals) == 0 {
		return
	}
	maxMinutes := 0
	for _, t := range totals {
		if t.Minutes > maxMinutes {
			maxMinutes = t.Minutes
		}
	}
	fmt.Println("Time by category:")
	for _, t := range totals {
		bar := strings.Repeat("█", barWidth(t.Minutes, maxMinutes, 24))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color))
		fmt.Printf("  %-8s %s %s\n", t.Name, style.Render(bar), formatMinutes(t.Minutes))
	}
	fmt.Println()
}

func renderPlannedVsActual(rows []analytics.PlannedActual) {
	if len(rows) == 0 {
		return
	}
	fmt.Println("Planned vs actual (hours):")
	for _, r := range rows {
		fmt.Printf("  %-8s planned %.1f  actual %.1f\n", r.Name, r.PlannedHours, r.ActualHours)
	}
	fmt.Println()
}

func renderTrend(points []analytics.TrendPoint) {
	total := 0
	for _, p := range points {
		total += p.Completed
	}
	if total == 0 {
		return
	}
	fmt.Println("Sub-tasks done, trailing week:")
	for _, p := range points {
		fmt.Printf("  %s %s %d\n", p.Date[5:], strings.Repeat("▪", p.Completed), p.Completed)
	}
	fmt.Println()
}

var heatGlyphs = []rune(" ░▒▓█")

func renderHeatmap(hm analytics.Heatmap) {
	any := false
	for _, row := range hm.Cells {
		for _, c := range row {
			if c > 0 {
				any = true
			}
		}
	}
	if !any {
		return
	}

	fmt.Println("Focus heatmap (6:00 to 24:00):")
	fmt.Printf("  %-5s ", "")
	for h := 0; h < analytics.HeatmapHours; h += 3 {
		fmt.Printf("%-3d", analytics.DefaultStartHour+h)
	}
	fmt.Println()
	for i, day := range hm.Days {
		var row strings.Builder
		for _, cell := range hm.Cells[i] {
			row.WriteRune(heatGlyph(cell))
		}
		fmt.Printf("  %s %s\n", day[5:], row.String())
	}
	fmt.Println()
}

func heatGlyph(v float64) rune {
	idx := int(v * float64(len(heatGlyphs)-1))
	if v > 0 && idx == 0 {
		idx = 1
	}
	if idx >= len(heatGlyphs) {
		idx = len(heatGlyphs) - 1
	}
	return heatGlyphs[idx]
}

func barWidth(value, maxValue, width int) int {
	if maxValue <= 0 {
		return 0
	}
	w := value * width / maxValue
	if value > 0 && w == 0 {
		w = 1
	}
	return w
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

func init() {
	statsCmd.Flags().String("window", "today", "Aggregation window: today, week or month")
}
