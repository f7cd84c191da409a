package commands

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/layout"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
	"github.com/mcapelli/chrono/internal/timeutil"
	"github.com/mcapelli/chrono/internal/tui"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day grid",
	Long: `Render the day as an hour grid with the planned blocks slotted in.

Examples:
  chrono today
  chrono today --date 2026-03-09`,
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		now := time.Now()
		if date == "" {
			date = timeutil.FormatDate(now)
		}
		blocks, err := st.ByDate(date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		grid := layout.Grid{
			StartHour: cfg.DayStartHour,
			EndHour:   cfg.DayEndHour,
			RowHeight: layout.DefaultRowHeight,
			MinHeight: layout.DefaultMinHeight,
		}
		isToday := date == timeutil.FormatDate(now)

		fmt.Printf("📆 %s\n\n", date)
		for _, hour := range grid.Hours() {
			marker := "  "
			if isToday && grid.IsCurrentHour(hour, now) {
				marker = "▸ "
			}
			fmt.Printf("%s%s ┤", marker, timeutil.MinutesToTime(hour*60))
			for _, b := range blocksInHour(blocks, hour) {
				fmt.Printf(" %s", renderBlockChip(b))
			}
			fmt.Println()
		}
		if isToday {
			if _, visible := grid.NowLine(now); !visible {
				fmt.Println("\n(current time is outside the visible range)")
			}
		}
		if len(blocks) == 0 {
			fmt.Println("\nNo blocks planned. Add one with: chrono add \"Deep work 09:00-10:30 @work\"")
		}
	}),
}

// blocksInHour picks blocks whose planned start falls inside the hour row.
// Unparseable times are skipped rather than failing the whole render.
func blocksInHour(blocks []models.TimeBlock, hour int) []*models.TimeBlock {
	var out []*models.TimeBlock
	for i := range blocks {
		start, err := timeutil.TimeToMinutes(blocks[i].StartTime)
		if err != nil {
			continue
		}
		if start/60 == hour {
			out = append(out, &blocks[i])
		}
	}
	return out
}

func renderBlockChip(b *models.TimeBlock) string {
	color := tui.ColorHelpText
	if info, ok := models.CategoryByID(b.Category); ok {
		color = info.Color
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	label := fmt.Sprintf("▍%s–%s %s", b.StartTime, b.EndTime, b.Title)
	if b.Status == models.StatusCompleted {
		label += " ✔"
	}
	if b.ExternalEvent {
		label += " 🔒"
	}
	total, done := b.SubTaskCounts()
	if total > 0 {
		label += fmt.Sprintf(" [%d/%d]", done, total)
	}
	return style.Render(label)
}

func init() {
	todayCmd.Flags().String("date", "", "Day to render (YYYY-MM-DD, default today)")
}
