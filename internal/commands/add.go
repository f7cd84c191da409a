package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/parser"
	"github.com/mcapelli/chrono/internal/store"
	"github.com/mcapelli/chrono/internal/timeutil"
)

var addCmd = &cobra.Command{
	Use:   "add [entry]",
	Short: "Add a time block",
	Long: `Add a time block using quick-add syntax.

Examples:
  chrono add "Deep work 09:00-10:30 @work"
  chrono add "Review PRs 14:00-15:00 @work on:2026-03-09"
  chrono add "Morning run 7:00-7:45 @health"`,
	Args: cobra.MinimumNArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		entry := parser.ParseEntry(strings.Join(args, " "), time.Now())
		if len(entry.Errors) > 0 {
			for _, e := range entry.Errors {
				fmt.Printf("Error: %s\n", e)
			}
			return
		}

		block := &models.TimeBlock{
			ID:        uuid.NewString(),
			Title:     entry.Title,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Category:  entry.Category,
			Date:      entry.Date,
			Status:    models.StatusPlanned,
		}
		if err := st.Add(block); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📅 Added \"%s\" %s–%s on %s [%s]\n",
			block.Title, block.StartTime, block.EndTime, block.Date, block.Category)
		fmt.Printf("ID: %s\n", shortID(block.ID))
	}),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the blocks for a day",
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = timeutil.FormatDate(time.Now())
		}
		blocks, err := st.ByDate(date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(blocks) == 0 {
			fmt.Printf("No blocks on %s\n", date)
			return
		}

		fmt.Printf("Blocks on %s:\n\n", date)
		for _, b := range blocks {
			fmt.Printf("  %s %s  %s–%s  %s [%s]%s\n",
				statusIcon(&b), shortID(b.ID), b.StartTime, b.EndTime, b.Title, b.Category, externalTag(&b))
			for _, sub := range b.SubTasks {
				box := "☐"
				if sub.Completed {
					box = "☑"
				}
				fmt.Printf("      %s %s (%s)\n", box, sub.Title, shortID(sub.ID))
			}
		}
	}),
}

func statusIcon(b *models.TimeBlock) string {
	switch b.Status {
	case models.StatusActive:
		return "▶"
	case models.StatusPaused:
		return "⏸"
	case models.StatusCompleted:
		return "✔"
	default:
		return "·"
	}
}

func externalTag(b *models.TimeBlock) string {
	if b.ExternalEvent {
		return " (calendar)"
	}
	return ""
}

func init() {
	listCmd.Flags().String("date", "", "Day to list (YYYY-MM-DD, default today)")
}
