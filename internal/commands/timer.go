package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/lifecycle"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
	"github.com/mcapelli/chrono/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start the timer on a block",
	Long: `Start the timer on a planned block.

Examples:
  chrono start a1b2
  chrono start a1b2 --ui`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := applyTransition(st, block, engine.Start); err != nil {
			printTransitionError(err)
			return
		}
		ui, _ := cmd.Flags().GetBool("ui")
		if ui {
			if err := tui.RunTimerTUI(st, engine, block); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}
		fmt.Printf("▶️  Started \"%s\"\n", block.Title)
	}),
}

var pauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Pause the timer on a block",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := applyTransition(st, block, engine.Pause); err != nil {
			printTransitionError(err)
			return
		}
		fmt.Printf("⏸️  Paused \"%s\" at %s\n", block.Title, formatDuration(engine.Elapsed(block, time.Now())))
	}),
}

var resumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Resume a paused block",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := applyTransition(st, block, engine.Resume); err != nil {
			printTransitionError(err)
			return
		}
		fmt.Printf("▶️  Resumed \"%s\"\n", block.Title)
	}),
}

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Complete a running block",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := applyTransition(st, block, engine.Complete); err != nil {
			printTransitionError(err)
			return
		}
		fmt.Printf("✅ Completed \"%s\" after %s\n", block.Title, formatDuration(engine.Elapsed(block, time.Now())))
	}),
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Reopen a completed block",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := applyTransition(st, block, engine.Reopen); err != nil {
			printTransitionError(err)
			return
		}
		fmt.Printf("🔄 Reopened \"%s\"\n", block.Title)
	}),
}

var checkCmd = &cobra.Command{
	Use:   "check <id>",
	Short: "Toggle a block done without touching the timer",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := applyTransition(st, block, engine.ToggleComplete); err != nil {
			printTransitionError(err)
			return
		}
		if block.Status == models.StatusCompleted {
			fmt.Printf("✅ Checked off \"%s\"\n", block.Title)
		} else {
			fmt.Printf("↩️  Unchecked \"%s\"\n", block.Title)
		}
	}),
}

func applyTransition(st *store.Store, b *models.TimeBlock, op func(*models.TimeBlock) error) error {
	if err := op(b); err != nil {
		return err
	}
	return st.SaveTransition(b)
}

func printTransitionError(err error) {
	var invalid *lifecycle.InvalidTransitionError
	switch {
	case errors.Is(err, models.ErrImmutableBlock):
		fmt.Println("🔒 Imported calendar blocks have no timer")
	case errors.As(err, &invalid):
		fmt.Printf("Error: %s\n", invalid.Error())
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func init() {
	startCmd.Flags().Bool("ui", false, "Open the full-screen timer")
}
