package commands

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
	"github.com/mcapelli/chrono/internal/timeutil"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a time block",
	Long: `Edit fields of an existing block. Only the flags you pass are changed.

Examples:
  chrono edit a1b2 --title "Deep work: API design"
  chrono edit a1b2 --start 10:00 --end 11:30
  chrono edit a1b2 --category study --date 2026-03-10`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var patch models.Patch
		changed := false
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			patch.Title = &v
			changed = true
		}
		if cmd.Flags().Changed("start") {
			v, _ := cmd.Flags().GetString("start")
			if err := validTime(v); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			patch.StartTime = &v
			changed = true
		}
		if cmd.Flags().Changed("end") {
			v, _ := cmd.Flags().GetString("end")
			if err := validTime(v); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			patch.EndTime = &v
			changed = true
		}
		if cmd.Flags().Changed("category") {
			v, _ := cmd.Flags().GetString("category")
			cat := models.Category(v)
			if !models.ValidCategory(cat) {
				fmt.Printf("Error: unknown category %q\n", v)
				return
			}
			patch.Category = &cat
			changed = true
		}
		if cmd.Flags().Changed("date") {
			v, _ := cmd.Flags().GetString("date")
			if _, err := timeutil.ParseDate(v); err != nil {
				fmt.Printf("Error: invalid date %q, expected YYYY-MM-DD\n", v)
				return
			}
			patch.Date = &v
			changed = true
		}
		if !changed {
			fmt.Println("Nothing to change. Pass --title, --start, --end, --category or --date.")
			return
		}

		updated, err := st.Update(block.ID, patch)
		if err != nil {
			if errors.Is(err, models.ErrImmutableBlock) {
				fmt.Println("🔒 Imported calendar blocks cannot be edited")
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✏️  Updated \"%s\" %s–%s on %s\n", updated.Title, updated.StartTime, updated.EndTime, updated.Date)
	}),
}

func validTime(s string) error {
	minutes, err := timeutil.TimeToMinutes(s)
	if err != nil {
		return err
	}
	if minutes < 0 || minutes >= timeutil.MinutesPerDay {
		return fmt.Errorf("time %q is out of range", s)
	}
	return nil
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a time block",
	Args:    cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := st.Remove(block.ID); err != nil {
			if errors.Is(err, models.ErrImmutableBlock) {
				fmt.Println("🔒 Imported calendar blocks cannot be removed")
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Removed \"%s\"\n", block.Title)
	}),
}

var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Manage the sub-tasks of a block",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <block-id> <title>",
	Short: "Append a sub-task to a block",
	Args:  cobra.ExactArgs(2),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		subs := append(block.SubTasks, models.SubTask{
			ID:    uuid.NewString(),
			Title: args[1],
		})
		if _, err := st.Update(block.ID, models.Patch{SubTasks: subs}); err != nil {
			if errors.Is(err, models.ErrImmutableBlock) {
				fmt.Println("🔒 Imported calendar blocks cannot be edited")
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("➕ Added sub-task \"%s\" to \"%s\"\n", args[1], block.Title)
	}),
}

var subtaskCheckCmd = &cobra.Command{
	Use:   "check <block-id> <subtask-id>",
	Short: "Toggle a sub-task done or not done",
	Args:  cobra.ExactArgs(2),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		block, err := findBlock(st, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		subs := block.SubTasks
		found := -1
		for i := range subs {
			if subs[i].ID == args[1] || (len(args[1]) >= 4 && len(subs[i].ID) >= len(args[1]) && subs[i].ID[:len(args[1])] == args[1]) {
				if found >= 0 {
					fmt.Printf("Error: sub-task id %q is ambiguous\n", args[1])
					return
				}
				found = i
			}
		}
		if found < 0 {
			fmt.Printf("Error: no sub-task %q on \"%s\"\n", args[1], block.Title)
			return
		}
		subs[found].Completed = !subs[found].Completed
		if _, err := st.Update(block.ID, models.Patch{SubTasks: subs}); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		state := "done"
		if !subs[found].Completed {
			state = "not done"
		}
		fmt.Printf("☑️  Marked \"%s\" %s\n", subs[found].Title, state)
	}),
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().String("start", "", "New start time (HH:MM)")
	editCmd.Flags().String("end", "", "New end time (HH:MM)")
	editCmd.Flags().String("category", "", "New category (work, study, personal, health, other)")
	editCmd.Flags().String("date", "", "New date (YYYY-MM-DD)")

	subtaskCmd.AddCommand(subtaskAddCmd)
	subtaskCmd.AddCommand(subtaskCheckCmd)
}
