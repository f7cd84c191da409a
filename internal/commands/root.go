package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/lifecycle"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "chrono",
	Short: "A time-blocking planner for the terminal",
	Long: `chrono plans your day in time blocks: schedule activities, run a
timer against each block, and review where your hours actually went.`,
}

// engine is the shared lifecycle engine; commands mutate blocks through it
// and persist the result via the store.
var engine = lifecycle.NewEngine()

// withStore wraps a command function with config loading and store setup.
func withStore(fn func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		cfgPath, err := config.DefaultPath()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("Error: failed to load config: %v\n", err)
			return
		}

		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath, err = store.DefaultPath()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}
		st, err := store.Open(dbPath)
		if err != nil {
			fmt.Printf("Error: failed to open database: %v\n", err)
			return
		}
		defer st.Close()

		fn(st, cfg, cmd, args)
	}
}

// shortID abbreviates an id for display. Imported calendar ids follow the
// feed's UID and can be shorter than a uuid prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// findBlock resolves a full id or a unique id prefix to a block.
func findBlock(st *store.Store, id string) (*models.TimeBlock, error) {
	b, err := st.Get(id)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	blocks, listErr := st.All()
	if listErr != nil {
		return nil, listErr
	}
	var matches []models.TimeBlock
	for _, candidate := range blocks {
		if strings.HasPrefix(candidate.ID, id) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, err
	case 1:
		return st.Get(matches[0].ID)
	default:
		return nil, fmt.Errorf("block id prefix '%s' is ambiguous (%d matches)", id, len(matches))
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chrono %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(subtaskCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(reopenCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
