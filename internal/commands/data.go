package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/export"
	"github.com/mcapelli/chrono/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all blocks as JSON",
	Long: `Write the whole planner as a JSON array, to a file or to stdout.

Examples:
  chrono export backup.json
  chrono export > backup.json`,
	Args: cobra.MaximumNArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		blocks, err := st.All()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(args) == 0 {
			if err := export.Export(os.Stdout, blocks); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		f, err := os.Create(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer f.Close()
		if err := export.Export(f, blocks); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📤 Exported %d blocks to %s\n", len(blocks), args[0])
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import blocks from a JSON export",
	Long: `Read a JSON export and add its blocks. The whole file is validated
before anything is written; blocks whose id already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer f.Close()

		added, skipped, err := export.ImportInto(st, f)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📥 Imported %d blocks", added)
		if skipped > 0 {
			fmt.Printf(", skipped %d already present", skipped)
		}
		fmt.Println()
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all blocks",
	Long: `Delete every block from the planner. Imported calendar blocks are
kept unless --external is passed. Requires --yes.`,
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This deletes every block. Re-run with --yes to confirm.")
			return
		}
		includeExternal, _ := cmd.Flags().GetBool("external")
		if err := st.RemoveAll(includeExternal); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if includeExternal {
			fmt.Println("🗑️  Removed all blocks, calendar imports included")
		} else {
			fmt.Println("🗑️  Removed all blocks, calendar imports kept")
		}
	}),
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the wipe")
	resetCmd.Flags().Bool("external", false, "Also remove imported calendar blocks")
}
