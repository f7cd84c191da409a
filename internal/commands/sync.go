package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/calendar"
	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/store"
	"github.com/mcapelli/chrono/internal/timeutil"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import calendar events for a day",
	Long: `Pull the events of one day from an external calendar and import them
as read-only blocks. Re-running a sync never duplicates events.

Examples:
  chrono sync --ics https://example.com/cal.ics
  chrono sync --token $GOOGLE_TOKEN --date 2026-03-09`,
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = timeutil.FormatDate(time.Now())
		}
		if _, err := timeutil.ParseDate(date); err != nil {
			fmt.Printf("Error: invalid date %q, expected YYYY-MM-DD\n", date)
			return
		}

		icsURL, _ := cmd.Flags().GetString("ics")
		token, _ := cmd.Flags().GetString("token")
		if icsURL == "" && token == "" {
			icsURL = cfg.ICSURL
		}

		var imp calendar.Importer
		switch {
		case token != "":
			imp = calendar.NewGoogleImporter(token)
		case icsURL != "":
			imp = calendar.NewICSImporter(icsURL)
		default:
			fmt.Println("No calendar configured. Pass --ics or --token, or set ics_url in the config.")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		added, err := calendar.SyncDay(ctx, st, imp, date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if added == 0 {
			fmt.Printf("🔄 Nothing new for %s\n", date)
			return
		}
		fmt.Printf("🔄 Imported %d calendar events for %s\n", added, date)
	}),
}

func init() {
	syncCmd.Flags().String("ics", "", "ICS feed URL")
	syncCmd.Flags().String("token", "", "Google Calendar OAuth token")
	syncCmd.Flags().String("date", "", "Day to sync (YYYY-MM-DD, default today)")
}
