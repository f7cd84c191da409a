package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcapelli/chrono/internal/config"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/notify"
	"github.com/mcapelli/chrono/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reminder daemon",
	Long: `Poll the planner once a minute and print a reminder when a planned
block is about to start. Runs until interrupted.

Reminders only fire once permission is granted:
  chrono watch --request`,
	Run: withStore(func(st *store.Store, cfg *config.Config, cmd *cobra.Command, args []string) {
		path, err := config.DefaultPath()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		perms := &configPermissions{cfg: cfg, path: path}

		if request, _ := cmd.Flags().GetBool("request"); request {
			state, err := perms.Request()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("🔔 Notification permission: %s\n", state)
		}

		if perms.Permission() != notify.PermissionGranted {
			fmt.Printf("Notifications are %s. Grant them with: chrono watch --request\n", perms.Permission())
			return
		}

		scheduler := notify.NewScheduler(st, consoleNotifier{}, perms)
		if err := scheduler.Start(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("👀 Watching for upcoming blocks. Ctrl-C to stop.")

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGTERM)
		<-done

		scheduler.Stop()
		fmt.Println("\nStopped.")
	}),
}

// consoleNotifier prints reminders to the terminal.
type consoleNotifier struct{}

func (consoleNotifier) BlockStarting(b models.TimeBlock, minutesBefore int) {
	fmt.Printf("🔔 \"%s\" starts in %d minutes (%s)\n", b.Title, minutesBefore, b.StartTime)
}

func (consoleNotifier) BlockStarted(b models.TimeBlock) {
	fmt.Printf("⏰ \"%s\" starts now\n", b.Title)
}

// configPermissions backs the permission state with the config file.
// Request grants and persists; there is no interactive prompt in a CLI.
type configPermissions struct {
	cfg  *config.Config
	path string
}

func (p *configPermissions) Permission() notify.Permission {
	return notify.Permission(p.cfg.Notifications)
}

func (p *configPermissions) Request() (notify.Permission, error) {
	if p.cfg.Notifications == string(notify.PermissionDenied) {
		return notify.PermissionDenied, nil
	}
	p.cfg.Notifications = string(notify.PermissionGranted)
	if err := config.Save(p.path, p.cfg); err != nil {
		return notify.PermissionGranted, err
	}
	return notify.PermissionGranted, nil
}

func init() {
	watchCmd.Flags().Bool("request", false, "Request notification permission and persist the grant")
}
