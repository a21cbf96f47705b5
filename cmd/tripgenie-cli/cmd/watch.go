package cmd

import (
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tripgenie/internal/application"
	"tripgenie/internal/application/commands"
	"tripgenie/internal/config"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stay running and sync whenever the network comes back",
	Long: `Stay running in the foreground, follow connectivity and sync queued
changes as soon as the machine is back online.

The config file is watched; changing sync.auto_sync takes effect without a
restart. With --interval a sync also runs periodically.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app := GetApp()
		out := cmd.OutOrStdout()

		app.Loader.OnChange(func(cfg *config.Config) {
			app.Session.SetAutoSync(cfg.Sync.AutoSync)
			fmt.Fprintf(out, "config reloaded, auto-sync %t\n", cfg.Sync.AutoSync)
		})
		if err := app.Loader.Watch(); err != nil {
			return err
		}

		var (
			mu   sync.Mutex
			last application.SessionStatus
		)
		unsubscribe := app.Session.Subscribe(func(st application.SessionStatus) {
			mu.Lock()
			defer mu.Unlock()
			if st.Status == last.Status && st.PendingCount == last.PendingCount && st.Online == last.Online {
				return
			}
			last = st
			fmt.Fprintf(out, "%s  %s  online=%t pending=%d %s\n",
				time.Now().Format(time.TimeOnly), st.Status, st.Online, st.PendingCount, st.Error)
		})
		defer unsubscribe()

		var tick <-chan time.Time
		if watchInterval > 0 {
			ticker := time.NewTicker(watchInterval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				fmt.Fprintln(out, "stopped")
				return nil
			case err := <-app.Loader.Errors():
				fmt.Fprintf(cmd.ErrOrStderr(), "config reload failed: %v\n", err)
			case <-tick:
				result, err := commands.NewSyncCommand(app.Session, false).Execute(ctx)
				if err != nil {
					return err
				}
				if !result.Skipped {
					fmt.Fprintln(out, result.Message)
				}
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "also sync on this interval (0 disables)")
	rootCmd.AddCommand(watchCmd)
}
