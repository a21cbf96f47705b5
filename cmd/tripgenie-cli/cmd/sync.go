package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"tripgenie/internal/application/commands"
)

var forceSync bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push queued changes and pull the latest trips",
	Long: `Push every queued change, oldest first, then replace the local copy with
the server's trips. Trips created offline that have not been pushed are kept.

A sync within 5 seconds of the previous one is skipped unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSyncCommand(GetApp().Session, forceSync).Execute(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Message)
		for _, r := range result.Result.Rebound {
			fmt.Fprintf(out, "  %s is now %s\n", r.LocalID, r.ServerID)
		}
		if !result.Skipped && !result.Result.Success {
			return fmt.Errorf("sync did not complete")
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		result, err := commands.NewStatusCommand(app.Session, app.Trips).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		st := result.Status
		net := app.Session.Network()
		fmt.Fprintf(out, "Network:   %s (%s)\n", net.Status, net.Type)
		fmt.Fprintf(out, "Status:    %s\n", st.Status)
		if st.LastSyncTime != nil {
			fmt.Fprintf(out, "Last sync: %s (%s)\n", humanize.Time(*st.LastSyncTime), st.LastSyncTime.Format(time.DateTime))
		} else {
			fmt.Fprintln(out, "Last sync: never")
		}
		if st.Error != "" {
			fmt.Fprintf(out, "Error:     %s\n", st.Error)
		}
		fmt.Fprintf(out, "Pending:   %d\n", len(result.Pending))

		stats, err := app.Trips.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Trips:     %d stored in %s\n", stats.TripCount, app.Store.Path())
		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List changes waiting to be pushed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, err := GetApp().Trips.PendingChanges(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), pending)
		}

		out := cmd.OutOrStdout()
		if len(pending) == 0 {
			fmt.Fprintln(out, "Nothing to sync")
			return nil
		}
		for _, m := range pending {
			fmt.Fprintf(out, "%-7s %s  queued %s", m.Kind, m.TripID, humanize.Time(m.EnqueuedAt))
			if m.RetryCount > 0 {
				fmt.Fprintf(out, "  (%d failed %s)", m.RetryCount, english.PluralWord(m.RetryCount, "attempt", ""))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var clearPendingCmd = &cobra.Command{
	Use:   "clear-pending",
	Short: "Drop every queued change without pushing it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewClearPendingCommand(GetApp().Session).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local trips, queued changes and sync history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := commands.NewResetCommand(GetApp().Session).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVarP(&forceSync, "force", "f", false, "ignore the 5 second rate limit")
	pendingCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")

	rootCmd.AddCommand(syncCmd, statusCmd, pendingCmd, clearPendingCmd, resetCmd)
}
