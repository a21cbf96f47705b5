package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tripgenie/internal/application"
	"tripgenie/internal/bootstrap"
	"tripgenie/internal/config"
)

var (
	configPath string
	app        *bootstrap.App
)

var rootCmd = &cobra.Command{
	Use:   "tripgenie-cli",
	Short: "Offline-first trip planner",
	Long: `tripgenie-cli manages trips stored on this machine and keeps them in
sync with the TripGenie service.

Changes made without a network connection are saved locally and queued;
they are pushed the next time a sync runs while online.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return openApp(cmd.Context(), cmd == watchCmd)
	},
}

// openApp wires the core. One-shot commands never sync on their own;
// watch follows the configured triggers.
func openApp(ctx context.Context, background bool) error {
	opts := bootstrap.Options{
		ConfigPath:     configPath,
		DefaultLogFile: config.LogPath("tripgenie-cli"),
	}
	if !background {
		opts.Session = &application.SessionOptions{}
	}

	var err error
	app, err = bootstrap.Open(opts)
	if err != nil {
		return err
	}
	return app.Start(ctx)
}

// Execute runs the root command
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if app != nil {
		app.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigPath(), "path to the config file")
}

// GetApp returns the wired application
func GetApp() *bootstrap.App {
	return app
}
