package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tripgenie/internal/adapters/tui"
	"tripgenie/internal/bootstrap"
	"tripgenie/internal/config"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "path to the config file")
	flag.Parse()

	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// The terminal belongs to the UI, so logs go to a file
	app, err := bootstrap.Open(bootstrap.Options{
		ConfigPath:     configPath,
		DefaultLogFile: config.LogPath("tripgenie"),
	})
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Start(context.Background()); err != nil {
		return err
	}

	ui := tui.NewApp(app.Trips, app.Session)
	defer ui.Close()

	p := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
