package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tripgenie/internal/adapters/editor"
	"tripgenie/internal/application/commands"
	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
)

var jsonOutput bool

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List, show and change trips",
	Long: `Work with trips.

Online, changes go straight to the server. Offline, or for trips that have
not been synced yet, they are saved locally and queued.

Examples:
  tripgenie-cli trips list
  tripgenie-cli trips create Lisbon --start 2026-06-01 --end 2026-06-05 --travelers 2
  tripgenie-cli trips update local_3f2a --budget luxury
  tripgenie-cli trips generate 9c1d`,
}

var tripsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		trips, err := commands.NewListTripsCommand(GetApp().Trips).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), trips)
		}

		out := cmd.OutOrStdout()
		if len(trips) == 0 {
			fmt.Fprintln(out, "No trips")
			return nil
		}
		for _, t := range trips {
			printTripLine(out, t)
		}
		return nil
	},
}

var tripsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a trip and its itinerary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := commands.NewShowTripCommand(GetApp().Trips, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), trip)
		}
		printTrip(cmd.OutOrStdout(), trip)
		return nil
	},
}

var tripsCreateCmd = &cobra.Command{
	Use:   "create <destination>",
	Short: "Create a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := inputFromFlags(cmd)
		if err != nil {
			return err
		}
		in.Destination = domain.Ptr(args[0])

		result, err := commands.NewCreateTripCommand(GetApp().Trips, in).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var tripsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a trip",
	Long: `Change fields of a trip. Only the flags passed are changed.

Examples:
  tripgenie-cli trips update 9c1d --destination Porto
  tripgenie-cli trips update local_3f2a --vibe food --vibe wine`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := inputFromFlags(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("destination") {
			v, _ := cmd.Flags().GetString("destination")
			in.Destination = domain.Ptr(v)
		}

		result, err := commands.NewUpdateTripCommand(GetApp().Trips, args[0], in).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var tripEditor ports.TripEditor = editor.NewOpener()

var tripsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a trip in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		trips := GetApp().Trips

		trip, err := commands.NewShowTripCommand(trips, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		in, err := tripEditor.EditTrip(ctx, trip)
		if err != nil {
			return err
		}
		if in.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes")
			return nil
		}

		result, err := commands.NewUpdateTripCommand(trips, trip.ID, in).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var tripsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteTripCommand(GetApp().Trips, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var tripsGenerateCmd = &cobra.Command{
	Use:   "generate <id>",
	Short: "Plan the itinerary of a synced trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewGenerateItineraryCommand(GetApp().Trips, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func addTripFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("country", "", "country of the destination")
	f.String("start", "", "first day (YYYY-MM-DD)")
	f.String("end", "", "last day (YYYY-MM-DD)")
	f.Int("travelers", 1, "number of travelers")
	f.String("traveler-type", "", "solo, couple, family, friends...")
	f.StringSlice("vibe", nil, "trip vibe, repeatable")
	f.String("budget", "", "budget level")
	f.String("status", "", "draft, planned, active or completed")
}

// inputFromFlags sets only the fields whose flags were passed
func inputFromFlags(cmd *cobra.Command) (domain.TripInput, error) {
	f := cmd.Flags()
	var in domain.TripInput

	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}

	in.Country = str("country")
	in.StartDate = str("start")
	in.EndDate = str("end")
	in.TravelerType = str("traveler-type")
	in.Budget = str("budget")
	if s := str("status"); s != nil {
		in.Status = domain.Ptr(domain.TripStatus(*s))
	}
	if f.Changed("travelers") {
		n, err := f.GetInt("travelers")
		if err != nil {
			return domain.TripInput{}, err
		}
		in.Travelers = &n
	}
	if f.Changed("vibe") {
		vibes, err := f.GetStringSlice("vibe")
		if err != nil {
			return domain.TripInput{}, err
		}
		in.Vibes = vibes
	}
	return in, nil
}

func printTripLine(w io.Writer, t domain.Trip) {
	suffix := ""
	if t.IsLocal() {
		suffix = "  (not synced)"
	}
	fmt.Fprintf(w, "%s  %-20s %s → %s  %s%s\n", t.ID, t.Destination, t.StartDate, t.EndDate, t.Status, suffix)
}

func printTrip(w io.Writer, t domain.Trip) {
	printTripLine(w, t)
	if t.Country != "" {
		fmt.Fprintf(w, "  country:   %s\n", t.Country)
	}
	fmt.Fprintf(w, "  travelers: %d %s\n", t.Travelers, t.TravelerType)
	if len(t.Vibes) > 0 {
		fmt.Fprintf(w, "  vibes:     %s\n", strings.Join(t.Vibes, ", "))
	}
	if t.Budget != "" {
		fmt.Fprintf(w, "  budget:    %s\n", t.Budget)
	}
	for _, d := range t.Days {
		fmt.Fprintf(w, "\n  Day %d  %s  %s\n", d.DayNumber, d.Date, d.Theme)
		for _, a := range d.Activities {
			fmt.Fprintf(w, "    %s  %s\n", a.Time, a.Title)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(tripsCmd)
	tripsCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON")

	tripsCmd.AddCommand(tripsListCmd, tripsShowCmd, tripsCreateCmd, tripsUpdateCmd,
		tripsEditCmd, tripsDeleteCmd, tripsGenerateCmd)

	addTripFlags(tripsCreateCmd)
	addTripFlags(tripsUpdateCmd)
	tripsUpdateCmd.Flags().String("destination", "", "new destination")
}
