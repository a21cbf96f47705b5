package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tripgenie/internal/application/commands"
	"tripgenie/internal/domain"
)

// RegisterReadTools adds all read-only trip tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, trips commands.TripService, sync commands.SyncService) {
	s.AddTool(listTool(), listHandler(trips))
	s.AddTool(getTool(), getHandler(trips))
	s.AddTool(statusTool(), statusHandler(sync, trips))
}

// --- list_trips ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_trips",
		mcp.WithDescription("List trips. Returns server trips plus trips created offline that have not synced yet; offline it returns the local copy."),
	)
}

func listHandler(trips commands.TripService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := commands.NewListTripsCommand(trips).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(list) == 0 {
			return mcp.NewToolResultText("No trips."), nil
		}

		var sb strings.Builder
		for _, t := range list {
			sb.WriteString(formatTripLine(t))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_trip ---

func getTool() mcp.Tool {
	return mcp.NewTool("get_trip",
		mcp.WithDescription("Show one trip with its itinerary. Local IDs (local_...) keep working after the trip synced."),
		mcp.WithString("id",
			mcp.Description("Trip ID"),
			mcp.Required(),
		),
	)
}

func getHandler(trips commands.TripService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		trip, err := commands.NewShowTripCommand(trips, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatTrip(trip)), nil
	}
}

// --- sync_status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("sync_status",
		mcp.WithDescription("Report connectivity, sync status and the changes waiting to be pushed."),
	)
}

func statusHandler(sync commands.SyncService, trips commands.TripService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStatusCommand(sync, trips).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		st := result.Status
		var sb strings.Builder
		fmt.Fprintf(&sb, "status: %s\n", st.Status)
		fmt.Fprintf(&sb, "online: %t\n", st.Online)
		if st.LastSyncTime != nil {
			fmt.Fprintf(&sb, "last sync: %s\n", st.LastSyncTime.Format("2006-01-02 15:04:05"))
		} else {
			sb.WriteString("last sync: never\n")
		}
		if st.Error != "" {
			fmt.Fprintf(&sb, "error: %s\n", st.Error)
		}
		fmt.Fprintf(&sb, "pending: %d\n", len(result.Pending))
		for _, m := range result.Pending {
			fmt.Fprintf(&sb, "  %s %s (retries %d)\n", m.Kind, m.TripID, m.RetryCount)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatTripLine(t domain.Trip) string {
	line := fmt.Sprintf("%s  %s", t.ID, t.Destination)
	if t.StartDate != "" {
		line += fmt.Sprintf("  %s → %s", t.StartDate, t.EndDate)
	}
	line += fmt.Sprintf("  [%s]", t.Status)
	if t.IsLocal() {
		line += "  (not synced)"
	}
	return line
}

func formatTrip(t domain.Trip) string {
	var sb strings.Builder
	sb.WriteString(formatTripLine(t))
	sb.WriteByte('\n')
	if t.Country != "" {
		fmt.Fprintf(&sb, "country: %s\n", t.Country)
	}
	fmt.Fprintf(&sb, "travelers: %d (%s)\n", t.Travelers, t.TravelerType)
	if len(t.Vibes) > 0 {
		fmt.Fprintf(&sb, "vibes: %s\n", strings.Join(t.Vibes, ", "))
	}
	if t.Budget != "" {
		fmt.Fprintf(&sb, "budget: %s\n", t.Budget)
	}
	for _, d := range t.Days {
		fmt.Fprintf(&sb, "day %d (%s): %s\n", d.DayNumber, d.Date, d.Theme)
		for _, a := range d.Activities {
			fmt.Fprintf(&sb, "  %s  %s\n", a.Time, a.Title)
		}
	}
	return sb.String()
}
