package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tripgenie/internal/application/commands"
	"tripgenie/internal/domain"
)

// RegisterWriteTools adds all trip-changing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, trips commands.TripService, sync commands.SyncService) {
	s.AddTool(createTool(), createHandler(trips))
	s.AddTool(updateTool(), updateHandler(trips))
	s.AddTool(deleteTool(), deleteHandler(trips))
	s.AddTool(generateTool(), generateHandler(trips))
	s.AddTool(syncTool(), syncHandler(sync))
	s.AddTool(clearPendingTool(), clearPendingHandler(sync))
}

// tripFields are the optional trip parameters shared by create and update
func tripFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("country", mcp.Description("Country of the destination")),
		mcp.WithString("start_date", mcp.Description("First day, YYYY-MM-DD")),
		mcp.WithString("end_date", mcp.Description("Last day, YYYY-MM-DD")),
		mcp.WithNumber("travelers", mcp.Description("Number of travelers")),
		mcp.WithString("traveler_type", mcp.Description("solo, couple, family, friends...")),
		mcp.WithArray("vibes", mcp.Description("Trip vibes, e.g. food, art"), mcp.WithStringItems()),
		mcp.WithString("budget", mcp.Description("Budget level")),
		mcp.WithString("status",
			mcp.Description("Lifecycle status"),
			mcp.Enum("draft", "planned", "active", "completed"),
		),
	}
}

// inputFromRequest builds a TripInput from the arguments actually passed
func inputFromRequest(req mcp.CallToolRequest) domain.TripInput {
	args := req.GetArguments()
	has := func(key string) bool {
		_, ok := args[key]
		return ok
	}

	var in domain.TripInput
	if has("destination") {
		in.Destination = domain.Ptr(req.GetString("destination", ""))
	}
	if has("country") {
		in.Country = domain.Ptr(req.GetString("country", ""))
	}
	if has("start_date") {
		in.StartDate = domain.Ptr(req.GetString("start_date", ""))
	}
	if has("end_date") {
		in.EndDate = domain.Ptr(req.GetString("end_date", ""))
	}
	if has("travelers") {
		in.Travelers = domain.Ptr(req.GetInt("travelers", 0))
	}
	if has("traveler_type") {
		in.TravelerType = domain.Ptr(req.GetString("traveler_type", ""))
	}
	if has("vibes") {
		in.Vibes = req.GetStringSlice("vibes", []string{})
	}
	if has("budget") {
		in.Budget = domain.Ptr(req.GetString("budget", ""))
	}
	if has("status") {
		in.Status = domain.Ptr(domain.TripStatus(req.GetString("status", "")))
	}
	return in
}

// --- create_trip ---

func createTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Create a trip. Offline the trip is saved locally with a local_ ID and pushed on the next sync."),
		mcp.WithString("destination",
			mcp.Description("Where the trip goes"),
			mcp.Required(),
		),
	}
	return mcp.NewTool("create_trip", append(opts, tripFields()...)...)
}

func createHandler(trips commands.TripService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCreateTripCommand(trips, inputFromRequest(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_trip ---

func updateTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Update fields of a trip. Only the fields passed are changed."),
		mcp.WithString("id",
			mcp.Description("Trip ID"),
			mcp.Required(),
		),
		mcp.WithString("destination", mcp.Description("Where the trip goes")),
	}
	return mcp.NewTool("update_trip", append(opts, tripFields()...)...)
}

func updateHandler(trips commands.TripService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdateTripCommand(trips, req.GetString("id", ""), inputFromRequest(req))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_trip ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_trip",
		mcp.WithDescription("Delete a trip by ID."),
		mcp.WithString("id",
			mcp.Description("Trip ID"),
			mcp.Required(),
		),
	)
}

func deleteHandler(trips commands.TripService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteTripCommand(trips, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- generate_itinerary ---

func generateTool() mcp.Tool {
	return mcp.NewTool("generate_itinerary",
		mcp.WithDescription("Ask the server to plan the days of a synced trip. Needs a network connection."),
		mcp.WithString("id",
			mcp.Description("Trip ID"),
			mcp.Required(),
		),
	)
}

func generateHandler(trips commands.TripService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewGenerateItineraryCommand(trips, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message + "\n\n" + formatTrip(result.Trip)), nil
	}
}

// --- sync ---

func syncTool() mcp.Tool {
	return mcp.NewTool("sync",
		mcp.WithDescription("Push queued changes and pull the latest trips."),
		mcp.WithBoolean("force", mcp.Description("Ignore the 5 second rate limit")),
	)
}

func syncHandler(sync commands.SyncService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSyncCommand(sync, req.GetBool("force", false)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if !result.Skipped && !result.Result.Success {
			return mcp.NewToolResultError(result.Message), nil
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- clear_pending ---

func clearPendingTool() mcp.Tool {
	return mcp.NewTool("clear_pending",
		mcp.WithDescription("Drop every queued change without pushing it. Local trips are kept."),
	)
}

func clearPendingHandler(sync commands.SyncService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewClearPendingCommand(sync).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
