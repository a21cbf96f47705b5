package ports

import (
	"context"
	"os/exec"

	"tripgenie/internal/domain"
)

// EditorOpener opens files in the user's external editor
type EditorOpener interface {
	// Open runs the editor on path and waits for it to exit
	Open(ctx context.Context, path string) error

	// Command returns the editor command for path without running it,
	// for hosts that manage the terminal themselves
	Command(ctx context.Context, path string) (*exec.Cmd, error)
}

// TripEditor lets the user edit a trip as a document and returns the fields
// they changed
type TripEditor interface {
	EditTrip(ctx context.Context, trip domain.Trip) (domain.TripInput, error)
}
