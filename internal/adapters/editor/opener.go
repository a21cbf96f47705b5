package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"tripgenie/internal/ports"
)

var (
	_ ports.EditorOpener = (*Opener)(nil)
	_ ports.TripEditor   = (*Opener)(nil)
)

// Opener launches the user's editor on a file
type Opener struct {
	getenv func(string) string
}

// NewOpener creates an opener that reads $VISUAL and $EDITOR
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv}
}

// Open runs the editor on path and waits for it to exit
func (o *Opener) Open(ctx context.Context, path string) error {
	cmd, err := o.Command(ctx, path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}

// Command returns the editor process for path, attached to the terminal.
// $VISUAL and $EDITOR may carry arguments, e.g. "code --wait".
func (o *Opener) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	argv := o.editor()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (o *Opener) editor() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if argv := strings.Fields(o.getenv(env)); len(argv) > 0 {
			return argv
		}
	}

	for _, name := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(name); err == nil {
			return []string{path}
		}
	}
	return nil
}
