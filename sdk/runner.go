package sdk

import "context"

// RunResult holds the captured output of a finished external command.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs an external command with a discrete argument list. Implementations must never pass
// the arguments through a shell.
//
// A command that starts but exits non-zero returns its RunResult together with a
// *sdkerrors.ExitError.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (RunResult, error)
}
