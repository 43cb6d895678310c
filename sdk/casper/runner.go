package casper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/cowlnet/deployer/sdk"
	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
)

var _ sdk.Runner = (*ExecRunner)(nil)

// ExecRunner runs commands directly with os/exec. Arguments are handed to the process as-is, no
// shell is involved, so values containing spaces or quotes reach the client intact.
type ExecRunner struct{}

// NewExecRunner returns a runner executing in the current directory with the inherited environment.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements sdk.Runner.
func (*ExecRunner) Run(ctx context.Context, name string, args ...string) (sdk.RunResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := sdk.RunResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, sdkerrors.NewExitError(name, result.ExitCode, result.Stderr)
	default:
		result.ExitCode = -1
		return result, fmt.Errorf("failed to run %s: %w", name, err)
	}
}
