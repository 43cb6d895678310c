package casper_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowlnet/deployer/sdk/casper"
	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
)

// helperFailArg makes the helper process exit with status 3.
const helperFailArg = "--helper-fail"

// TestHelperProcess is not a real test. It is the child process started by the runner tests: it
// echoes its arguments as JSON on stdout, and exits with status 3 when given helperFailArg.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}

	if slices.Contains(args, helperFailArg) {
		fmt.Fprintln(os.Stderr, "helper failed")
		os.Exit(3)
	}
	out, _ := json.Marshal(args)
	fmt.Fprintln(os.Stdout, string(out))
	os.Exit(0)
}

// The child inherits the environment, so these tests cannot run in parallel.
func TestExecRunner_PassesArgumentsVerbatim(t *testing.T) {
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")

	give := []string{
		"--session-arg", `name:string='My "Quoted" Token'`,
		"value with spaces; rm -rf /",
		"$(whoami)",
	}

	args := append([]string{"-test.run=TestHelperProcess", "--"}, give...)
	res, err := casper.NewExecRunner().Run(context.Background(), os.Args[0], args...)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)

	var got []string
	require.NoError(t, json.Unmarshal(res.Stdout, &got))
	assert.Equal(t, give, got)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")

	res, err := casper.NewExecRunner().Run(context.Background(), os.Args[0], "-test.run=TestHelperProcess", "--", helperFailArg)
	require.Error(t, err)

	var exitErr *sdkerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, exitErr.Error(), "helper failed")
}

func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	res, err := casper.NewExecRunner().Run(context.Background(), "definitely-not-a-casper-client-binary")
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)

	var exitErr *sdkerrors.ExitError
	assert.NotErrorAs(t, err, &exitErr)
}
