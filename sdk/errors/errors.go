package sdkerrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is returned when a node or client response cannot be parsed.
var ErrMalformedResponse = errors.New("malformed response")

// ExitError is returned by a Runner when the command exited with a non-zero status.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

func NewExitError(command string, exitCode int, stderr []byte) *ExitError {
	return &ExitError{Command: command, ExitCode: exitCode, Stderr: string(stderr)}
}

// RPCError is returned when the node answers a JSON-RPC call with an error object.
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s failed with code %d: %s", e.Method, e.Code, e.Message)
}

// ErrDeployHashNotFound is returned when a client response carries no deploy hash marker.
var ErrDeployHashNotFound = errors.New("deploy hash not found in client output")
