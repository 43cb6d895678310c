package deployer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/types"
)

// SubmissionError is returned when the node client did not accept a deploy.
type SubmissionError struct {
	Reason   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *SubmissionError) Error() string {
	msg := "deploy submission failed: " + e.Reason
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError wraps err, lifting the exit status and stderr of a failed client run.
func NewSubmissionError(reason string, err error) *SubmissionError {
	subErr := &SubmissionError{Reason: reason, Err: err}

	var exitErr *sdkerrors.ExitError
	if errors.As(err, &exitErr) {
		subErr.ExitCode = exitErr.ExitCode
		subErr.Stderr = exitErr.Stderr
	}

	return subErr
}

// ConfirmationTimeoutError is returned when a deploy is still pending after the last poll.
// The deploy may still execute later; it must not be resubmitted blindly.
type ConfirmationTimeoutError struct {
	Hash     types.DeployHash
	Attempts int
	Elapsed  time.Duration
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("deploy %s not confirmed after %d attempts (%s)", e.Hash, e.Attempts, e.Elapsed)
}

func NewConfirmationTimeoutError(hash types.DeployHash, attempts int, elapsed time.Duration) *ConfirmationTimeoutError {
	return &ConfirmationTimeoutError{Hash: hash, Attempts: attempts, Elapsed: elapsed}
}

// ConfirmationFailureError is returned when the network executed a deploy and reported a failure.
type ConfirmationFailureError struct {
	Hash         types.DeployHash
	ErrorMessage string
}

func (e *ConfirmationFailureError) Error() string {
	if e.ErrorMessage == "" {
		return fmt.Sprintf("deploy %s failed", e.Hash)
	}

	return fmt.Sprintf("deploy %s failed: %s", e.Hash, e.ErrorMessage)
}

func NewConfirmationFailureError(hash types.DeployHash, errorMessage string) *ConfirmationFailureError {
	return &ConfirmationFailureError{Hash: hash, ErrorMessage: errorMessage}
}

// ConfigurationError is returned for missing or invalid settings, state files and key files.
type ConfigurationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "invalid configuration"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func NewConfigurationError(path, reason string, err error) *ConfigurationError {
	return &ConfigurationError{Path: path, Reason: reason, Err: err}
}
