package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"
	"strings"
)

// DeployOutcome is the confirmation state of a submitted deploy.
type DeployOutcome int

const (
	// DeployPending means no terminal execution result has been observed yet.
	DeployPending DeployOutcome = iota
	// DeploySucceeded means the deploy executed successfully.
	DeploySucceeded
	// DeployFailed means the network reported a failed execution.
	DeployFailed
	// DeployTimedOut means polling gave up before a terminal result was observed.
	DeployTimedOut
)

var deployOutcomeNames = map[DeployOutcome]string{
	DeployPending:   "pending",
	DeploySucceeded: "succeeded",
	DeployFailed:    "failed",
	DeployTimedOut:  "timed_out",
}

func (o DeployOutcome) String() string {
	if name, ok := deployOutcomeNames[o]; ok {
		return name
	}

	return fmt.Sprintf("unknown(%d)", int(o))
}

// IsTerminal reports whether the outcome can no longer change for the same polling run.
func (o DeployOutcome) IsTerminal() bool {
	return o != DeployPending
}

// MarshalText implements encoding.TextMarshaler.
func (o DeployOutcome) MarshalText() ([]byte, error) {
	name, ok := deployOutcomeNames[o]
	if !ok {
		return nil, fmt.Errorf("invalid deploy outcome: %d", int(o))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *DeployOutcome) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for outcome, name := range deployOutcomeNames {
		if name == s {
			*o = outcome
			return nil
		}
	}

	return fmt.Errorf("invalid deploy outcome: %q", s)
}
