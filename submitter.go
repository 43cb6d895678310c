// Package deployer submits CEP-18 token install deploys through casper-client and follows them
// until the network reports an outcome.
package deployer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/sdk/casper"
	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/types"
)

// Submitter sends token install deploys through the node client.
type Submitter struct {
	runner sdk.Runner
	binary string
}

type SubmitterOption func(*Submitter)

// WithClientBinary overrides the node client executable.
func WithClientBinary(binary string) SubmitterOption {
	return func(s *Submitter) {
		if binary != "" {
			s.binary = binary
		}
	}
}

func NewSubmitter(runner sdk.Runner, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		runner: runner,
		binary: casper.DefaultBinary,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// BuildPutDeployArgs returns the put-deploy argument list for spec. Every value is its own
// argument; nothing is quoted or joined.
func BuildPutDeployArgs(spec types.DeploySpec, target types.Target) ([]string, error) {
	if spec.IsZero() {
		return nil, NewConfigurationError("", "empty deploy spec", nil)
	}
	if err := validator.New().Struct(target); err != nil {
		return nil, NewConfigurationError("", "invalid target", err)
	}

	p := spec.Params()
	if p.ChainName != target.ChainName {
		return nil, NewConfigurationError("", fmt.Sprintf("deploy spec chain %q does not match target chain %q", p.ChainName, target.ChainName), nil)
	}

	sessionArgs, err := json.Marshal(spec.SessionArgs())
	if err != nil {
		return nil, fmt.Errorf("failed to encode session args: %w", err)
	}

	args := []string{
		"put-deploy",
		"--node-address", target.NodeAddress,
		"--chain-name", target.ChainName,
		"--payment-amount", p.PaymentAmount,
		"--session-path", p.SessionPath,
		"--secret-key", p.SecretKeyPath,
	}
	if p.TTL.Duration > 0 {
		args = append(args, "--ttl", fmt.Sprintf("%dms", p.TTL.Milliseconds()))
	}
	args = append(args, "--session-args-json", string(sessionArgs))

	return args, nil
}

// Submit sends spec to target and returns the deploy hash assigned by the network.
//
// A returned hash is never empty. The deploy is not resubmitted on failure.
func (s *Submitter) Submit(ctx context.Context, spec types.DeploySpec, target types.Target) (types.DeployHash, error) {
	args, err := BuildPutDeployArgs(spec, target)
	if err != nil {
		return "", err
	}

	p := spec.Params()
	if err := checkReadable(p.SecretKeyPath); err != nil {
		return "", NewConfigurationError(p.SecretKeyPath, "secret key is not readable", err)
	}
	if err := checkReadable(p.SessionPath); err != nil {
		return "", NewConfigurationError(p.SessionPath, "session wasm is not readable", err)
	}

	logger := sdk.LoggerFrom(ctx)
	logger.Infof("Submitting %s (%s) install deploy to %s on %s", p.Name, p.Symbol, target.NodeAddress, target.ChainName)

	res, err := s.runner.Run(ctx, s.binary, args...)
	if err != nil {
		var exitErr *sdkerrors.ExitError
		if errors.As(err, &exitErr) {
			return "", NewSubmissionError("put-deploy rejected", err)
		}

		return "", NewSubmissionError("failed to run "+s.binary, err)
	}

	hash, err := casper.ParseDeployHashOutput(res.Stdout)
	if err != nil {
		return "", NewSubmissionError("no deploy hash in client output", err)
	}
	logger.Infof("Deploy submitted with hash %s", hash)

	return hash, nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	return f.Close()
}
