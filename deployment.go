package deployer

import (
	"context"
	"errors"
	"fmt"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/state"
	"github.com/cowlnet/deployer/types"
)

// DeploymentOptions configures a Deployment run.
type DeploymentOptions struct {
	// StatePath is the deployment document to resume from and write to.
	StatePath string
	// KeysDir receives generated key pairs, one directory per address.
	KeysDir string
	// Clean ignores any existing state and starts over, replacing the key pairs in KeysDir.
	Clean bool
	// Resubmit allows sending a new deploy when the state already holds one that did not fail.
	Resubmit bool

	// Config and Roles seed a fresh state.
	Config state.TokenConfig
	Roles  state.Roles

	// NodeAddress, ChainName and WasmPath override the persisted values when set.
	NodeAddress string
	ChainName   string
	WasmPath    string
	// SecretKey signs the deploy instead of the deployer's generated key when set.
	SecretKey string
}

// DeploymentResult is returned by Deployment.Run, also alongside most errors.
type DeploymentResult struct {
	State        *state.State
	Confirmation *Confirmation
}

// Deployment drives a token install end to end: key pairs, submission and confirmation. The
// state is saved after every step that changed it.
type Deployment struct {
	keys      sdk.KeyGenerator
	submitter *Submitter
	poller    *Poller
}

func NewDeployment(keys sdk.KeyGenerator, submitter *Submitter, poller *Poller) *Deployment {
	return &Deployment{keys: keys, submitter: submitter, poller: poller}
}

// Run performs the deployment described by opts.
func (d *Deployment) Run(ctx context.Context, opts DeploymentOptions) (*DeploymentResult, error) {
	logger := sdk.LoggerFrom(ctx)

	st, err := d.loadState(opts)
	if err != nil {
		return nil, err
	}
	result := &DeploymentResult{State: st}

	if !st.DeployHash.IsZero() && st.Outcome != types.DeployFailed && !opts.Resubmit {
		return result, NewConfigurationError(opts.StatePath,
			fmt.Sprintf("state already holds deploy %s (%s); check it with status or resubmit explicitly", st.DeployHash, st.Outcome), nil)
	}

	if err := d.ensureKeys(ctx, st, opts); err != nil {
		return result, err
	}

	spec, err := st.DeploySpec(opts.SecretKey)
	if err != nil {
		return result, NewConfigurationError(opts.StatePath, "cannot build deploy", err)
	}

	hash, err := d.submitter.Submit(ctx, spec, st.Target())
	if err != nil {
		return result, err
	}
	st.RecordSubmission(hash)
	if err := st.Save(opts.StatePath); err != nil {
		return result, fmt.Errorf("deploy %s submitted but state not saved: %w", hash, err)
	}

	logger.Infof("Waiting for deploy %s", hash)
	conf, pollErr := d.poller.Poll(ctx, hash)
	result.Confirmation = conf
	if conf != nil && conf.Outcome.IsTerminal() {
		st.RecordOutcome(conf.Outcome)
		if err := st.Save(opts.StatePath); err != nil {
			return result, errors.Join(pollErr, fmt.Errorf("failed to save outcome of deploy %s: %w", hash, err))
		}
	}

	return result, pollErr
}

func (d *Deployment) loadState(opts DeploymentOptions) (*state.State, error) {
	var st *state.State
	if !opts.Clean {
		loaded, err := state.Load(opts.StatePath)
		switch {
		case err == nil:
			st = loaded
		case errors.Is(err, state.ErrNotFound):
		default:
			return nil, NewConfigurationError(opts.StatePath, "cannot load state", err)
		}
	}
	if st == nil {
		st = state.New(opts.Config, opts.Roles)
	}

	st.WithTarget(opts.NodeAddress, opts.ChainName, opts.WasmPath)
	if err := st.Validate(); err != nil {
		return nil, NewConfigurationError(opts.StatePath, "invalid deployment settings", err)
	}

	return st, nil
}

func (d *Deployment) ensureKeys(ctx context.Context, st *state.State, opts DeploymentOptions) error {
	missing := st.MissingAddresses()
	if len(missing) == 0 {
		return nil
	}

	// A clean run starts over, so pairs left in KeysDir by an earlier run are replaced.
	logger := sdk.LoggerFrom(ctx)
	for _, name := range missing {
		kp, err := d.keys.GenerateKeyPair(ctx, opts.KeysDir, name, opts.Clean)
		if err != nil {
			return fmt.Errorf("failed to generate key pair %s: %w", name, err)
		}
		logger.Infof("Created key pair for %s: %s", name, kp.AccountHash)
		st.SetAddress(name, kp)
	}

	if err := st.Save(opts.StatePath); err != nil {
		return fmt.Errorf("failed to save generated addresses: %w", err)
	}

	return nil
}
