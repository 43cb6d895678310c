package deployer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cowlnet/deployer"
	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/sdk/casper"
	"github.com/cowlnet/deployer/state"
	"github.com/cowlnet/deployer/types"
)

const (
	statusViaRPC    = "rpc"
	statusViaClient = "client"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func (a *app) newClient(nodeAddress string) *casper.Client {
	return casper.NewClient(casper.NewExecRunner(), nodeAddress, casper.WithBinary(a.settings.ClientBinary))
}

// loadState reads the deployment state, or returns a fresh one built from the settings when
// there is none yet.
func (a *app) loadState() (*state.State, error) {
	st, err := state.Load(a.settings.StatePath)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, state.ErrNotFound):
		return state.New(a.settings.TokenConfig(), state.DefaultRoles()), nil
	default:
		return nil, deployer.NewConfigurationError(a.settings.StatePath, "cannot load state", err)
	}
}

// requireState reads the deployment state and fails when there is none.
func (a *app) requireState() (*state.State, error) {
	st, err := state.Load(a.settings.StatePath)
	if err != nil {
		return nil, deployer.NewConfigurationError(a.settings.StatePath, "cannot load state", err)
	}

	return st, nil
}

// resolveTarget combines the settings with the persisted network, settings taking precedence.
func (a *app) resolveTarget(st *state.State) (types.Target, error) {
	target := a.settings.Target()
	if st != nil {
		if target.NodeAddress == "" {
			target.NodeAddress = st.Config.NodeAddress
		}
		if target.ChainName == "" {
			target.ChainName = st.Config.ChainName
		}
	}
	if target.NodeAddress == "" {
		return target, deployer.NewConfigurationError("", "node address is required (--node-address or RPC_ADDRESS)", nil)
	}

	return target, nil
}

// statusQuerier returns the status source selected by via. The returned func releases it.
func (a *app) statusQuerier(ctx context.Context, via, nodeAddress string) (sdk.StatusQuerier, func(), error) {
	switch via {
	case statusViaRPC:
		client, err := casper.DialRPC(ctx, nodeAddress)
		if err != nil {
			return nil, nil, deployer.NewConfigurationError("", "cannot reach node", err)
		}

		return client, client.Close, nil
	case statusViaClient:
		return a.newClient(nodeAddress), func() {}, nil
	default:
		return nil, nil, deployer.NewConfigurationError("", fmt.Sprintf("unknown status source %q, want %q or %q", via, statusViaRPC, statusViaClient), nil)
	}
}

func (a *app) newPoller(querier sdk.StatusQuerier) (*deployer.Poller, error) {
	return deployer.NewPoller(querier,
		deployer.WithMaxAttempts(a.settings.MaxAttempts),
		deployer.WithInterval(a.settings.PollInterval),
	)
}

// confirmationView is the printed form of a Confirmation.
type confirmationView struct {
	Hash         types.DeployHash    `json:"deploy_hash"`
	Outcome      types.DeployOutcome `json:"outcome"`
	Attempts     int                 `json:"attempts"`
	Elapsed      string              `json:"elapsed"`
	BlockHash    string              `json:"block_hash,omitempty"`
	Cost         string              `json:"cost,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

func viewConfirmation(conf *deployer.Confirmation) confirmationView {
	return confirmationView{
		Hash:         conf.Hash,
		Outcome:      conf.Outcome,
		Attempts:     conf.Attempts,
		Elapsed:      conf.Elapsed.String(),
		BlockHash:    conf.Status.BlockHash,
		Cost:         conf.Status.Cost,
		ErrorMessage: conf.Status.ErrorMessage,
	}
}
