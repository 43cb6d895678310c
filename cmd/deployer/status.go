package deployer

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cowlnet/deployer"
	"github.com/cowlnet/deployer/state"
	"github.com/cowlnet/deployer/types"
)

func buildStatusCmd(a *app) *cobra.Command {
	var (
		fromConfig bool
		statusVia  string
	)

	cmd := &cobra.Command{
		Use:   "status [DEPLOY_HASH]",
		Short: "Poll a deploy until it succeeds, fails or the attempt budget is spent",
		Long: `Polls with a fresh attempt budget. With --from-config the deploy recorded in the state file
is polled and its outcome written back.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if fromConfig == (len(args) == 1) {
				return deployer.NewConfigurationError("", "give either a deploy hash or --from-config", nil)
			}

			var (
				st   *state.State
				hash types.DeployHash
				err  error
			)
			if fromConfig {
				st, err = a.requireState()
				if err != nil {
					return err
				}
				if st.DeployHash.IsZero() {
					return deployer.NewConfigurationError(a.settings.StatePath, "no deploy recorded", nil)
				}
				hash = st.DeployHash
			} else {
				hash, err = types.ParseDeployHash(args[0])
				if err != nil {
					return deployer.NewConfigurationError("", "invalid deploy hash argument", err)
				}
				if loaded, lerr := state.Load(a.settings.StatePath); lerr == nil {
					st = loaded
				}
			}

			target, err := a.resolveTarget(st)
			if err != nil {
				return err
			}
			querier, closeQuerier, err := a.statusQuerier(ctx, statusVia, target.NodeAddress)
			if err != nil {
				return err
			}
			defer closeQuerier()

			poller, err := a.newPoller(querier)
			if err != nil {
				return err
			}

			conf, pollErr := poller.Poll(ctx, hash)
			if fromConfig && conf != nil && conf.Outcome.IsTerminal() {
				st.RecordOutcome(conf.Outcome)
				if err := st.Save(a.settings.StatePath); err != nil {
					pollErr = errors.Join(pollErr, err)
				}
			}
			if conf != nil {
				if err := writeJSON(cmd.OutOrStdout(), viewConfirmation(conf)); err != nil {
					return errors.Join(pollErr, err)
				}
			}

			return pollErr
		},
	}

	cmd.Flags().BoolVar(&fromConfig, "from-config", false, "Poll the deploy recorded in the state file")
	cmd.Flags().StringVar(&statusVia, "status-via", statusViaRPC, "Status source: rpc (node JSON-RPC) or client (casper-client get-deploy)")

	return cmd
}
