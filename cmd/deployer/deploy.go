package deployer

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cowlnet/deployer"
	"github.com/cowlnet/deployer/internal/settings"
	"github.com/cowlnet/deployer/sdk/casper"
	"github.com/cowlnet/deployer/state"
)

func buildDeployCmd(a *app) *cobra.Command {
	var (
		secretKey string
		clean     bool
		resubmit  bool
		statusVia string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Generate missing key pairs, install the token and wait for the outcome",
		Long: `Resumes from the deployment state file when present: existing key pairs are reused and
only missing ones are generated. Exits 0 when the deploy succeeded, 2 when the network reported a
failure and 3 when it was still pending after the last poll.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s := a.settings

			var persisted *state.State
			if !clean {
				st, err := state.Load(s.StatePath)
				if err != nil && !errors.Is(err, state.ErrNotFound) {
					return deployer.NewConfigurationError(s.StatePath, "cannot load state", err)
				}
				persisted = st
			}
			target, err := a.resolveTarget(persisted)
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

			submitter := deployer.NewSubmitter(casper.NewExecRunner(), deployer.WithClientBinary(s.ClientBinary))
			d := deployer.NewDeployment(a.newClient(target.NodeAddress), submitter, poller)

			result, err := d.Run(ctx, deployer.DeploymentOptions{
				StatePath:   s.StatePath,
				KeysDir:     s.KeysDir,
				Clean:       clean,
				Resubmit:    resubmit,
				Config:      s.TokenConfig(),
				Roles:       state.DefaultRoles(),
				NodeAddress: target.NodeAddress,
				ChainName:   target.ChainName,
				WasmPath:    s.WasmPath,
				SecretKey:   secretKey,
			})
			if result != nil && result.Confirmation != nil {
				if werr := writeJSON(cmd.OutOrStdout(), viewConfirmation(result.Confirmation)); werr != nil {
					return errors.Join(err, werr)
				}
			}

			return err
		},
	}

	cmd.Flags().String("wasm-path", "", "Compiled token installer wasm (or WASM_PATH)")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Sign with this secret key instead of the generated deployer key")
	cmd.Flags().BoolVar(&clean, "clean", false, "Ignore the existing state and start a new deployment")
	cmd.Flags().BoolVar(&resubmit, "resubmit", false, "Send a new deploy even if the state holds one that did not fail")
	cmd.Flags().StringVar(&statusVia, "status-via", statusViaRPC, "Status source: rpc (node JSON-RPC) or client (casper-client get-deploy)")
	cobra.CheckErr(a.bind(cmd.Flags(), map[string]string{settings.KeyWasmPath: "wasm-path"}))

	return cmd
}
