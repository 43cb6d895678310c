package deployer

import (
	"github.com/spf13/cobra"

	"github.com/cowlnet/deployer"
	"github.com/cowlnet/deployer/sdk/casper"
)

func buildBalancesCmd(a *app) *cobra.Command {
	var contractHash string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print the token balance of every deployment address",
		Long: `Reads the token contract's balances dictionary for each address in the state file. Accounts
without an entry are listed as unavailable and left out of the total.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, err := a.requireState()
			if err != nil {
				return err
			}
			target, err := a.resolveTarget(st)
			if err != nil {
				return err
			}

			client, err := casper.DialRPC(ctx, target.NodeAddress)
			if err != nil {
				return deployer.NewConfigurationError("", "cannot reach node", err)
			}
			defer client.Close()

			summary, err := deployer.BalanceReport(ctx, client, contractHash, st.Config.Decimals, st.Accounts())
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&contractHash, "contract-hash", "", "Token contract hash, e.g. hash-0123...")
	cobra.CheckErr(cmd.MarkFlagRequired("contract-hash"))

	return cmd
}
