package deployer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cowlnet/deployer"
	"github.com/cowlnet/deployer/state"
	"github.com/cowlnet/deployer/types"
)

func buildFundCmd(a *app) *cobra.Command {
	var (
		amount        string
		faucetKey     string
		recipient     string
		targetAccount string
		transferID    uint64
		wait          bool
		statusVia     string
	)

	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Transfer CSPR from a faucet account to a deployment address",
		Long: `Sends a native transfer of --amount (motes, or CSPR with a "cspr" suffix such as 2.5cspr; at
least 2.5 CSPR) to the named address from the state file, the deployer by default, or to
--target-account.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			motes, err := parseAmount(amount)
			if err != nil {
				return deployer.NewConfigurationError("", fmt.Sprintf("invalid amount %q", amount), err)
			}

			var st *state.State
			publicKey := targetAccount
			if publicKey == "" {
				st, err = a.requireState()
				if err != nil {
					return err
				}
				kp, ok := st.Addresses[recipient]
				if !ok {
					return deployer.NewConfigurationError(a.settings.StatePath, fmt.Sprintf("no key pair for address %q", recipient), nil)
				}
				publicKey = kp.PublicKeyHex
			} else if loaded, lerr := state.Load(a.settings.StatePath); lerr == nil {
				st = loaded
			}

			target, err := a.resolveTarget(st)
			if err != nil {
				return err
			}
			if target.ChainName == "" {
				return deployer.NewConfigurationError("", "chain name is required (--chain-name or CHAIN_NAME)", nil)
			}

			var poller *deployer.Poller
			if wait {
				querier, closeQuerier, err := a.statusQuerier(ctx, statusVia, target.NodeAddress)
				if err != nil {
					return err
				}
				defer closeQuerier()

				if poller, err = a.newPoller(querier); err != nil {
					return err
				}
			}

			result, err := deployer.NewFunder(a.newClient(target.NodeAddress), poller).Fund(ctx, deployer.FundRequest{
				Target:        target,
				Amount:        motes,
				Recipient:     publicKey,
				FaucetKeyPath: faucetKey,
				TransferID:    transferID,
				Wait:          wait,
			})
			if result == nil {
				return err
			}

			out := struct {
				Hash         types.DeployHash  `json:"deploy_hash"`
				Recipient    string            `json:"recipient"`
				Amount       string            `json:"amount_motes"`
				CSPR         string            `json:"amount_cspr"`
				Confirmation *confirmationView `json:"confirmation,omitempty"`
			}{
				Hash:      result.Hash,
				Recipient: publicKey,
				Amount:    motes.String(),
				CSPR:      deployer.MotesToCSPR(motes).String(),
			}
			if result.Confirmation != nil {
				view := viewConfirmation(result.Confirmation)
				out.Confirmation = &view
			}

			return errors.Join(err, writeJSON(cmd.OutOrStdout(), out))
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", `Amount in motes, or in CSPR with a "cspr" suffix`)
	cmd.Flags().StringVar(&faucetKey, "faucet-key", "", "Secret key of the funding account")
	cmd.Flags().StringVar(&recipient, "recipient", state.DeployerName, "Address name from the state file to fund")
	cmd.Flags().StringVar(&targetAccount, "target-account", "", "Public key hex to fund instead of a named address")
	cmd.Flags().Uint64Var(&transferID, "transfer-id", 1, "Transfer id")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the transfer to be executed")
	cmd.Flags().StringVar(&statusVia, "status-via", statusViaRPC, "Status source when waiting: rpc or client")
	cobra.CheckErr(cmd.MarkFlagRequired("amount"))
	cobra.CheckErr(cmd.MarkFlagRequired("faucet-key"))

	return cmd
}

// parseAmount reads a transfer amount in motes. A "cspr" suffix gives the amount in CSPR instead.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if cspr, ok := strings.CutSuffix(s, "cspr"); ok {
		value, err := decimal.NewFromString(strings.TrimSpace(cspr))
		if err != nil {
			return decimal.Zero, err
		}

		return deployer.CSPRToMotes(value)
	}

	return decimal.NewFromString(s)
}
