package deployer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cowlnet/deployer"
	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/sdk/casper"
	"github.com/cowlnet/deployer/types"
)

func buildKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the key pairs of the deployment addresses",
	}

	cmd.AddCommand(buildKeysGenerateCmd(a))
	cmd.AddCommand(buildKeysListCmd(a))

	return cmd
}

func buildKeysGenerateCmd(a *app) *cobra.Command {
	var (
		names  []string
		verify bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate key pairs for every deployment address that has none",
		Long: `Runs casper-client keygen for each missing address (by default all addresses used by the
token roles) and records the pairs in the state file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := sdk.LoggerFrom(ctx)

			st, err := a.loadState()
			if err != nil {
				return err
			}

			wanted := names
			if len(wanted) == 0 {
				wanted = st.AddressNames()
			}

			client := a.newClient(a.settings.NodeAddress)
			for _, name := range wanted {
				if _, ok := st.Addresses[name]; ok && !force {
					logger.Infof("Key pair for %s already exists", name)
					continue
				}

				kp, err := client.GenerateKeyPair(ctx, a.settings.KeysDir, name, force)
				if err != nil {
					return fmt.Errorf("failed to generate key pair %s: %w", name, err)
				}
				logger.Infof("Created key pair for %s: %s", name, kp.PublicKeyHex)
				st.SetAddress(name, kp)
			}

			if err := st.Save(a.settings.StatePath); err != nil {
				return err
			}

			if verify {
				var errs []error
				for _, name := range wanted {
					errs = append(errs, casper.VerifyKeyPair(st.Addresses[name]))
				}
				if err := errors.Join(errs...); err != nil {
					return deployer.NewConfigurationError(a.settings.KeysDir, "key pair verification failed", err)
				}
			}

			return writeJSON(cmd.OutOrStdout(), keyViews(st.Addresses, wanted))
		},
	}

	cmd.Flags().StringSliceVar(&names, "names", nil, "Address names to generate (default: all role addresses)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check the generated files and account hashes")
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing key pairs")

	return cmd
}

func buildKeysListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the recorded key pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.requireState()
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), keyViews(st.Addresses, nil))
		},
	}
}

type keyView struct {
	Name        string           `json:"name"`
	PublicKey   string           `json:"public_key"`
	AccountHash types.AccountKey `json:"account_hash"`
}

// keyViews lists the pairs named in names, or all pairs sorted by name when names is empty.
func keyViews(addresses map[string]types.KeyPair, names []string) []keyView {
	if len(names) == 0 {
		for name := range addresses {
			names = append(names, name)
		}
		slices.Sort(names)
	}

	views := make([]keyView, 0, len(names))
	for _, name := range names {
		kp, ok := addresses[name]
		if !ok {
			continue
		}
		views = append(views, keyView{Name: name, PublicKey: kp.PublicKeyHex, AccountHash: kp.AccountHash})
	}

	return views
}
