package deployer

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cowlnet/deployer"
	"github.com/cowlnet/deployer/internal/logging"
	"github.com/cowlnet/deployer/internal/settings"
	"github.com/cowlnet/deployer/sdk"
)

// Exit codes of the cep18-deployer binary.
const (
	ExitOK                  = 0
	ExitError               = 1
	ExitConfirmationFailure = 2
	ExitConfirmationTimeout = 3
)

// ExitCode maps a command error onto the process exit status.
func ExitCode(err error) int {
	var (
		failureErr *deployer.ConfirmationFailureError
		timeoutErr *deployer.ConfirmationTimeoutError
	)

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &failureErr):
		return ExitConfirmationFailure
	case errors.As(err, &timeoutErr):
		return ExitConfirmationTimeout
	default:
		return ExitError
	}
}

// app carries what every subcommand needs once the root command resolved its settings.
type app struct {
	v        *viper.Viper
	envFile  string
	settings *settings.Settings
	logger   *logging.Logger
}

func (a *app) bind(flags *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	return nil
}

func BuildDeployerCmd() *cobra.Command {
	a := &app{v: settings.New()}

	cmd := cobra.Command{
		Use:   "cep18-deployer",
		Short: "Deploy and operate a CEP-18 token on a Casper network",
		Long: `cep18-deployer installs a CEP-18 token through casper-client and tracks the deploy
until the network reports its outcome.

Settings are read, in order of priority, from flags, environment variables and a .env file.
Progress is kept in the deployment state file so an interrupted run can be resumed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := settings.LoadEnvFile(a.envFile); err != nil {
				return deployer.NewConfigurationError(a.envFile, "cannot load environment file", err)
			}

			s, err := settings.Resolve(a.v)
			if err != nil {
				return deployer.NewConfigurationError("", "invalid settings", err)
			}
			a.settings = s

			logger, err := logging.New(logging.Options{File: s.LogFile, Level: s.LogLevel, Console: cmd.ErrOrStderr()})
			if err != nil {
				return deployer.NewConfigurationError(s.LogFile, "cannot open log", err)
			}
			a.logger = logger

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(sdk.ContextWithLogger(ctx, logger.Sugar()))

			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logger == nil {
				return nil
			}

			return a.logger.Close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "File with environment variables to load")
	flags.String("config", "", "Deployment state file (default deployment_config.json)")
	flags.String("node-address", "", "Node RPC address, e.g. http://localhost:11101 (or RPC_ADDRESS)")
	flags.String("chain-name", "", "Chain name, e.g. casper-test (or CHAIN_NAME)")
	flags.String("casper-client", "", "casper-client executable (or CASPER_CLIENT)")
	flags.String("keys-dir", "", "Directory holding generated key pairs (or KEYS_DIR)")
	flags.String("log-file", "", "Log file (or LOG_FILE, default app.log)")
	flags.String("log-level", "", "Log level: debug, info, warn or error (or LOG_LEVEL)")
	flags.Int("max-attempts", 0, "Status queries before giving up (or MAX_ATTEMPTS, default 100)")
	flags.Duration("interval", 0, "Wait between status queries (or POLL_INTERVAL, default 2s)")
	cobra.CheckErr(a.bind(flags, map[string]string{
		settings.KeyStatePath:    "config",
		settings.KeyNodeAddress:  "node-address",
		settings.KeyChainName:    "chain-name",
		settings.KeyClientBinary: "casper-client",
		settings.KeyKeysDir:      "keys-dir",
		settings.KeyLogFile:      "log-file",
		settings.KeyLogLevel:     "log-level",
		settings.KeyMaxAttempts:  "max-attempts",
		settings.KeyPollInterval: "interval",
	}))

	cmd.AddCommand(buildDeployCmd(a))
	cmd.AddCommand(buildStatusCmd(a))
	cmd.AddCommand(buildKeysCmd(a))
	cmd.AddCommand(buildFundCmd(a))
	cmd.AddCommand(buildBalancesCmd(a))

	return &cmd
}
