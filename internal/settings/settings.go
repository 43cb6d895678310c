// Package settings resolves the deployer's settings from flags, the environment and a .env file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/cowlnet/deployer/internal/utils/safecast"
	"github.com/cowlnet/deployer/state"
	"github.com/cowlnet/deployer/types"
)

// Settings keys. Each is bound to the environment variable in envKeys.
const (
	KeyNodeAddress   = "node_address"
	KeyChainName     = "chain_name"
	KeyClientBinary  = "casper_client"
	KeyWasmPath      = "wasm_path"
	KeyStatePath     = "state_path"
	KeyKeysDir       = "keys_dir"
	KeyPaymentAmount = "payment_amount"
	KeyTTL           = "ttl"
	KeyTokenName     = "token_name"
	KeyTokenSymbol   = "token_symbol"
	KeyDecimals      = "decimals"
	KeyTotalSupply   = "total_supply"
	KeyEventsMode    = "events_mode"
	KeyMaxAttempts   = "max_attempts"
	KeyPollInterval  = "poll_interval"
	KeyLogFile       = "log_file"
	KeyLogLevel      = "log_level"
)

var envKeys = map[string]string{
	KeyNodeAddress:   "RPC_ADDRESS",
	KeyChainName:     "CHAIN_NAME",
	KeyClientBinary:  "CASPER_CLIENT",
	KeyWasmPath:      "WASM_PATH",
	KeyStatePath:     "STATE_PATH",
	KeyKeysDir:       "KEYS_DIR",
	KeyPaymentAmount: "PAYMENT_AMOUNT",
	KeyTTL:           "TTL",
	KeyTokenName:     "TOKEN_NAME",
	KeyTokenSymbol:   "TOKEN_SYMBOL",
	KeyDecimals:      "TOKEN_DECIMALS",
	KeyTotalSupply:   "TOKEN_TOTAL_SUPPLY",
	KeyEventsMode:    "EVENTS_MODE",
	KeyMaxAttempts:   "MAX_ATTEMPTS",
	KeyPollInterval:  "POLL_INTERVAL",
	KeyLogFile:       "LOG_FILE",
	KeyLogLevel:      "LOG_LEVEL",
}

var defaults = map[string]any{
	KeyClientBinary:  "casper-client",
	KeyStatePath:     state.DefaultPath,
	KeyKeysDir:       "keys",
	KeyPaymentAmount: "100000000000",
	KeyTTL:           "30m",
	KeyTokenName:     "DDCasperToken",
	KeyTokenSymbol:   "DSTT",
	KeyDecimals:      9,
	KeyTotalSupply:   "5500000000000000000",
	KeyMaxAttempts:   100,
	KeyPollInterval:  "2s",
	KeyLogFile:       "app.log",
	KeyLogLevel:      "info",
}

// Settings are the resolved values. Network settings may be empty here and filled in from the
// persisted deployment state.
type Settings struct {
	NodeAddress   string `validate:"omitempty,url"`
	ChainName     string
	ClientBinary  string `validate:"required"`
	WasmPath      string
	StatePath     string `validate:"required"`
	KeysDir       string `validate:"required"`
	PaymentAmount string `validate:"required,numeric"`
	TTL           time.Duration
	TokenName     string `validate:"required"`
	TokenSymbol   string `validate:"required"`
	Decimals      uint8
	TotalSupply   string `validate:"required,numeric"`
	EventsMode    *uint8
	MaxAttempts   int
	PollInterval  time.Duration `validate:"gt=0"`
	LogFile       string
	LogLevel      string `validate:"oneof=debug info warn error"`
}

// New returns a viper instance with defaults and environment bindings. Flags are bound by the
// caller with BindPFlag.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}

	return v
}

// LoadEnvFile loads variables from path into the process environment. A missing file is not an
// error; variables already set are kept.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

// Resolve reads and validates the settings held by v.
func Resolve(v *viper.Viper) (*Settings, error) {
	decimals, err := safecast.ToUint8(v.Get(KeyDecimals))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyDecimals, err)
	}
	eventsMode, err := safecast.ToOptionalUint8(v.Get(KeyEventsMode))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyEventsMode, err)
	}
	maxAttempts, err := safecast.ToPositiveInt(v.Get(KeyMaxAttempts))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyMaxAttempts, err)
	}
	ttl, err := cast.ToDurationE(v.Get(KeyTTL))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyTTL, err)
	}
	pollInterval, err := cast.ToDurationE(v.Get(KeyPollInterval))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyPollInterval, err)
	}

	s := &Settings{
		NodeAddress:   v.GetString(KeyNodeAddress),
		ChainName:     v.GetString(KeyChainName),
		ClientBinary:  v.GetString(KeyClientBinary),
		WasmPath:      v.GetString(KeyWasmPath),
		StatePath:     v.GetString(KeyStatePath),
		KeysDir:       v.GetString(KeyKeysDir),
		PaymentAmount: v.GetString(KeyPaymentAmount),
		TTL:           ttl,
		TokenName:     v.GetString(KeyTokenName),
		TokenSymbol:   v.GetString(KeyTokenSymbol),
		Decimals:      decimals,
		TotalSupply:   v.GetString(KeyTotalSupply),
		EventsMode:    eventsMode,
		MaxAttempts:   maxAttempts,
		PollInterval:  pollInterval,
		LogFile:       v.GetString(KeyLogFile),
		LogLevel:      v.GetString(KeyLogLevel),
	}

	if err := validator.New().Struct(s); err != nil {
		return nil, err
	}

	return s, nil
}

// TokenConfig returns the settings of a fresh deployment state.
func (s *Settings) TokenConfig() state.TokenConfig {
	return state.TokenConfig{
		Name:          s.TokenName,
		Symbol:        s.TokenSymbol,
		Decimals:      s.Decimals,
		TotalSupply:   s.TotalSupply,
		PaymentAmount: s.PaymentAmount,
		EventsMode:    s.EventsMode,
		TTL:           types.NewDuration(s.TTL),
		NodeAddress:   s.NodeAddress,
		ChainName:     s.ChainName,
		WasmPath:      s.WasmPath,
	}
}

// Target returns the network settings, which may be incomplete.
func (s *Settings) Target() types.Target {
	return types.Target{NodeAddress: s.NodeAddress, ChainName: s.ChainName}
}
