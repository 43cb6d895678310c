// Package state persists the deployment document: token settings, role mapping, generated key
// pairs and the last submitted deploy.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cowlnet/deployer/types"
)

const (
	// DefaultPath is the state file written next to the working directory.
	DefaultPath = "deployment_config.json"

	// DeployerName is the address that signs and pays for the install deploy.
	DeployerName = "deployer"
)

// ErrNotFound is returned by Load when no state file exists yet.
var ErrNotFound = errors.New("deployment state not found")

// TokenConfig holds the token and network settings of a deployment.
type TokenConfig struct {
	Name           string         `json:"token_name" validate:"required"`
	Symbol         string         `json:"token_symbol" validate:"required"`
	Decimals       uint8          `json:"decimals"`
	TotalSupply    string         `json:"total_supply" validate:"required,numeric"`
	PaymentAmount  string         `json:"payment_amount" validate:"required,numeric"`
	EventsMode     *uint8         `json:"events_mode,omitempty"`
	EnableMintBurn *bool          `json:"enable_mint_burn,omitempty"`
	TTL            types.Duration `json:"ttl"`

	NodeAddress string `json:"node_address" validate:"required,url"`
	ChainName   string `json:"chain_name" validate:"required"`
	WasmPath    string `json:"wasm_path" validate:"required"`
}

// Roles maps token roles onto named addresses.
type Roles struct {
	// Recipients maps an installer argument name (e.g. "treasury_address") to an address name.
	Recipients map[string]string `json:"recipients"`
	Admins     []string          `json:"admins"`
	Minters    []string          `json:"minters"`
}

// DefaultRoles returns the allocation recipients of the full token distribution, with the
// deployer as the only admin.
func DefaultRoles() Roles {
	recipients := make(map[string]string)
	for _, name := range []string{"treasury", "team", "staking", "investor", "network", "marketing", "airdrop"} {
		recipients[name+"_address"] = name
	}

	return Roles{
		Recipients: recipients,
		Admins:     []string{DeployerName},
		Minters:    []string{},
	}
}

// State is the persisted deployment document.
type State struct {
	Config     TokenConfig              `json:"config"`
	Roles      Roles                    `json:"roles"`
	Addresses  map[string]types.KeyPair `json:"addresses"`
	DeployHash types.DeployHash         `json:"deploy_hash,omitempty"`
	Outcome    types.DeployOutcome      `json:"outcome"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// New starts a fresh state without addresses or deploy.
func New(cfg TokenConfig, roles Roles) *State {
	return &State{
		Config:    cfg,
		Roles:     roles,
		Addresses: make(map[string]types.KeyPair),
	}
}

// Load reads the state at path. A missing file returns an error wrapping ErrNotFound.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("failed to read state %s: %w", path, err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode state %s: %w", path, err)
	}
	if s.Addresses == nil {
		s.Addresses = make(map[string]types.KeyPair)
	}
	if err := s.validateDocument(); err != nil {
		return nil, fmt.Errorf("invalid state %s: %w", path, err)
	}

	return &s, nil
}

// Save writes the state to path, replacing any previous file atomically.
func (s *State) Save(path string) error {
	s.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace state %s: %w", path, err)
	}

	return nil
}

// Validate checks the whole state, including the token and network settings. Run it once flag
// overrides were applied.
func (s *State) Validate() error {
	if err := validator.New().Struct(s.Config); err != nil {
		return err
	}
	if _, err := types.ParseU256(s.Config.TotalSupply); err != nil {
		return fmt.Errorf("total supply: %w", err)
	}

	return s.validateDocument()
}

// validateDocument checks what Load can check before settings are merged in.
func (s *State) validateDocument() error {
	for arg, name := range s.Roles.Recipients {
		if arg == "" || name == "" {
			return fmt.Errorf("recipient role %q -> %q is incomplete", arg, name)
		}
	}
	for name, kp := range s.Addresses {
		if kp.Name != "" && kp.Name != name {
			return fmt.Errorf("address %q holds key pair named %q", name, kp.Name)
		}
	}
	if !s.DeployHash.IsZero() {
		if _, err := types.ParseDeployHash(s.DeployHash.String()); err != nil {
			return err
		}
	}

	return nil
}

// WithTarget overrides the persisted network settings with any non-empty value.
func (s *State) WithTarget(nodeAddress, chainName, wasmPath string) *State {
	if nodeAddress != "" {
		s.Config.NodeAddress = nodeAddress
	}
	if chainName != "" {
		s.Config.ChainName = chainName
	}
	if wasmPath != "" {
		s.Config.WasmPath = wasmPath
	}

	return s
}

// Target returns the network the deploy is sent to.
func (s *State) Target() types.Target {
	return types.Target{NodeAddress: s.Config.NodeAddress, ChainName: s.Config.ChainName}
}

// AddressNames returns every address the deployment needs, sorted, starting with the deployer.
func (s *State) AddressNames() []string {
	set := map[string]struct{}{}
	for _, name := range s.Roles.Recipients {
		set[name] = struct{}{}
	}
	for _, name := range slices.Concat(s.Roles.Admins, s.Roles.Minters) {
		set[name] = struct{}{}
	}
	delete(set, DeployerName)

	return append([]string{DeployerName}, slices.Sorted(maps.Keys(set))...)
}

// MissingAddresses returns the names from AddressNames without a key pair.
func (s *State) MissingAddresses() []string {
	var missing []string
	for _, name := range s.AddressNames() {
		if _, ok := s.Addresses[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}

// SetAddress records a key pair under name.
func (s *State) SetAddress(name string, kp types.KeyPair) {
	if s.Addresses == nil {
		s.Addresses = make(map[string]types.KeyPair)
	}
	s.Addresses[name] = kp
}

// Accounts returns the account hash of every known address.
func (s *State) Accounts() map[string]types.AccountKey {
	accounts := make(map[string]types.AccountKey, len(s.Addresses))
	for name, kp := range s.Addresses {
		accounts[name] = kp.AccountHash
	}

	return accounts
}

func (s *State) account(name string) (types.AccountKey, error) {
	kp, ok := s.Addresses[name]
	if !ok {
		return "", fmt.Errorf("no key pair for address %q", name)
	}

	return kp.AccountHash, nil
}

func (s *State) accounts(names []string) ([]types.AccountKey, error) {
	keys := make([]types.AccountKey, 0, len(names))
	for _, name := range names {
		key, err := s.account(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// DeploySpec builds the install deploy from the state. The deploy is signed with the deployer's
// secret key unless secretKeyOverride is set.
func (s *State) DeploySpec(secretKeyOverride string) (types.DeploySpec, error) {
	recipients := make(map[string]types.AccountKey, len(s.Roles.Recipients))
	for arg, name := range s.Roles.Recipients {
		key, err := s.account(name)
		if err != nil {
			return types.DeploySpec{}, fmt.Errorf("recipient %s: %w", arg, err)
		}
		recipients[arg] = key
	}

	admins, err := s.accounts(s.Roles.Admins)
	if err != nil {
		return types.DeploySpec{}, fmt.Errorf("admins: %w", err)
	}
	minters, err := s.accounts(s.Roles.Minters)
	if err != nil {
		return types.DeploySpec{}, fmt.Errorf("minters: %w", err)
	}

	secretKey := secretKeyOverride
	if secretKey == "" {
		deployer, ok := s.Addresses[DeployerName]
		if !ok {
			return types.DeploySpec{}, fmt.Errorf("no key pair for address %q", DeployerName)
		}
		secretKey = deployer.SecretKeyPath
	}

	cfg := s.Config

	return types.NewDeploySpec(types.DeploySpecParams{
		Name:           cfg.Name,
		Symbol:         cfg.Symbol,
		Decimals:       cfg.Decimals,
		TotalSupply:    cfg.TotalSupply,
		Recipients:     recipients,
		Admins:         admins,
		Minters:        minters,
		EventsMode:     cfg.EventsMode,
		EnableMintBurn: cfg.EnableMintBurn,
		PaymentAmount:  cfg.PaymentAmount,
		ChainName:      cfg.ChainName,
		SessionPath:    cfg.WasmPath,
		SecretKeyPath:  secretKey,
		TTL:            cfg.TTL,
	})
}

// RecordSubmission stores a newly accepted deploy hash; its outcome starts as pending.
func (s *State) RecordSubmission(hash types.DeployHash) {
	s.DeployHash = hash
	s.Outcome = types.DeployPending
}

// RecordOutcome stores the outcome of the current deploy.
func (s *State) RecordOutcome(outcome types.DeployOutcome) {
	s.Outcome = outcome
}
