package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Session argument names of the token installer.
const (
	ArgName           = "name"
	ArgSymbol         = "symbol"
	ArgDecimals       = "decimals"
	ArgTotalSupply    = "total_supply"
	ArgAdminList      = "admin_list"
	ArgMinterList     = "minter_list"
	ArgEventsMode     = "events_mode"
	ArgEnableMintBurn = "enable_mint_burn"
)

var reservedArgNames = []string{
	ArgName, ArgSymbol, ArgDecimals, ArgTotalSupply,
	ArgAdminList, ArgMinterList, ArgEventsMode, ArgEnableMintBurn,
}

// DeploySpecParams holds the named arguments of a token install deploy.
//
// Recipients maps a session argument name (e.g. "treasury_address") to the account receiving the
// allocation. Which recipients exist differs between token variants, so none are fixed here.
type DeploySpecParams struct {
	Name           string                `json:"name" validate:"required"`
	Symbol         string                `json:"symbol" validate:"required"`
	Decimals       uint8                 `json:"decimals"`
	TotalSupply    string                `json:"total_supply" validate:"required,numeric"`
	Recipients     map[string]AccountKey `json:"recipients" validate:"dive,keys,required,endkeys,required"`
	Admins         []AccountKey          `json:"admins" validate:"dive,required"`
	Minters        []AccountKey          `json:"minters" validate:"dive,required"`
	EventsMode     *uint8                `json:"events_mode,omitempty"`
	EnableMintBurn *bool                 `json:"enable_mint_burn,omitempty"`

	PaymentAmount string   `json:"payment_amount" validate:"required,numeric"`
	ChainName     string   `json:"chain_name" validate:"required"`
	SessionPath   string   `json:"session_path" validate:"required"`
	SecretKeyPath string   `json:"secret_key_path" validate:"required"`
	TTL           Duration `json:"ttl"`
}

// DeploySpec is a validated, immutable set of deploy arguments. Construct it with NewDeploySpec.
type DeploySpec struct {
	params DeploySpecParams
}

// NewDeploySpec validates the params and returns a DeploySpec holding its own copy of them.
func NewDeploySpec(params DeploySpecParams) (DeploySpec, error) {
	if err := validateDeploySpecParams(params); err != nil {
		return DeploySpec{}, err
	}

	return DeploySpec{params: cloneParams(params)}, nil
}

func validateDeploySpecParams(p DeploySpecParams) error {
	var validate = validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}

	if _, err := ParseU256(p.TotalSupply); err != nil {
		return fmt.Errorf("invalid total supply: %w", err)
	}
	payment, err := ParseU256(p.PaymentAmount)
	if err != nil {
		return fmt.Errorf("invalid payment amount: %w", err)
	}
	if payment.IsZero() {
		return fmt.Errorf("payment amount must be greater than 0")
	}

	for name, key := range p.Recipients {
		if slices.Contains(reservedArgNames, name) {
			return fmt.Errorf("recipient argument %q clashes with a reserved argument name", name)
		}
		if _, err := ParseAccountKey(key.String()); err != nil {
			return fmt.Errorf("recipient %q: %w", name, err)
		}
	}
	for _, key := range slices.Concat(p.Admins, p.Minters) {
		if _, err := ParseAccountKey(key.String()); err != nil {
			return err
		}
	}

	return nil
}

func cloneParams(p DeploySpecParams) DeploySpecParams {
	out := p
	out.Recipients = maps.Clone(p.Recipients)
	out.Admins = slices.Clone(p.Admins)
	out.Minters = slices.Clone(p.Minters)
	if p.EventsMode != nil {
		v := *p.EventsMode
		out.EventsMode = &v
	}
	if p.EnableMintBurn != nil {
		v := *p.EnableMintBurn
		out.EnableMintBurn = &v
	}

	return out
}

// Params returns a copy of the spec's arguments.
func (s DeploySpec) Params() DeploySpecParams {
	return cloneParams(s.params)
}

// Equal reports whether both specs hold the same arguments.
func (s DeploySpec) Equal(other DeploySpec) bool {
	a, b := s.params, other.params

	return a.Name == b.Name &&
		a.Symbol == b.Symbol &&
		a.Decimals == b.Decimals &&
		a.TotalSupply == b.TotalSupply &&
		maps.Equal(a.Recipients, b.Recipients) &&
		slices.Equal(a.Admins, b.Admins) &&
		slices.Equal(a.Minters, b.Minters) &&
		equalPtr(a.EventsMode, b.EventsMode) &&
		equalPtr(a.EnableMintBurn, b.EnableMintBurn) &&
		a.PaymentAmount == b.PaymentAmount &&
		a.ChainName == b.ChainName &&
		a.SessionPath == b.SessionPath &&
		a.SecretKeyPath == b.SecretKeyPath &&
		a.TTL == b.TTL
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

// IsZero reports whether the spec was never constructed.
func (s DeploySpec) IsZero() bool {
	return s.params.Name == ""
}

// SessionArgs returns the session arguments in a stable order: token basics, recipients sorted
// by argument name, role lists, then optional flags. Empty role lists are omitted.
func (s DeploySpec) SessionArgs() []SessionArg {
	p := s.params

	// Validated in NewDeploySpec.
	supply, _ := ParseU256(p.TotalSupply)

	args := []SessionArg{
		StringArg(ArgName, p.Name),
		StringArg(ArgSymbol, p.Symbol),
		U8Arg(ArgDecimals, p.Decimals),
		U256Arg(ArgTotalSupply, supply),
	}

	for _, name := range slices.Sorted(maps.Keys(p.Recipients)) {
		args = append(args, KeyArg(name, p.Recipients[name]))
	}

	if len(p.Admins) > 0 {
		args = append(args, KeyListArg(ArgAdminList, p.Admins))
	}
	if len(p.Minters) > 0 {
		args = append(args, KeyListArg(ArgMinterList, p.Minters))
	}
	if p.EventsMode != nil {
		args = append(args, U8Arg(ArgEventsMode, *p.EventsMode))
	}
	if p.EnableMintBurn != nil {
		args = append(args, BoolArg(ArgEnableMintBurn, *p.EnableMintBurn))
	}

	return args
}
