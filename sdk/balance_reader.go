package sdk

import (
	"context"
	"errors"

	"github.com/holiman/uint256"

	"github.com/cowlnet/deployer/types"
)

// ErrBalanceNotFound is returned when an account has no entry in the token's balances dictionary.
var ErrBalanceNotFound = errors.New("balance not found")

// BalanceReader reads token balances from a CEP-18 contract's balances dictionary.
type BalanceReader interface {
	Balance(ctx context.Context, contractHash string, account types.AccountKey) (*uint256.Int, error)
}
