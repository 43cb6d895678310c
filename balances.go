package deployer

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/types"
)

// AccountBalance is the token balance of one named account. Available is false when the balance
// could not be read; Balance is then empty, not zero.
type AccountBalance struct {
	Name      string           `json:"name"`
	Account   types.AccountKey `json:"account"`
	Available bool             `json:"available"`
	Balance   string           `json:"balance,omitempty"`
	Amount    string           `json:"amount,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// BalanceSummary lists token balances and their total over the available entries.
type BalanceSummary struct {
	ContractHash string           `json:"contract_hash"`
	Decimals     uint8            `json:"decimals"`
	Accounts     []AccountBalance `json:"accounts"`
	Total        string           `json:"total"`
	TotalAmount  string           `json:"total_amount"`
	Unavailable  int              `json:"unavailable"`
}

// BalanceReport reads the token balance of each named account, in name order. A failed read
// marks the entry unavailable and does not stop the report; only a cancelled ctx does.
func BalanceReport(ctx context.Context, reader sdk.BalanceReader, contractHash string, decimals uint8,
	accounts map[string]types.AccountKey) (*BalanceSummary, error) {
	logger := sdk.LoggerFrom(ctx)

	summary := &BalanceSummary{
		ContractHash: contractHash,
		Decimals:     decimals,
		Accounts:     make([]AccountBalance, 0, len(accounts)),
	}
	total := new(uint256.Int)

	for _, name := range slices.Sorted(maps.Keys(accounts)) {
		account := accounts[name]
		entry := AccountBalance{Name: name, Account: account}

		balance, err := reader.Balance(ctx, contractHash, account)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if !errors.Is(err, sdk.ErrBalanceNotFound) {
				logger.Warnf("Failed to read balance of %s: %v", name, err)
			}
			entry.Error = err.Error()
			summary.Unavailable++
			summary.Accounts = append(summary.Accounts, entry)

			continue
		}

		entry.Available = true
		entry.Balance = balance.Dec()
		entry.Amount = TokenAmount(balance, decimals)
		summary.Accounts = append(summary.Accounts, entry)

		// Token supplies fit in 256 bits.
		if _, overflow := total.AddOverflow(total, balance); overflow {
			return nil, errors.New("balance total overflows 256 bits")
		}
	}

	summary.Total = total.Dec()
	summary.TotalAmount = TokenAmount(total, decimals)

	return summary, nil
}

// TokenAmount renders a raw token balance with decimals applied, e.g. 1500000000 with 9
// decimals is "1.5".
func TokenAmount(raw *uint256.Int, decimals uint8) string {
	return decimal.NewFromBigInt(raw.ToBig(), -int32(decimals)).String()
}
