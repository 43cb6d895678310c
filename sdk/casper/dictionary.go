package casper

import (
	"encoding/base64"

	"github.com/cowlnet/deployer/types"
)

// BalancesDictionary is the named key of the CEP-18 balances dictionary.
const BalancesDictionary = "balances"

// keyAccountTag is the serialisation tag of an Account key.
const keyAccountTag = 0x00

// BalanceItemKey returns the dictionary item key under which a CEP-18 contract stores the balance
// of account: the base64 encoded serialised Key (account tag followed by the account hash).
func BalanceItemKey(account types.AccountKey) (string, error) {
	raw, err := account.Bytes()
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(append([]byte{keyAccountTag}, raw...)), nil
}
