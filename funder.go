package deployer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/sdk/casper"
	"github.com/cowlnet/deployer/types"
)

const (
	// MotesPerCSPR is the number of motes in one CSPR.
	MotesPerCSPR = 1_000_000_000

	// MinTransferMotes is the smallest native transfer the network accepts, 2.5 CSPR.
	MinTransferMotes = 2_500_000_000
)

// FundRequest describes a native transfer from a faucet account.
type FundRequest struct {
	Target types.Target
	// Amount in motes.
	Amount decimal.Decimal
	// Recipient is the public key hex of the funded account.
	Recipient     string
	FaucetKeyPath string
	TransferID    uint64
	// Wait polls the transfer until it is confirmed.
	Wait bool
}

// FundResult is the outcome of Funder.Fund. Confirmation is set only when the request waited.
type FundResult struct {
	Hash         types.DeployHash
	Confirmation *Confirmation
}

// Funder sends native transfers through the node client.
type Funder struct {
	client *casper.Client
	poller *Poller
}

// NewFunder returns a Funder. poller may be nil when no request waits.
func NewFunder(client *casper.Client, poller *Poller) *Funder {
	return &Funder{client: client, poller: poller}
}

// MotesToCSPR converts an amount in motes to CSPR.
func MotesToCSPR(motes decimal.Decimal) decimal.Decimal {
	return motes.Div(decimal.NewFromInt(MotesPerCSPR))
}

// CSPRToMotes converts an amount in CSPR to motes. Fractions of a mote are rejected.
func CSPRToMotes(cspr decimal.Decimal) (decimal.Decimal, error) {
	motes := cspr.Mul(decimal.NewFromInt(MotesPerCSPR))
	if !motes.IsInteger() {
		return decimal.Zero, fmt.Errorf("amount %s CSPR is not a whole number of motes", cspr)
	}

	return motes, nil
}

// Fund transfers req.Amount to req.Recipient.
func (f *Funder) Fund(ctx context.Context, req FundRequest) (*FundResult, error) {
	if !req.Amount.IsInteger() {
		return nil, NewConfigurationError("", fmt.Sprintf("amount %s is not a whole number of motes", req.Amount), nil)
	}
	if req.Amount.LessThan(decimal.NewFromInt(MinTransferMotes)) {
		return nil, NewConfigurationError("", fmt.Sprintf("amount %s motes is below the minimum transfer of %s CSPR",
			req.Amount, MotesToCSPR(decimal.NewFromInt(MinTransferMotes))), nil)
	}
	if req.Wait && f.poller == nil {
		return nil, fmt.Errorf("waiting for a transfer requires a poller")
	}
	if err := checkReadable(req.FaucetKeyPath); err != nil {
		return nil, NewConfigurationError(req.FaucetKeyPath, "faucet key is not readable", err)
	}

	transfer := casper.TransferRequest{
		Target:        req.Target,
		Amount:        req.Amount.String(),
		TargetAccount: req.Recipient,
		TransferID:    req.TransferID,
		SecretKeyPath: req.FaucetKeyPath,
	}
	if _, err := casper.TransferArgs(transfer); err != nil {
		return nil, NewConfigurationError("", "invalid transfer", err)
	}

	logger := sdk.LoggerFrom(ctx)
	logger.Infof("Transferring %s CSPR (%s motes) to %s", MotesToCSPR(req.Amount), req.Amount, req.Recipient)

	hash, err := f.client.Transfer(ctx, transfer)
	if err != nil {
		return nil, NewSubmissionError("transfer rejected", err)
	}
	logger.Infof("Transfer deploy hash: %s", hash)

	result := &FundResult{Hash: hash}
	if !req.Wait {
		return result, nil
	}

	conf, err := f.poller.Poll(ctx, hash)
	result.Confirmation = conf

	return result, err
}
