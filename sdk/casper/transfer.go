package casper

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/cowlnet/deployer/types"
)

// DefaultTransferPaymentAmount is the payment attached to a native transfer, 0.1 CSPR.
const DefaultTransferPaymentAmount = "100000000"

// TransferRequest describes a native token transfer between two accounts.
type TransferRequest struct {
	Target types.Target
	// Amount in motes.
	Amount string `validate:"required,numeric"`
	// TargetAccount is the recipient's public key hex.
	TargetAccount string `validate:"required,hexadecimal"`
	TransferID    uint64
	PaymentAmount string `validate:"omitempty,numeric"`
	SecretKeyPath string `validate:"required"`
}

// TransferArgs returns the "transfer" command line for req.
func TransferArgs(req TransferRequest) ([]string, error) {
	if err := validator.New().Struct(req); err != nil {
		return nil, err
	}

	payment := req.PaymentAmount
	if payment == "" {
		payment = DefaultTransferPaymentAmount
	}

	return []string{
		"transfer",
		"--node-address", req.Target.NodeAddress,
		"--chain-name", req.Target.ChainName,
		"--secret-key", req.SecretKeyPath,
		"--amount", req.Amount,
		"--target-account", req.TargetAccount,
		"--transfer-id", strconv.FormatUint(req.TransferID, 10),
		"--payment-amount", payment,
	}, nil
}

// Transfer sends a native transfer and returns its deploy hash.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (types.DeployHash, error) {
	args, err := TransferArgs(req)
	if err != nil {
		return "", fmt.Errorf("invalid transfer request: %w", err)
	}

	res, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return "", fmt.Errorf("transfer: %w", err)
	}

	return ParseDeployHashOutput(res.Stdout)
}
