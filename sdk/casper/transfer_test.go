package casper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/sdk/casper"
	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/sdk/mocks"
	"github.com/cowlnet/deployer/types"
)

func validTransferRequest() casper.TransferRequest {
	return casper.TransferRequest{
		Target:        types.Target{NodeAddress: "http://localhost:11101", ChainName: "casper-net-1"},
		Amount:        "2500000000",
		TargetAccount: testPublicKeyHex,
		TransferID:    7,
		SecretKeyPath: "/keys/faucet/secret_key.pem",
	}
}

func TestTransferArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    func(r *casper.TransferRequest)
		want    []string
		wantErr string
	}{
		{
			name: "default payment",
			give: func(*casper.TransferRequest) {},
			want: []string{
				"transfer",
				"--node-address", "http://localhost:11101",
				"--chain-name", "casper-net-1",
				"--secret-key", "/keys/faucet/secret_key.pem",
				"--amount", "2500000000",
				"--target-account", testPublicKeyHex,
				"--transfer-id", "7",
				"--payment-amount", casper.DefaultTransferPaymentAmount,
			},
		},
		{
			name: "explicit payment",
			give: func(r *casper.TransferRequest) { r.PaymentAmount = "200000000" },
			want: []string{
				"transfer",
				"--node-address", "http://localhost:11101",
				"--chain-name", "casper-net-1",
				"--secret-key", "/keys/faucet/secret_key.pem",
				"--amount", "2500000000",
				"--target-account", testPublicKeyHex,
				"--transfer-id", "7",
				"--payment-amount", "200000000",
			},
		},
		{
			name:    "failure: amount not numeric",
			give:    func(r *casper.TransferRequest) { r.Amount = "2.5" },
			wantErr: "Amount",
		},
		{
			name:    "failure: missing secret key",
			give:    func(r *casper.TransferRequest) { r.SecretKeyPath = "" },
			wantErr: "SecretKeyPath",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validTransferRequest()
			tt.give(&req)

			got, err := casper.TransferArgs(req)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func anyArgs(args []string) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = a
	}

	return out
}

func TestClient_Transfer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	req := validTransferRequest()
	args, err := casper.TransferArgs(req)
	require.NoError(t, err)

	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(ctx, "casper-client", anyArgs(args)...).
		Return(sdk.RunResult{Stdout: []byte("Deploy hash: " + testDeployHash.String() + "\n")}, nil)

	client := casper.NewClient(runner, "http://localhost:11101")
	hash, err := client.Transfer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, testDeployHash, hash)
}

func TestClient_Transfer_ExitError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	req := validTransferRequest()
	args, err := casper.TransferArgs(req)
	require.NoError(t, err)

	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(ctx, "/opt/bin/casper-client", anyArgs(args)...).
		Return(sdk.RunResult{ExitCode: 1}, sdkerrors.NewExitError("/opt/bin/casper-client", 1, []byte("insufficient funds")))

	client := casper.NewClient(runner, "http://localhost:11101", casper.WithBinary("/opt/bin/casper-client"))
	_, err = client.Transfer(ctx, req)

	var exitErr *sdkerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "insufficient funds", exitErr.Stderr)
}

func TestClient_Transfer_InvalidRequest(t *testing.T) {
	t.Parallel()

	req := validTransferRequest()
	req.TargetAccount = "not hex"

	client := casper.NewClient(mocks.NewRunner(t), "http://localhost:11101")
	_, err := client.Transfer(context.Background(), req)
	require.ErrorContains(t, err, "invalid transfer request")
}
