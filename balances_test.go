package deployer

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/sdk/mocks"
	"github.com/cowlnet/deployer/types"
)

const testContractHash = "hash-" + "c0ffee00c0ffee00c0ffee00c0ffee00c0ffee00c0ffee00c0ffee00c0ffee00"

func TestTokenAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      uint64
		decimals uint8
		want     string
	}{
		{raw: 1_500_000_000, decimals: 9, want: "1.5"},
		{raw: 0, decimals: 9, want: "0"},
		{raw: 42, decimals: 0, want: "42"},
		{raw: 1, decimals: 18, want: "0.000000000000000001"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenAmount(uint256.NewInt(tt.raw), tt.decimals))
	}
}

func TestBalanceReport(t *testing.T) {
	t.Parallel()

	ctx := sdk.ContextWithLogger(context.Background(), zaptest.NewLogger(t).Sugar())
	accounts := map[string]types.AccountKey{
		"treasury": testAccount(1),
		"team":     testAccount(2),
		"airdrop":  testAccount(3),
		"staking":  testAccount(4),
	}

	supply, err := types.ParseU256("5500000000000000000")
	require.NoError(t, err)

	reader := mocks.NewBalanceReader(t)
	reader.EXPECT().Balance(ctx, testContractHash, testAccount(1)).Return(supply, nil).Once()
	reader.EXPECT().Balance(ctx, testContractHash, testAccount(2)).Return(uint256.NewInt(500_000_000), nil).Once()
	reader.EXPECT().Balance(ctx, testContractHash, testAccount(3)).
		Return(nil, sdk.ErrBalanceNotFound).Once()
	reader.EXPECT().Balance(ctx, testContractHash, testAccount(4)).
		Return(nil, errors.New("connection reset")).Once()

	summary, err := BalanceReport(ctx, reader, testContractHash, 9, accounts)
	require.NoError(t, err)

	names := make([]string, len(summary.Accounts))
	for i, a := range summary.Accounts {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"airdrop", "staking", "team", "treasury"}, names)

	assert.False(t, summary.Accounts[0].Available)
	assert.Empty(t, summary.Accounts[0].Balance)
	assert.NotEmpty(t, summary.Accounts[0].Error)
	assert.False(t, summary.Accounts[1].Available)

	assert.True(t, summary.Accounts[2].Available)
	assert.Equal(t, "0.5", summary.Accounts[2].Amount)

	assert.Equal(t, "5500000000500000000", summary.Total)
	assert.Equal(t, "5500000000.5", summary.TotalAmount)
	assert.Equal(t, 2, summary.Unavailable)
}

func TestBalanceReport_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := mocks.NewBalanceReader(t)
	reader.EXPECT().Balance(ctx, testContractHash, testAccount(1)).Return(nil, context.Canceled).Once()

	_, err := BalanceReport(ctx, reader, testContractHash, 9, map[string]types.AccountKey{"team": testAccount(1)})
	require.ErrorIs(t, err, context.Canceled)
}
