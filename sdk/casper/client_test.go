package casper_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/sdk/casper"
	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/sdk/mocks"
	"github.com/cowlnet/deployer/types"
)

func TestClient_DeployStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hash := testDeployHash

	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(ctx, "casper-client", "get-deploy", "--node-address", "http://localhost:11101", testDeployHash.String()).
		Return(sdk.RunResult{Stdout: []byte(`{"jsonrpc":"2.0","id":1,"result":{"deploy":{},"execution_results":[` +
			`{"block_hash":"bb","result":{"Failure":{"cost":"10","error_message":"User error: 65535"}}}]}}`)}, nil).
		Once()

	client := casper.NewClient(runner, "http://localhost:11101")
	status, err := client.DeployStatus(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, types.DeployFailed, status.Outcome)
	assert.Equal(t, "User error: 65535", status.ErrorMessage)
}

func TestClient_DeployStatus_RunnerError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(ctx, "casper-client", "get-deploy", "--node-address", "http://localhost:11101", testDeployHash.String()).
		Return(sdk.RunResult{ExitCode: 1}, sdkerrors.NewExitError("casper-client", 1, []byte("connection refused")))

	client := casper.NewClient(runner, "http://localhost:11101")
	status, err := client.DeployStatus(ctx, testDeployHash)
	require.Error(t, err)
	assert.Equal(t, types.DeployPending, status.Outcome)
}

// writeKeyFiles returns a runner stub that creates the files keygen would write in keyDir.
func writeKeyFiles(t *testing.T, keyDir string) func(context.Context, string, ...string) (sdk.RunResult, error) {
	t.Helper()

	return func(context.Context, string, ...string) (sdk.RunResult, error) {
		require.NoError(t, os.MkdirAll(keyDir, 0o700))
		for file, content := range map[string]string{
			casper.SecretKeyFile:    "secret",
			casper.PublicKeyFile:    "public",
			casper.PublicKeyHexFile: testPublicKeyHex,
		} {
			require.NoError(t, os.WriteFile(filepath.Join(keyDir, file), []byte(content), 0o600))
		}

		return sdk.RunResult{}, nil
	}
}

func TestClient_GenerateKeyPair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overwrite bool
		wantArgs  func(keyDir string) []string
	}{
		{
			name:     "new pair",
			wantArgs: func(keyDir string) []string { return []string{"keygen", keyDir} },
		},
		{
			name:      "overwrite passes --force",
			overwrite: true,
			wantArgs:  func(keyDir string) []string { return []string{"keygen", "--force", keyDir} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			dir := t.TempDir()
			keyDir := filepath.Join(dir, "staking")

			runner := mocks.NewRunner(t)
			runner.EXPECT().Run(ctx, "casper-client", anyArgs(tt.wantArgs(keyDir))...).
				RunAndReturn(writeKeyFiles(t, keyDir)).
				Once()

			client := casper.NewClient(runner, "http://localhost:11101")
			kp, err := client.GenerateKeyPair(ctx, dir, "staking", tt.overwrite)
			require.NoError(t, err)
			assert.Equal(t, "staking", kp.Name)
			assert.Equal(t, filepath.Join(keyDir, casper.SecretKeyFile), kp.SecretKeyPath)
			require.NoError(t, casper.VerifyKeyPair(kp))
		})
	}
}

func TestClient_GenerateKeyPair_Error(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	runner := mocks.NewRunner(t)
	runner.EXPECT().Run(ctx, "casper-client", "keygen", filepath.Join(dir, "team")).
		Return(sdk.RunResult{}, errors.New("boom"))

	client := casper.NewClient(runner, "http://localhost:11101")
	_, err := client.GenerateKeyPair(ctx, dir, "team", false)
	require.ErrorContains(t, err, "keygen team: boom")
}
