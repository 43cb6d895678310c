package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDeployHash(t *testing.T) {
	t.Parallel()

	valid := strings.Repeat("ab", 32)

	tests := []struct {
		name    string
		give    string
		want    DeployHash
		wantErr error
	}{
		{name: "valid", give: valid, want: DeployHash(valid)},
		{name: "upper case and whitespace", give: "  " + strings.ToUpper(valid) + "\n", want: DeployHash(valid)},
		{name: "0x prefix", give: "0x" + valid, want: DeployHash(valid)},
		{name: "too short", give: "abcd", wantErr: ErrInvalidDeployHash},
		{name: "not hex", give: strings.Repeat("zz", 32), wantErr: ErrInvalidDeployHash},
		{name: "empty", give: "", wantErr: ErrInvalidDeployHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDeployHash(tt.give)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsZero())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_DeployOutcome_Text(t *testing.T) {
	t.Parallel()

	for _, o := range []DeployOutcome{DeployPending, DeploySucceeded, DeployFailed, DeployTimedOut} {
		text, err := o.MarshalText()
		require.NoError(t, err)

		var got DeployOutcome
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, o, got)
	}

	assert.False(t, DeployPending.IsTerminal())
	assert.True(t, DeployTimedOut.IsTerminal())
	assert.Equal(t, "unknown(9)", DeployOutcome(9).String())

	var o DeployOutcome
	require.EqualError(t, o.UnmarshalText([]byte("done")), `invalid deploy outcome: "done"`)
}
