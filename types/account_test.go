package types

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

const testEd25519PublicKey = "01" + "5e4c7a3b1f2d0e9c8b7a69584736251403f2e1d0c9b8a79685746352413f2e1d"

func Test_AccountKeyFromPublicKey(t *testing.T) {
	t.Parallel()

	raw, err := hex.DecodeString(testEd25519PublicKey[2:])
	require.NoError(t, err)
	sum := blake2b.Sum256(append([]byte("ed25519\x00"), raw...))
	want := AccountKey(AccountHashPrefix + hex.EncodeToString(sum[:]))

	got, err := AccountKeyFromPublicKey(testEd25519PublicKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := AccountKeyFromPublicKey(" " + strings.ToUpper(testEd25519PublicKey) + "\n")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func Test_AccountKeyFromPublicKey_Secp256k1(t *testing.T) {
	t.Parallel()

	key := "02" + "03" + strings.Repeat("11", 32)
	raw, err := hex.DecodeString(key[2:])
	require.NoError(t, err)
	sum := blake2b.Sum256(append([]byte("secp256k1\x00"), raw...))

	got, err := AccountKeyFromPublicKey(key)
	require.NoError(t, err)
	assert.Equal(t, AccountKey(AccountHashPrefix+hex.EncodeToString(sum[:])), got)
}

func Test_AccountKeyFromPublicKey_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
	}{
		{name: "empty", give: ""},
		{name: "not hex", give: "01zz"},
		{name: "unknown tag", give: "03" + strings.Repeat("00", 32)},
		{name: "short ed25519", give: "01" + strings.Repeat("00", 31)},
		{name: "short secp256k1", give: "02" + strings.Repeat("00", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := AccountKeyFromPublicKey(tt.give)
			require.ErrorIs(t, err, ErrInvalidPublicKey)
		})
	}
}

func Test_ParseAccountKey(t *testing.T) {
	t.Parallel()

	valid := AccountHashPrefix + strings.Repeat("0f", 32)

	got, err := ParseAccountKey(strings.ToUpper(valid[:len(AccountHashPrefix)]) + valid[len(AccountHashPrefix):])
	require.NoError(t, err)
	assert.Equal(t, AccountKey(valid), got)

	b, err := got.Bytes()
	require.NoError(t, err)
	assert.Len(t, b, 32)

	_, err = ParseAccountKey("hash-" + strings.Repeat("0f", 32))
	require.ErrorIs(t, err, ErrInvalidAccountKey)

	_, err = ParseAccountKey(AccountHashPrefix + "0f0f")
	require.ErrorIs(t, err, ErrInvalidAccountKey)
}

func Test_KeyPair_UnmarshalJSON_DerivesAccountHash(t *testing.T) {
	t.Parallel()

	var kp KeyPair
	err := json.Unmarshal([]byte(`{"name":"treasury","public_key":"`+testEd25519PublicKey+`","secret_key_path":"keys/treasury/secret_key.pem"}`), &kp)
	require.NoError(t, err)

	want, err := AccountKeyFromPublicKey(testEd25519PublicKey)
	require.NoError(t, err)
	assert.Equal(t, want, kp.AccountHash)
	assert.Equal(t, "treasury", kp.Name)
}
