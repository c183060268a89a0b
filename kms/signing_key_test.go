package kms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known hardhat account #0.
const (
	testKeyHex  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestParseSigningKey(t *testing.T) {
	for _, in := range []string{testKeyHex, "0x" + testKeyHex, " 0x" + testKeyHex + "\n"} {
		k, err := ParseSigningKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, common.HexToAddress(testAddress), k.Address())
	}
}

func TestParseSigningKey_Invalid(t *testing.T) {
	for _, in := range []string{"", "zz", "0x1234", "0x" + testKeyHex + "00"} {
		_, err := ParseSigningKey(in)
		assert.Error(t, err, in)
	}
}

func TestLoadSigningKey_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("0x"+testKeyHex+"\n"), 0o600))

	k, err := LoadSigningKey("@" + path)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), k.Address())

	_, err = LoadSigningKey("@" + filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSignDigest_RoundTrip(t *testing.T) {
	k, err := ParseSigningKey(testKeyHex)
	require.NoError(t, err)

	digest := crypto.Keccak256Hash([]byte("hello"))
	sig, err := k.SignDigest(digest)
	require.NoError(t, err)
	require.Len(t, sig, 64)

	signer, err := RecoverSigner(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, k.Address(), signer)

	// deterministic (RFC 6979)
	again, err := k.SignDigest(digest)
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	other, err := k.SignDigest(crypto.Keccak256Hash([]byte("hello!")))
	require.NoError(t, err)
	assert.NotEqual(t, sig, other)
}

func TestCompactSignature_Expand(t *testing.T) {
	k, err := ParseSigningKey(testKeyHex)
	require.NoError(t, err)

	digest := crypto.Keccak256Hash([]byte("compact"))
	full, err := crypto.Sign(digest[:], k.key)
	require.NoError(t, err)

	compact, err := CompactSignature(full)
	require.NoError(t, err)

	expanded, err := ExpandSignature(compact)
	require.NoError(t, err)
	assert.Equal(t, full, expanded)

	legacy := append([]byte{}, full...)
	legacy[64] += 27
	expanded, err = ExpandSignature(legacy)
	require.NoError(t, err)
	assert.Equal(t, full, expanded)

	_, err = ExpandSignature(full[:10])
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
