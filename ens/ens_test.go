package ens

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameHash(t *testing.T) {
	assert.Equal(t, common.Hash{}, NameHash(""))
	assert.Equal(t, common.HexToHash("0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"), NameHash("eth"))
	assert.Equal(t, common.HexToHash("0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"), NameHash("foo.eth"))
}

func TestNormalize(t *testing.T) {
	out, err := Normalize("Alice.ID.like.co")
	require.NoError(t, err)
	assert.Equal(t, "alice.id.like.co", out)

	out, err = Normalize("alice.id.liker.land")
	require.NoError(t, err)
	assert.Equal(t, "alice.id.liker.land", out)

	for _, name := range []string{"alice-.id.like.co", "-alice.id.like.co", "al--ice.id.liker.land"} {
		out, err = Normalize(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, out)
	}
}

func TestDNSName_RoundTrip(t *testing.T) {
	for _, name := range []string{"alice.id.like.co", "eth", "a.b.c.d.e"} {
		encoded, err := EncodeDNSName(name)
		require.NoError(t, err)

		decoded, err := DecodeDNSName(encoded)
		require.NoError(t, err)
		assert.Equal(t, name, decoded)
	}

	encoded, err := EncodeDNSName("alice.id.like.co")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x05alice\x02id\x04like\x02co\x00"), encoded)

	root, err := EncodeDNSName("")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, root)
}

func TestDecodeDNSName_Malformed(t *testing.T) {
	for _, in := range [][]byte{
		{},
		[]byte("\x05alice"),
		[]byte("\x05alice\x02id"),
		[]byte("\x09alice"),
		[]byte("\x03a.b\x00"),
	} {
		_, err := DecodeDNSName(in)
		assert.ErrorIs(t, err, ErrMalformedName, "%x", in)
	}

	// trailing bytes after the root label are ignored
	name, err := DecodeDNSName([]byte("\x03eth\x00\xff\xff"))
	require.NoError(t, err)
	assert.Equal(t, "eth", name)
}

func TestCoinTypes(t *testing.T) {
	assert.True(t, IsEVMCoinType(big.NewInt(60)))
	assert.True(t, IsEVMCoinType(big.NewInt(0x80000000+10)))
	assert.False(t, IsEVMCoinType(big.NewInt(0x80000000)))
	assert.False(t, IsEVMCoinType(big.NewInt(0)))
	assert.False(t, IsEVMCoinType(big.NewInt(118)))
	assert.False(t, IsEVMCoinType(nil))

	assert.True(t, IsCosmosCoinType(big.NewInt(118)))
	assert.False(t, IsCosmosCoinType(big.NewInt(60)))
}

func TestCoinAddress_EVM(t *testing.T) {
	addr := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	raw, err := EncodeCoinAddress(big.NewInt(60), addr)
	require.NoError(t, err)
	assert.Len(t, raw, 20)

	text, err := DecodeCoinAddress(big.NewInt(60), raw)
	require.NoError(t, err)
	assert.Equal(t, addr, text)

	_, err = EncodeCoinAddress(big.NewInt(60), "not-an-address")
	assert.Error(t, err)
}

func TestCoinAddress_Cosmos(t *testing.T) {
	raw := common.HexToAddress("0x00112233445566778899aabbccddeeff00112233").Bytes()
	addr, err := bech32.EncodeFromBase256("cosmos", raw)
	require.NoError(t, err)

	encoded, err := EncodeCoinAddress(big.NewInt(118), addr)
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)

	decoded, err := DecodeCoinAddress(big.NewInt(118), encoded)
	require.NoError(t, err)
	assert.Equal(t, addr, decoded)

	_, err = EncodeCoinAddress(big.NewInt(118), "cosmos1invalid")
	assert.Error(t, err)
}

func TestCoinAddress_Unsupported(t *testing.T) {
	_, err := EncodeCoinAddress(big.NewInt(0), "1BoatSLRHtKNngkdXEeobR76b53LETtpyT")
	assert.ErrorIs(t, err, ErrUnsupportedCoin)

	_, err = DecodeCoinAddress(big.NewInt(2), []byte{1})
	assert.ErrorIs(t, err, ErrUnsupportedCoin)
}

func TestContentHash(t *testing.T) {
	empty, err := DecodeContentHash(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	mh, err := multihash.Sum([]byte("hello"), multihash.SHA2_256, -1)
	require.NoError(t, err)
	c := cid.NewCidV1(cid.DagProtobuf, mh)

	uri := "ipfs://" + c.String()
	encoded, err := EncodeContentHash(uri)
	require.NoError(t, err)
	assert.Equal(t, byte(0xe3), encoded[0])

	decoded, err := DecodeContentHash(encoded)
	require.NoError(t, err)
	assert.Equal(t, uri, decoded)

	_, err = DecodeContentHash([]byte{0xe4, 0x01})
	assert.Error(t, err)

	_, err = EncodeContentHash("bzz://abc")
	assert.Error(t, err)
}
