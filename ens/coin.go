package ens

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// EthCoinType is the SLIP-44 coin type of Ethereum mainnet.
	EthCoinType = 60

	// CosmosCoinType is the SLIP-44 coin type of Cosmos (ATOM).
	CosmosCoinType = 118

	// EVMCoinTypeThreshold: coin types above it encode an EVM chain id (ENSIP-11).
	EVMCoinTypeThreshold = 0x80000000

	cosmosHRP = "cosmos"
)

var ErrUnsupportedCoin = errors.New("unsupported coin type")

// IsEVMCoinType reports whether coinType denotes an EVM-compatible chain.
func IsEVMCoinType(coinType *big.Int) bool {
	if coinType == nil {
		return false
	}
	return (coinType.IsInt64() && coinType.Int64() == EthCoinType) ||
		coinType.Cmp(big.NewInt(EVMCoinTypeThreshold)) > 0
}

// IsCosmosCoinType reports whether coinType is the Cosmos coin type.
func IsCosmosCoinType(coinType *big.Int) bool {
	return coinType != nil && coinType.IsInt64() && coinType.Int64() == CosmosCoinType
}

// EncodeCoinAddress converts a textual address to its ENSIP-9 binary form.
func EncodeCoinAddress(coinType *big.Int, addr string) ([]byte, error) {
	switch {
	case IsEVMCoinType(coinType):
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid EVM address %q", addr)
		}
		return common.HexToAddress(addr).Bytes(), nil
	case IsCosmosCoinType(coinType):
		_, data, err := bech32.DecodeToBase256(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid bech32 address %q: %w", addr, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCoin, coinType)
	}
}

// DecodeCoinAddress renders an ENSIP-9 binary address as text.
func DecodeCoinAddress(coinType *big.Int, data []byte) (string, error) {
	switch {
	case IsEVMCoinType(coinType):
		if len(data) != common.AddressLength {
			return "", fmt.Errorf("invalid EVM address length %d", len(data))
		}
		return common.BytesToAddress(data).Hex(), nil
	case IsCosmosCoinType(coinType):
		return bech32.EncodeFromBase256(cosmosHRP, data)
	default:
		return "", fmt.Errorf("%w: %v", ErrUnsupportedCoin, coinType)
	}
}
