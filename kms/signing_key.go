package kms

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidSignature = errors.New("invalid signature")

// SigningKey is the gateway's long-lived secp256k1 key. It is built once at
// startup and is read-only afterwards, so it is safe for concurrent use.
type SigningKey struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigningKey creates a signing key from 32 bytes of raw key material.
func NewSigningKey(raw []byte) (*SigningKey, error) {
	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &SigningKey{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// ParseSigningKey parses a hex-encoded private key, with or without 0x prefix.
func ParseSigningKey(hexKey string) (*SigningKey, error) {
	clean := strings.TrimSpace(hexKey)
	if !strings.HasPrefix(clean, "0x") && !strings.HasPrefix(clean, "0X") {
		clean = "0x" + clean
	}

	raw, err := hexutil.Decode(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}

	return NewSigningKey(raw)
}

// LoadSigningKey accepts either a hex key or "@path", in which case the hex
// key is read from the file at path.
func LoadSigningKey(keyOrPath string) (*SigningKey, error) {
	if path, ok := strings.CutPrefix(keyOrPath, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read private key file: %w", err)
		}
		return ParseSigningKey(string(data))
	}

	return ParseSigningKey(keyOrPath)
}

// Address returns the Ethereum address of the key. Off-chain resolver
// contracts list this address as a trusted signer.
func (k *SigningKey) Address() common.Address {
	return k.address
}

// SignDigest signs a 32-byte digest and returns the 64-byte compact form
// (r || vs) defined by EIP-2098.
func (k *SigningKey) SignDigest(digest [32]byte) ([]byte, error) {
	sig, err := crypto.Sign(digest[:], k.key)
	if err != nil {
		return nil, fmt.Errorf("signing failed: %w", err)
	}

	return CompactSignature(sig)
}

// CompactSignature converts a 65-byte [R || S || V] signature, V in {0, 1},
// into its 64-byte [R || VS] form.
func CompactSignature(sig []byte) ([]byte, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, crypto.SignatureLength, len(sig))
	}

	v := sig[crypto.RecoveryIDOffset]
	if v > 1 {
		return nil, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, v)
	}

	compact := make([]byte, 64)
	copy(compact, sig[:64])
	compact[32] |= v << 7

	return compact, nil
}

// ExpandSignature converts a 64-byte compact signature back to [R || S || V].
// 65-byte input is returned as-is, normalising V from {27, 28} to {0, 1}.
func ExpandSignature(sig []byte) ([]byte, error) {
	switch len(sig) {
	case 64:
		full := make([]byte, crypto.SignatureLength)
		copy(full, sig)
		full[crypto.RecoveryIDOffset] = sig[32] >> 7
		full[32] &= 0x7f
		return full, nil
	case crypto.SignatureLength:
		full := make([]byte, crypto.SignatureLength)
		copy(full, sig)
		if full[crypto.RecoveryIDOffset] >= 27 {
			full[crypto.RecoveryIDOffset] -= 27
		}
		return full, nil
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidSignature, len(sig))
	}
}

// RecoverSigner returns the address that produced sig over digest.
func RecoverSigner(digest [32]byte, sig []byte) (common.Address, error) {
	full, err := ExpandSignature(sig)
	if err != nil {
		return common.Address{}, err
	}

	pubkey, err := crypto.SigToPub(digest[:], full)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	return crypto.PubkeyToAddress(*pubkey), nil
}
