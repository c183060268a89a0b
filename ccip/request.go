package ccip

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/likecoin/likerid-ens-gateway/ens"
	"github.com/likecoin/likerid-ens-gateway/interfaces"
)

var (
	ErrMalformedRequest    = errors.New("malformed request")
	ErrUnsupportedFunction = errors.New("unsupported function")
	ErrNameMismatch        = errors.New("name does not match namehash")
)

// Request is an off-chain lookup as relayed by a CCIP-read client: the
// resolver contract that raised OffchainLookup and the callData it supplied.
type Request struct {
	Sender common.Address
	Data   []byte
}

// Call is a decoded resolve(bytes,bytes) request.
type Call struct {
	Name  string
	Node  common.Hash
	Query interfaces.Query

	inner *abi.Method
}

// Signature is the canonical signature of the inner resolver call.
func (c *Call) Signature() string {
	return c.inner.Sig
}

// DecodeCall parses resolve(bytes name, bytes data) calldata and the inner
// resolver call it wraps, and checks that the inner node matches the name.
func DecodeCall(data []byte) (*Call, error) {
	name, inner, err := unpackResolve(data)
	if err != nil {
		return nil, err
	}

	if len(inner) < 4 {
		return nil, fmt.Errorf("%w: inner call too short", ErrMalformedRequest)
	}

	m, err := parsedABI.MethodById(inner[:4])
	if err != nil || m.Sig == SigResolve {
		return nil, fmt.Errorf("%w: selector 0x%x", ErrUnsupportedFunction, inner[:4])
	}

	args, err := m.Inputs.Unpack(inner[4:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s arguments: %v", ErrMalformedRequest, m.Sig, err)
	}

	node, ok := args[0].([32]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s node argument", ErrMalformedRequest, m.Sig)
	}

	normalized, err := ens.Normalize(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if normalized != name {
		return nil, fmt.Errorf("%w: name %q must be normalised", ErrMalformedRequest, name)
	}

	if ens.NameHash(normalized) != common.Hash(node) {
		return nil, fmt.Errorf("%w: %s", ErrNameMismatch, normalized)
	}

	call := &Call{Name: normalized, Node: node, inner: m}
	switch m.Sig {
	case SigAddr:
		call.Query = interfaces.AddrQuery(normalized, big.NewInt(ens.EthCoinType))
	case SigAddrCoin:
		coinType, ok := args[1].(*big.Int)
		if !ok {
			return nil, fmt.Errorf("%w: coin type argument", ErrMalformedRequest)
		}
		call.Query = interfaces.AddrQuery(normalized, coinType)
	case SigText:
		key, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: text key argument", ErrMalformedRequest)
		}
		call.Query = interfaces.TextQuery(normalized, key)
	case SigContenthash:
		call.Query = interfaces.ContenthashQuery(normalized)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFunction, m.Sig)
	}

	return call, nil
}

func unpackResolve(data []byte) (string, []byte, error) {
	resolve := method(SigResolve)
	if len(data) < 4 {
		return "", nil, fmt.Errorf("%w: calldata too short", ErrMalformedRequest)
	}
	if !bytes.Equal(data[:4], resolve.ID) {
		return "", nil, fmt.Errorf("%w: selector 0x%x", ErrUnsupportedFunction, data[:4])
	}

	args, err := resolve.Inputs.Unpack(data[4:])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	encodedName, _ := args[0].([]byte)
	inner, _ := args[1].([]byte)

	name, err := ens.DecodeDNSName(encodedName)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	return name, inner, nil
}

// EncodeResult ABI-encodes a resolution result as the return value of the
// inner call. Stored addresses that cannot be represented in the requested
// coin's binary format are encoded as the zero-address sentinel.
func (c *Call) EncodeResult(r interfaces.ResolutionResult) ([]byte, error) {
	switch c.inner.Sig {
	case SigAddr:
		addr := common.Address{}
		if s := string(r.Value); common.IsHexAddress(s) {
			addr = common.HexToAddress(s)
		}
		return c.inner.Outputs.Pack(addr)
	case SigAddrCoin:
		return c.inner.Outputs.Pack(coinAddressBytes(c.Query.CoinType, string(r.Value)))
	case SigText:
		return c.inner.Outputs.Pack(string(r.Value))
	case SigContenthash:
		value := r.Value
		if value == nil {
			value = interfaces.EmptyContentHash
		}
		return c.inner.Outputs.Pack(value)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFunction, c.inner.Sig)
	}
}

func coinAddressBytes(coinType *big.Int, addr string) []byte {
	zero := make([]byte, common.AddressLength)
	if addr == interfaces.ZeroAddress {
		return zero
	}

	raw, err := ens.EncodeCoinAddress(coinType, addr)
	if err != nil {
		return zero
	}
	return raw
}

// EncodeCall builds resolve(bytes,bytes) calldata for a query. It is the
// client-side counterpart of DecodeCall.
func EncodeCall(q interfaces.Query) ([]byte, error) {
	normalized, err := ens.Normalize(q.Name)
	if err != nil {
		return nil, err
	}
	node := ens.NameHash(normalized)

	var inner []byte
	switch q.Type {
	case interfaces.RecordAddr:
		if q.CoinType == nil || (q.CoinType.IsInt64() && q.CoinType.Int64() == ens.EthCoinType) {
			inner, err = packCall(SigAddr, [32]byte(node))
		} else {
			inner, err = packCall(SigAddrCoin, [32]byte(node), q.CoinType)
		}
	case interfaces.RecordText:
		inner, err = packCall(SigText, [32]byte(node), q.TextKey)
	case interfaces.RecordContenthash:
		inner, err = packCall(SigContenthash, [32]byte(node))
	default:
		return nil, fmt.Errorf("%w: record type %v", ErrUnsupportedFunction, q.Type)
	}
	if err != nil {
		return nil, err
	}

	encodedName, err := ens.EncodeDNSName(normalized)
	if err != nil {
		return nil, err
	}

	return packCall(SigResolve, encodedName, inner)
}

func packCall(sig string, args ...interface{}) ([]byte, error) {
	m := method(sig)
	packed, err := m.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("could not pack %s: %w", sig, err)
	}
	return append(append([]byte{}, m.ID...), packed...), nil
}

// DecodeResult unpacks the inner call's return value into its Go value:
// common.Address for addr(bytes32), []byte for addr(bytes32,uint256) and
// contenthash, string for text.
func DecodeResult(sig string, result []byte) (interface{}, error) {
	m := method(sig)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFunction, sig)
	}

	values, err := m.Outputs.Unpack(result)
	if err != nil {
		return nil, fmt.Errorf("could not unpack %s result: %w", sig, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected %s result arity %d", sig, len(values))
	}
	return values[0], nil
}
