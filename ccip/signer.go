package ccip

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/likecoin/likerid-ens-gateway/interfaces"
	"github.com/likecoin/likerid-ens-gateway/kms"
)

// signaturePrefix is the EIP-191 version 0 prefix ("data with intended
// validator") used by the OffchainResolver signature verifier.
var signaturePrefix = []byte{0x19, 0x00}

// MessageHash computes the digest the gateway signs:
//
//	keccak256(0x1900 || target || uint64 expires || keccak256(request) || keccak256(result))
func MessageHash(target common.Address, expires uint64, request []byte, result []byte) common.Hash {
	var expiresBytes [8]byte
	binary.BigEndian.PutUint64(expiresBytes[:], expires)

	return crypto.Keccak256Hash(
		signaturePrefix,
		target.Bytes(),
		expiresBytes[:],
		crypto.Keccak256(request),
		crypto.Keccak256(result),
	)
}

// Signer wraps encoded results into signed responses.
type Signer struct {
	key interfaces.ResponseSigner
	now func() time.Time
}

func NewSigner(key interfaces.ResponseSigner) *Signer {
	return &Signer{key: key, now: time.Now}
}

// WithClock returns a copy of the signer that reads the current time from now.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	return &Signer{key: s.key, now: now}
}

func (s *Signer) Address() common.Address {
	return s.key.Address()
}

// Sign produces the envelope for an encoded result valid for ttl seconds.
func (s *Signer) Sign(req Request, result []byte, ttl uint64) (interfaces.SignedResponse, error) {
	expires := uint64(s.now().Unix()) + ttl

	sig, err := s.key.SignDigest(MessageHash(req.Sender, expires, req.Data, result))
	if err != nil {
		return interfaces.SignedResponse{}, fmt.Errorf("could not sign response: %w", err)
	}

	return interfaces.SignedResponse{
		Result:    result,
		Expires:   expires,
		Signature: sig,
	}, nil
}

// EncodeResponse ABI-encodes the envelope as the (bytes, uint64, bytes)
// return value of resolve(bytes,bytes).
func EncodeResponse(resp interfaces.SignedResponse) ([]byte, error) {
	return method(SigResolve).Outputs.Pack(resp.Result, resp.Expires, resp.Signature)
}

// DecodeResponse is the inverse of EncodeResponse.
func DecodeResponse(data []byte) (interfaces.SignedResponse, error) {
	values, err := method(SigResolve).Outputs.Unpack(data)
	if err != nil {
		return interfaces.SignedResponse{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	result, ok1 := values[0].([]byte)
	expires, ok2 := values[1].(uint64)
	sig, ok3 := values[2].([]byte)
	if !ok1 || !ok2 || !ok3 {
		return interfaces.SignedResponse{}, fmt.Errorf("%w: unexpected response layout", ErrMalformedRequest)
	}

	return interfaces.SignedResponse{Result: result, Expires: expires, Signature: sig}, nil
}

// VerifyResponse recovers the address that signed resp for req.
func VerifyResponse(req Request, resp interfaces.SignedResponse) (common.Address, error) {
	return kms.RecoverSigner(MessageHash(req.Sender, resp.Expires, req.Data, resp.Result), resp.Signature)
}
