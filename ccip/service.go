package ccip

import (
	"context"

	"github.com/likecoin/likerid-ens-gateway/interfaces"
	"github.com/likecoin/likerid-ens-gateway/metrics"
)

// Service answers off-chain lookups: it decodes the request, resolves it and
// returns the signed, ABI-encoded envelope.
type Service struct {
	resolver interfaces.Resolver
	signer   *Signer
}

func NewService(resolver interfaces.Resolver, signer *Signer) *Service {
	return &Service{resolver: resolver, signer: signer}
}

// Signer exposes the service signer, mainly for its address.
func (s *Service) Signer() *Signer {
	return s.signer
}

// Handle returns the encoded response for req. Errors are returned only for
// requests that cannot be decoded; resolution misses are signed sentinels.
func (s *Service) Handle(ctx context.Context, req Request) ([]byte, error) {
	call, err := DecodeCall(req.Data)
	if err != nil {
		return nil, err
	}

	res := s.resolver.Resolve(ctx, call.Query)
	metrics.IncQuery(call.Query.Type.String(), !isSentinel(call.Query.Type, res.Value))

	result, err := call.EncodeResult(res)
	if err != nil {
		return nil, err
	}

	resp, err := s.signer.Sign(req, result, res.TTL)
	if err != nil {
		return nil, err
	}

	return EncodeResponse(resp)
}

func isSentinel(t interfaces.RecordType, value []byte) bool {
	switch t {
	case interfaces.RecordAddr:
		return string(value) == interfaces.ZeroAddress
	default:
		return len(value) == 0
	}
}
