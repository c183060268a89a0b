package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Resolver answers naming queries. Implementations never return an error;
// all failure paths yield a sentinel value with the configured TTL.
type Resolver interface {
	Resolve(ctx context.Context, q Query) ResolutionResult
}

// FetchStatus tags the result of a profile lookup.
type FetchStatus int

const (
	FetchFound FetchStatus = iota
	FetchNotFound
	FetchError
)

func (s FetchStatus) String() string {
	switch s {
	case FetchFound:
		return "found"
	case FetchNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// FetchOutcome is the tagged result of ProfileFetcher.FetchProfile.
// Profile is set only for FetchFound, Err only for FetchError.
type FetchOutcome struct {
	Status  FetchStatus
	Profile *Profile
	Err     error
}

func Found(p *Profile) FetchOutcome { return FetchOutcome{Status: FetchFound, Profile: p} }

func NotFound() FetchOutcome { return FetchOutcome{Status: FetchNotFound} }

func FetchFailed(err error) FetchOutcome { return FetchOutcome{Status: FetchError, Err: err} }

// ProfileFetcher retrieves a user profile from the identity service.
//
// defaults seeds the returned profile; any field present in the upstream
// payload overrides the corresponding default.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, likerID string, defaults Profile) FetchOutcome
}

// ResponseSigner holds the gateway signing key.
type ResponseSigner interface {
	// Address is the Ethereum address derived from the signing key.
	Address() common.Address

	// SignDigest returns a 64-byte compact (r || vs) signature over digest.
	SignDigest(digest [32]byte) ([]byte, error)
}
