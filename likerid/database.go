package likerid

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"github.com/likecoin/likerid-ens-gateway/interfaces"
	"github.com/likecoin/likerid-ens-gateway/metrics"
)

// Database resolves queries against Liker ID profiles. It implements
// interfaces.Resolver and is safe for concurrent use.
type Database struct {
	ttl     uint64
	testnet bool
	fetcher interfaces.ProfileFetcher
	log     *slog.Logger
}

// NewDatabase creates a resolver attaching ttl (seconds) to every result.
// testnet selects the rinkeby profile hosts.
func NewDatabase(ttl uint64, testnet bool, fetcher interfaces.ProfileFetcher, log *slog.Logger) *Database {
	return &Database{
		ttl:     ttl,
		testnet: testnet,
		fetcher: fetcher,
		log:     log,
	}
}

func (d *Database) Resolve(ctx context.Context, q interfaces.Query) interfaces.ResolutionResult {
	switch q.Type {
	case interfaces.RecordAddr:
		return d.Addr(ctx, q.Name, q.CoinType)
	case interfaces.RecordText:
		return d.Text(ctx, q.Name, q.TextKey)
	default:
		return d.Contenthash(ctx, q.Name)
	}
}

// Addr returns the wallet address stored for coinType, or the zero address.
func (d *Database) Addr(ctx context.Context, name string, coinType *big.Int) interfaces.ResolutionResult {
	field, ok := coinTypeField(coinType)
	if !ok {
		return d.result([]byte(interfaces.ZeroAddress))
	}

	profile := d.findLikerID(ctx, name)
	value := profile.Field(field)
	if value == "" {
		return d.result([]byte(interfaces.ZeroAddress))
	}

	return d.result([]byte(value))
}

// Text returns the text record for key, or the empty string.
func (d *Database) Text(ctx context.Context, name string, key string) interfaces.ResolutionResult {
	field, ok := textKeyField(key)
	if !ok {
		return d.result([]byte{})
	}

	profile := d.findLikerID(ctx, name)
	return d.result([]byte(profile.Field(field)))
}

// Contenthash always returns the empty content hash; Liker IDs do not host content.
func (d *Database) Contenthash(_ context.Context, _ string) interfaces.ResolutionResult {
	return d.result(interfaces.EmptyContentHash)
}

func (d *Database) result(value []byte) interfaces.ResolutionResult {
	return interfaces.ResolutionResult{Value: value, TTL: d.ttl}
}

// findLikerID returns the profile behind name, or nil on any miss.
func (d *Database) findLikerID(ctx context.Context, name string) *interfaces.Profile {
	likerID, s, ok := parseName(name)
	if !ok {
		return nil
	}

	defaults := interfaces.Profile{URL: profileURL(s, d.testnet, likerID)}

	start := time.Now()
	outcome := d.fetcher.FetchProfile(ctx, likerID, defaults)
	metrics.ObserveProfileFetch(outcome.Status.String(), time.Since(start))

	switch outcome.Status {
	case interfaces.FetchFound:
		return outcome.Profile
	case interfaces.FetchNotFound:
		return nil
	default:
		d.log.Error("Failed to resolve liker id", "name", name, "err", outcome.Err)
		return nil
	}
}
