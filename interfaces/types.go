package interfaces

import (
	"fmt"
	"math/big"
)

// RecordType enumerates the resolver record kinds served by the gateway.
type RecordType int

const (
	RecordAddr RecordType = iota
	RecordText
	RecordContenthash
)

func (t RecordType) String() string {
	switch t {
	case RecordAddr:
		return "addr"
	case RecordText:
		return "text"
	case RecordContenthash:
		return "contenthash"
	default:
		return fmt.Sprintf("RecordType(%d)", int(t))
	}
}

// Query is a single resolution request. CoinType is only meaningful for
// RecordAddr, TextKey only for RecordText.
type Query struct {
	Name     string
	Type     RecordType
	CoinType *big.Int
	TextKey  string
}

func AddrQuery(name string, coinType *big.Int) Query {
	return Query{Name: name, Type: RecordAddr, CoinType: coinType}
}

func TextQuery(name string, key string) Query {
	return Query{Name: name, Type: RecordText, TextKey: key}
}

func ContenthashQuery(name string) Query {
	return Query{Name: name, Type: RecordContenthash}
}

// ProfileField names a field of the identity service's user record.
type ProfileField string

const (
	FieldEVMWallet      ProfileField = "evmWallet"
	FieldCosmosWallet   ProfileField = "cosmosWallet"
	FieldDisplayName    ProfileField = "displayName"
	FieldAvatar         ProfileField = "avatar"
	FieldEmail          ProfileField = "email"
	FieldDescription    ProfileField = "description"
	FieldLikecoinWallet ProfileField = "likecoinWallet"
	FieldURL            ProfileField = "url"
)

// ProfileFields lists every field a Profile carries, in a stable order.
var ProfileFields = []ProfileField{
	FieldEVMWallet,
	FieldCosmosWallet,
	FieldDisplayName,
	FieldAvatar,
	FieldEmail,
	FieldDescription,
	FieldLikecoinWallet,
	FieldURL,
}

// Profile is a Liker ID user record. Empty strings mean the field is absent.
// Profiles are fetched per query and never cached.
type Profile struct {
	EVMWallet      string
	CosmosWallet   string
	DisplayName    string
	Avatar         string
	Email          string
	Description    string
	LikecoinWallet string
	URL            string
}

// Field returns the value of f, or the empty string for unknown fields.
func (p *Profile) Field(f ProfileField) string {
	if p == nil {
		return ""
	}
	switch f {
	case FieldEVMWallet:
		return p.EVMWallet
	case FieldCosmosWallet:
		return p.CosmosWallet
	case FieldDisplayName:
		return p.DisplayName
	case FieldAvatar:
		return p.Avatar
	case FieldEmail:
		return p.Email
	case FieldDescription:
		return p.Description
	case FieldLikecoinWallet:
		return p.LikecoinWallet
	case FieldURL:
		return p.URL
	default:
		return ""
	}
}

// SetField assigns v to f. Unknown fields are ignored.
func (p *Profile) SetField(f ProfileField, v string) {
	switch f {
	case FieldEVMWallet:
		p.EVMWallet = v
	case FieldCosmosWallet:
		p.CosmosWallet = v
	case FieldDisplayName:
		p.DisplayName = v
	case FieldAvatar:
		p.Avatar = v
	case FieldEmail:
		p.Email = v
	case FieldDescription:
		p.Description = v
	case FieldLikecoinWallet:
		p.LikecoinWallet = v
	case FieldURL:
		p.URL = v
	}
}

// Sentinel record values returned on any miss.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

var EmptyContentHash = []byte{}

// ResolutionResult is the raw output of a Resolver.
//
// Value holds the textual address for RecordAddr, UTF-8 text for RecordText
// and the binary content hash for RecordContenthash. TTL is in seconds.
type ResolutionResult struct {
	Value []byte
	TTL   uint64
}

// SignedResponse is the envelope relayed back to the off-chain resolution
// client: the ABI-encoded inner result, its expiry and the gateway signature.
type SignedResponse struct {
	Result    []byte
	Expires   uint64
	Signature []byte
}
