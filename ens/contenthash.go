package ens

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-varint"
)

// Multicodec namespace codes used by ENSIP-7 content hashes.
const (
	codecIPFS = 0xe3
	codecIPNS = 0xe5
)

// DecodeContentHash renders a content hash as a URI. An empty hash decodes
// to the empty string.
func DecodeContentHash(hash []byte) (string, error) {
	if len(hash) == 0 {
		return "", nil
	}

	codec, n, err := varint.FromUvarint(hash)
	if err != nil {
		return "", fmt.Errorf("invalid content hash codec: %w", err)
	}

	var scheme string
	switch codec {
	case codecIPFS:
		scheme = "ipfs"
	case codecIPNS:
		scheme = "ipns"
	default:
		return "", fmt.Errorf("unsupported content hash codec 0x%x", codec)
	}

	c, err := cid.Cast(hash[n:])
	if err != nil {
		return "", fmt.Errorf("invalid content hash cid: %w", err)
	}

	return scheme + "://" + c.String(), nil
}

// EncodeContentHash is the inverse of DecodeContentHash.
func EncodeContentHash(uri string) ([]byte, error) {
	if uri == "" {
		return []byte{}, nil
	}

	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return nil, fmt.Errorf("content hash %q has no scheme", uri)
	}

	var codec uint64
	switch scheme {
	case "ipfs":
		codec = codecIPFS
	case "ipns":
		codec = codecIPNS
	default:
		return nil, fmt.Errorf("unsupported content hash scheme %q", scheme)
	}

	c, err := cid.Decode(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid cid %q: %w", rest, err)
	}

	return append(varint.ToUvarint(codec), c.Bytes()...), nil
}
