// Package gateway serves EIP-3668 off-chain lookups over HTTP and provides
// the matching client.
//
// Two request forms are accepted, as produced by CCIP-read clients:
//
//	GET  /{sender}/{callData}.json
//	POST /   {"sender": "0x..", "data": "0x.."}
//
// Both answer {"data": "0x.."} with the ABI-encoded (bytes,uint64,bytes)
// envelope, or {"message": ".."} with a 4xx/5xx status.
package gateway
