// Package ccip implements the gateway side of ENS off-chain resolution
// (EIP-3668 CCIP-read with the ENS OffchainResolver signing scheme).
//
// A request carries resolve(bytes name, bytes data) calldata, where name is
// DNS wire-encoded and data is an inner resolver call. Supported inner calls:
//
//   - addr(bytes32)
//   - addr(bytes32,uint256)
//   - text(bytes32,string)
//   - contenthash(bytes32)
//
// The response is the ABI encoding of (bytes result, uint64 expires, bytes sig)
// where sig is a compact signature over
//
//	keccak256(0x1900 || sender || expires || keccak256(callData) || keccak256(result))
package ccip
