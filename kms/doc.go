// Package kms holds the gateway's signing key.
//
// Key custody is external: the key is supplied on the command line, either
// directly as hex or as "@path" pointing at a file holding the hex key. The
// key is loaded once at startup; a malformed key is fatal.
//
// Signatures use the EIP-2098 compact encoding expected by the ENS
// OffchainResolver's signature verifier.
package kms
