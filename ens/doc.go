// Package ens implements the naming-service encodings the gateway speaks:
// name normalisation and namehash, DNS wire-format names as used by wildcard
// resolution (ENSIP-10), binary coin addresses (ENSIP-9, ENSIP-11) and
// content hashes (ENSIP-7).
package ens
