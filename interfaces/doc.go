// Package interfaces defines the core types and contracts of the ENS gateway,
// separating them from their implementations.
//
// # Resolution
//
// Query describes a single naming-service lookup (address, text record or
// content hash). A Resolver turns a Query into a ResolutionResult and never
// fails: every miss degrades to a sentinel value carrying the configured TTL.
//
// ProfileFetcher retrieves a Liker ID profile from the identity service and
// reports the result as a tagged FetchOutcome (found, not found, error).
//
// # Signing
//
// ResponseSigner holds the gateway's long-lived key. A SignedResponse is the
// envelope returned to off-chain resolution clients.
package interfaces
