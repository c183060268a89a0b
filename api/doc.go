/*
Package api holds the types shared between the gateway HTTP surface and its
clients.

The gateway implements the server side of an EIP-3668 (CCIP-read) off-chain
lookup. A resolver contract on chain reverts with OffchainLookup, the client
relays the revert's callData to the gateway and receives a signed response
that it passes back to the contract's callback for verification.

# Subpackages

  - gateway: the HTTP handler answering lookups and the client used by the
    operator tooling.

Server lifecycle (routing, health checks, draining, CORS and rate limiting)
lives in the httpserver package and is configured with HTTPServerConfig.
*/
package api
