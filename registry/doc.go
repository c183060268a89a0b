// Package registry reads the on-chain OffchainResolver contract that points
// ENS clients at the gateway.
//
// The contract stores the gateway URL template and the set of addresses
// whose signatures its callback accepts. The operator tooling uses this
// package to confirm that a running gateway signs with an authorized key
// and that the contract advertises the expected URL.
//
// Only read-only calls are issued; any bind.ContractCaller works, typically
// an *ethclient.Client.
package registry
