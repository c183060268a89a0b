package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

const offchainResolverABI = `[
	{"type":"function","name":"signers","stateMutability":"view",
	 "inputs":[{"name":"","type":"address"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"url","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"string"}]}
]`

var resolverABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(offchainResolverABI))
	if err != nil {
		panic(err)
	}
	resolverABI = parsed
}

// OffchainResolverClient reads the configuration of an OffchainResolver
// deployment.
type OffchainResolverClient struct {
	contract *bind.BoundContract
	address  common.Address
}

func NewOffchainResolverClient(caller bind.ContractCaller, address common.Address) *OffchainResolverClient {
	return &OffchainResolverClient{
		contract: bind.NewBoundContract(address, resolverABI, caller, nil, nil),
		address:  address,
	}
}

func (c *OffchainResolverClient) Address() common.Address {
	return c.address
}

// IsSigner reports whether the contract accepts responses signed by signer.
func (c *OffchainResolverClient) IsSigner(ctx context.Context, signer common.Address) (bool, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "signers", signer); err != nil {
		return false, fmt.Errorf("could not call signers: %w", err)
	}

	allowed, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected signers result %T", out[0])
	}
	return allowed, nil
}

// URL returns the gateway URL template advertised in OffchainLookup reverts.
func (c *OffchainResolverClient) URL(ctx context.Context) (string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "url"); err != nil {
		return "", fmt.Errorf("could not call url: %w", err)
	}

	url, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected url result %T", out[0])
	}
	return url, nil
}
