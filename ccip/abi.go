package ccip

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// resolverABI covers the wildcard resolve entry point (ENSIP-10) and the
// inner resolver profiles the gateway answers.
const resolverABI = `[
	{"type":"function","name":"resolve","stateMutability":"view",
	 "inputs":[{"name":"name","type":"bytes"},{"name":"data","type":"bytes"}],
	 "outputs":[{"name":"result","type":"bytes"},{"name":"expires","type":"uint64"},{"name":"sig","type":"bytes"}]},
	{"type":"function","name":"addr","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"addr","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"coinType","type":"uint256"}],
	 "outputs":[{"name":"","type":"bytes"}]},
	{"type":"function","name":"text","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"key","type":"string"}],
	 "outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"contenthash","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"bytes"}]}
]`

// Canonical signatures of the supported functions.
const (
	SigResolve     = "resolve(bytes,bytes)"
	SigAddr        = "addr(bytes32)"
	SigAddrCoin    = "addr(bytes32,uint256)"
	SigText        = "text(bytes32,string)"
	SigContenthash = "contenthash(bytes32)"
)

var (
	parsedABI abi.ABI
	methodsBySig = map[string]*abi.Method{}
)

func init() {
	parsed, err := abi.JSON(strings.NewReader(resolverABI))
	if err != nil {
		panic(err)
	}
	parsedABI = parsed

	for name := range parsedABI.Methods {
		m := parsedABI.Methods[name]
		methodsBySig[m.Sig] = &m
	}
}

func method(sig string) *abi.Method {
	return methodsBySig[sig]
}

// Selector returns the 4-byte selector of a supported function signature.
func Selector(sig string) []byte {
	return method(sig).ID
}
