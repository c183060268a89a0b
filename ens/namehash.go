package ens

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
	"golang.org/x/net/idna"
)

// Leading and trailing hyphens are valid in ENS labels, so the hyphen rules
// of MapForLookup are switched off. Joiner and bidi validation stay on.
var profile = idna.New(
	idna.MapForLookup(),
	idna.CheckHyphens(false),
	idna.StrictDomainName(false),
	idna.Transitional(false),
)

// Normalize maps a name to its canonical lookup form.
func Normalize(name string) (string, error) {
	out, err := profile.ToUnicode(name)
	if err != nil {
		return "", fmt.Errorf("cannot normalize %q: %w", name, err)
	}

	return strings.TrimSuffix(out, "."), nil
}

// NameHash computes the ENS namehash of an already normalised name.
func NameHash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}

	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := keccak256([]byte(labels[i]))
		node = common.BytesToHash(keccak256(node[:], labelHash))
	}

	return node
}

func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}
