package likerid

import (
	"math/big"

	"github.com/likecoin/likerid-ens-gateway/ens"
	"github.com/likecoin/likerid-ens-gateway/interfaces"
)

// coinTypeField maps a coin type to the wallet field that stores it.
func coinTypeField(coinType *big.Int) (interfaces.ProfileField, bool) {
	switch {
	case ens.IsEVMCoinType(coinType):
		return interfaces.FieldEVMWallet, true
	case ens.IsCosmosCoinType(coinType):
		return interfaces.FieldCosmosWallet, true
	default:
		return "", false
	}
}

// textKeyField maps a well-known text record key to a profile field.
func textKeyField(key string) (interfaces.ProfileField, bool) {
	switch key {
	case "display":
		return interfaces.FieldDisplayName, true
	case "avatar":
		return interfaces.FieldAvatar, true
	case "email":
		return interfaces.FieldEmail, true
	case "description":
		return interfaces.FieldDescription, true
	case "addr.likecoin":
		return interfaces.FieldLikecoinWallet, true
	case "url":
		return interfaces.FieldURL, true
	default:
		return "", false
	}
}
