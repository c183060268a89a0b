package likerid

import (
	"fmt"
	"strings"
)

const (
	LikeCoSuffix    = "id.like.co"
	LikerLandSuffix = "id.liker.land"

	testnetPrefix = "rinkeby."
)

type site int

const (
	siteLikeCo site = iota
	siteLikerLand
)

// parseName extracts the Liker ID from a qualifying name. The suffix test is
// a plain string suffix match, so "alice.xid.like.co" qualifies as well.
func parseName(name string) (likerID string, s site, ok bool) {
	labels := strings.Split(name, ".")
	if len(labels) != 4 {
		return "", 0, false
	}

	switch {
	case strings.HasSuffix(name, LikerLandSuffix):
		s = siteLikerLand
	case strings.HasSuffix(name, LikeCoSuffix):
		s = siteLikeCo
	default:
		return "", 0, false
	}

	return labels[0], s, true
}

// APIBaseURL returns the identity service root for the selected network.
func APIBaseURL(testnet bool) string {
	if testnet {
		return "https://api." + testnetPrefix + "like.co"
	}
	return "https://api.like.co"
}

// profileURL is the public profile page of a Liker ID on the given site.
func profileURL(s site, testnet bool, likerID string) string {
	hostAndPath := "like.co/in"
	if s == siteLikerLand {
		hostAndPath = "liker.land"
	}
	if testnet {
		hostAndPath = testnetPrefix + hostAndPath
	}
	return fmt.Sprintf("https://%s/%s", hostAndPath, likerID)
}
