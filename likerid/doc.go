// Package likerid resolves ENS names under id.like.co and id.liker.land
// against the Liker ID identity service.
//
// A name qualifies when it has exactly four labels and ends with one of the
// two suffixes; its leftmost label is the Liker ID. Each qualifying query
// issues a single GET /users/id/<id>/min to the identity API. Nothing is
// cached: the TTL attached to every result is advisory metadata for clients.
//
// All failures degrade to sentinel values. Only upstream failures other than
// 404 are logged.
package likerid
