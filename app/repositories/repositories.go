// Package repositories holds the per-collection data access types. Each
// repository wraps one Mongo collection from the injected store; none of
// them keep state beyond the collection handle.
package repositories

import "errors"

// ErrNotFound is returned by lookups that must distinguish a missing
// document from an empty one (e.g. the role check). Plain finds stay
// lenient and return a nil document instead.
var ErrNotFound = errors.New("repositories: document not found")

// UpsertResult mirrors the store's write acknowledgment for an upsert.
type UpsertResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}
