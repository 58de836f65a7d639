// Package store persists tweets in a document store.
//
// The store is keyed by tweet id, so fetching the same tweet twice results
// in exactly one stored copy. MongoStore is the production backend
// (matching the demo.tweet_collection deployment); MemoryStore backs tests
// and offline analysis of pre-loaded corpora.
package store

import (
	"context"

	"github.com/jselig/mentionet/pkg/tweet"
)

// Default Mongo locations for the demo deployment.
const (
	DefaultDatabase   = "demo"
	DefaultCollection = "tweet_collection"
)

// UpsertStats reports the outcome of an upsert batch.
type UpsertStats struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// TweetStore is the persistence boundary for tweets. Implementations must
// give FindAll a stable order (ascending id) so analysis runs over the
// same corpus are reproducible.
type TweetStore interface {
	// FindAll returns the full stored corpus ordered by id.
	FindAll(ctx context.Context) ([]tweet.Tweet, error)

	// Upsert stores the tweets keyed by id, replacing fields of existing
	// documents. Counts how many were new vs. already present.
	Upsert(ctx context.Context, tweets []tweet.Tweet) (UpsertStats, error)

	// Count returns the number of stored tweets.
	Count(ctx context.Context) (int64, error)

	// Close releases the underlying connection, if any.
	Close(ctx context.Context) error
}
