// Package tweet defines the tweet record consumed by the mention-network
// pipeline and the mention extraction rules applied to its text.
//
// Tweets enter the system from the Twitter search API or from the document
// store. Field presence varies across API versions, so records are validated
// at the boundary: a tweet that cannot contribute to the network (missing id
// or author) is rejected here rather than propagated half-formed into the
// graph build.
package tweet

import (
	"strings"
	"time"

	"github.com/jselig/mentionet/pkg/errors"
)

// Tweet is a single stored tweet. ID is the persistence key: the store
// upserts on it so re-fetching the same tweet never creates a duplicate.
type Tweet struct {
	ID        string         `json:"id" bson:"_id"`
	Text      string         `json:"text" bson:"text"`
	Author    string         `json:"author" bson:"author"`
	CreatedAt time.Time      `json:"created_at,omitempty" bson:"created_at,omitempty"`
	Metrics   map[string]int `json:"metrics,omitempty" bson:"metrics,omitempty"`
}

// AuthorHandle returns the canonical (lowercase, trimmed) form of the
// author's handle. Empty if the author field is missing or blank.
func (t Tweet) AuthorHandle() string {
	return Canonical(t.Author)
}

// Validate reports whether the tweet carries the fields the graph build
// requires. Text may be empty (a tweet with no text simply yields no
// mentions); id and author may not.
func (t Tweet) Validate() error {
	if t.ID == "" {
		return errors.New(errors.ErrCodeMalformedTweet, "tweet has no id")
	}
	if t.AuthorHandle() == "" {
		return errors.New(errors.ErrCodeMalformedTweet, "tweet %s has no author", t.ID)
	}
	return nil
}

// Canonical normalizes a handle for identity comparison: surrounding
// whitespace and a leading @ are stripped, the rest is lowercased.
func Canonical(handle string) string {
	h := strings.TrimSpace(handle)
	h = strings.TrimPrefix(h, "@")
	return strings.ToLower(h)
}
