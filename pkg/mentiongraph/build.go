package mentiongraph

import (
	"strings"

	"github.com/jselig/mentionet/pkg/tweet"
)

// Options configures the graph build.
type Options struct {
	// SelfMentions includes edges where an author mentions their own
	// handle. Off by default: a self-mention says nothing about the
	// network between participants.
	SelfMentions bool
}

// BuildStats reports what the build consumed.
type BuildStats struct {
	// Tweets is the number of tweets processed (valid records).
	Tweets int
	// Skipped is the number of tweets rejected at validation
	// (missing id or author). Skips never abort the build.
	Skipped int
	// Mentions is the total number of mention occurrences recorded,
	// i.e. the sum of all edge weights.
	Mentions int
}

// Build constructs the mention graph from a tweet corpus in a single pass.
//
// For each valid tweet, every @-mention in its text becomes one increment
// of the directed edge author→mentioned. A tweet that fails validation is
// counted in BuildStats.Skipped and otherwise ignored. The node set is the
// union of the authors of all valid tweets and every mentioned handle, so
// an author whose tweets contain no mentions still appears as an isolated
// degree-0 node and counts toward graph size and density.
//
// Iterating tweets in a fixed order yields an identical graph; the build
// holds no state beyond its accumulator and runs on a single goroutine.
func Build(tweets []tweet.Tweet, opts Options) (*Graph, BuildStats) {
	g := New()
	var stats BuildStats

	for _, t := range tweets {
		if err := t.Validate(); err != nil {
			stats.Skipped++
			continue
		}
		stats.Tweets++

		// Register the author with its display spelling first: AddNode
		// keeps the first-seen label, AddMention would fall back to
		// the canonical form.
		author := t.AuthorHandle()
		_ = g.AddNode(author, strings.TrimSpace(t.Author))

		for _, m := range tweet.Mentions(t.Text) {
			if m.Handle == author && !opts.SelfMentions {
				continue
			}
			_ = g.AddNode(m.Handle, m.Display)
			// AddMention only fails on empty handles, which
			// validation and the mention pattern already exclude.
			if err := g.AddMention(author, m.Handle); err != nil {
				continue
			}
			stats.Mentions++
		}
	}

	return g, stats
}
