// Package metrics computes degree-based statistics and rankings over a
// finished mention graph.
//
// Degrees are weighted: a node's in-degree is the total number of times it
// was mentioned (sum of incoming edge weights), not the count of distinct
// mentioners. Rankings use the same weighted degrees. Density is the one
// distinct-pair measure: distinct directed non-loop edges over n·(n−1).
package metrics

import (
	"slices"
	"strings"

	"github.com/jselig/mentionet/pkg/errors"
	"github.com/jselig/mentionet/pkg/mentiongraph"
)

// DegreeKind selects which degree measure a ranking uses.
type DegreeKind string

const (
	// DegreeIn ranks by times mentioned (most-mentioned users).
	DegreeIn DegreeKind = "in"
	// DegreeOut ranks by mentions authored (most-active mentioners).
	DegreeOut DegreeKind = "out"
	// DegreeTotal ranks by in + out.
	DegreeTotal DegreeKind = "total"
)

// ParseDegreeKind validates a degree kind string. An empty string selects
// DegreeTotal, the default.
func ParseDegreeKind(s string) (DegreeKind, error) {
	switch DegreeKind(strings.ToLower(s)) {
	case "":
		return DegreeTotal, nil
	case DegreeIn:
		return DegreeIn, nil
	case DegreeOut:
		return DegreeOut, nil
	case DegreeTotal:
		return DegreeTotal, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDegreeKind,
		"invalid degree kind: %q (must be one of: in, out, total)", s)
}

// RankingEntry is one row of a top-k ranking.
type RankingEntry struct {
	Handle string `json:"handle"`
	Score  int    `json:"score"`
}

// Summary holds corpus-level statistics for one analysis run.
type Summary struct {
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Tweets   int     `json:"tweets"`
	Skipped  int     `json:"skipped"`
	Mentions int     `json:"mentions"`
	Density  float64 `json:"density"`
}

// Degree returns the chosen weighted degree of handle.
func Degree(g *mentiongraph.Graph, handle string, kind DegreeKind) int {
	switch kind {
	case DegreeIn:
		return g.InDegree(handle)
	case DegreeOut:
		return g.OutDegree(handle)
	default:
		return g.TotalDegree(handle)
	}
}

// TopK returns the k nodes with the highest degree of the given kind.
//
// Ordering is total: descending score, then ascending handle, so the same
// corpus always produces the same ranking and TopK(k) is a prefix of
// TopK(k+1). k = 0 returns an empty slice; k larger than the node count
// returns all nodes.
func TopK(g *mentiongraph.Graph, k int, kind DegreeKind) []RankingEntry {
	if k <= 0 {
		return []RankingEntry{}
	}

	nodes := g.Nodes()
	entries := make([]RankingEntry, len(nodes))
	for i, n := range nodes {
		entries[i] = RankingEntry{Handle: n.Handle, Score: Degree(g, n.Handle, kind)}
	}
	slices.SortFunc(entries, func(a, b RankingEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Handle, b.Handle)
	})

	if k > len(entries) {
		k = len(entries)
	}
	return entries[:k]
}

// Density returns the density of the directed simple graph underlying g:
// distinct edges between different nodes over n·(n−1). Self-loop edges
// are not counted, so the result always lies in [0, 1] even when the
// build kept self-mentions. 0 when the graph has one node or fewer.
func Density(g *mentiongraph.Graph) float64 {
	n := g.NodeCount()
	if n <= 1 {
		return 0
	}
	edges := 0
	for _, e := range g.Edges() {
		if e.From != e.To {
			edges++
		}
	}
	return float64(edges) / float64(n*(n-1))
}

// Summarize combines graph shape and build statistics into a Summary.
func Summarize(g *mentiongraph.Graph, stats mentiongraph.BuildStats) Summary {
	return Summary{
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
		Tweets:   stats.Tweets,
		Skipped:  stats.Skipped,
		Mentions: stats.Mentions,
		Density:  Density(g),
	}
}
