package pipeline

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jselig/mentionet/pkg/errors"
	"github.com/jselig/mentionet/pkg/graphio"
	"github.com/jselig/mentionet/pkg/mentiongraph"
	"github.com/jselig/mentionet/pkg/metrics"
	"github.com/jselig/mentionet/pkg/render"
	"github.com/jselig/mentionet/pkg/store"
	"github.com/jselig/mentionet/pkg/tweet"
)

// Runner executes analysis runs against a tweet store.
type Runner struct {
	store store.TweetStore
}

// NewRunner creates a Runner over the given store.
func NewRunner(s store.TweetStore) *Runner {
	return &Runner{store: s}
}

// Analyze loads the full stored corpus, builds the mention graph, computes
// metrics and rankings, and writes the requested outputs.
//
// Export failure is fatal: the GraphML file is the run's explicit output.
// Render failure only adds a warning; metrics and export results are
// still returned. An empty corpus is not an error and yields zero counts.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	start := time.Now()
	tweets, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	// The store already orders by id; sort again so corpora from other
	// store implementations analyze identically.
	slices.SortFunc(tweets, func(a, b tweet.Tweet) int {
		return strings.Compare(a.ID, b.ID)
	})
	loadTime := time.Since(start)
	logger.Debug("loaded corpus", "tweets", len(tweets), "took", loadTime.Round(time.Millisecond))

	buildStart := time.Now()
	g, buildStats := mentiongraph.Build(tweets, mentiongraph.Options{
		SelfMentions: opts.SelfMentions,
	})
	buildTime := time.Since(buildStart)
	logger.Debug("built graph",
		"nodes", g.NodeCount(), "edges", g.EdgeCount(),
		"skipped", buildStats.Skipped, "took", buildTime.Round(time.Millisecond))

	result := &Result{
		Graph:    g,
		Summary:  metrics.Summarize(g, buildStats),
		Rankings: metrics.TopK(g, opts.TopK, opts.DegreeKind),
		Stats: Stats{
			LoadMillis:  loadTime.Milliseconds(),
			BuildMillis: buildTime.Milliseconds(),
		},
	}

	if opts.ExportPath != "" {
		exportStart := time.Now()
		if err := graphio.ExportFile(g, opts.ExportPath); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err,
				"export graph after processing %d tweets", result.Summary.Tweets)
		}
		result.Stats.ExportMillis = time.Since(exportStart).Milliseconds()
		logger.Debug("exported graph", "path", opts.ExportPath)
	}

	if opts.ImagePath != "" {
		renderStart := time.Now()
		dot := render.ToDOT(g, render.Options{Weights: true})
		if err := render.WritePNGFile(ctx, dot, opts.ImagePath); err != nil {
			rerr := errors.Wrap(errors.ErrCodeRenderFailed, err, "render image")
			result.Warnings = append(result.Warnings, rerr.Error())
			logger.Warn("image render failed", "path", opts.ImagePath, "err", rerr)
		} else {
			logger.Debug("rendered image", "path", opts.ImagePath)
		}
		result.Stats.RenderMillis = time.Since(renderStart).Milliseconds()
	}

	return result, nil
}
