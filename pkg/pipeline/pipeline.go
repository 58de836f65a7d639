// Package pipeline orchestrates the analysis: load the stored corpus,
// build the mention graph, compute metrics, export GraphML and optionally
// render a PNG.
//
// The pipeline is a synchronous single pass. The corpus is read fully
// before the build starts; the finished graph is handed read-only to the
// metrics and export stages, so no stage needs locking. The same Runner
// serves the CLI and the HTTP API so both see identical behavior.
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/jselig/mentionet/pkg/errors"
	"github.com/jselig/mentionet/pkg/mentiongraph"
	"github.com/jselig/mentionet/pkg/metrics"
)

// DefaultTopK is the ranking length when none is requested.
const DefaultTopK = 10

// Options configures one analysis run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// TopK is the ranking length. 0 after defaulting means "none
	// requested" was overridden to DefaultTopK; negative is invalid.
	TopK int `json:"top_k,omitempty"`

	// DegreeKind selects the ranking measure (in, out, total).
	DegreeKind metrics.DegreeKind `json:"degree_kind,omitempty"`

	// ExportPath, when set, writes the graph as GraphML. A failed export
	// fails the run.
	ExportPath string `json:"export_path,omitempty"`

	// ImagePath, when set, renders a PNG of the graph. A failed render
	// is reported as a warning, never fails the run.
	ImagePath string `json:"image_path,omitempty"`

	// SelfMentions includes author-mentions-self edges.
	SelfMentions bool `json:"self_mentions,omitempty"`

	// Logger receives progress output. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`

	// topKSet distinguishes an explicit 0 from an unset value.
	topKSet bool `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// SetTopK sets the ranking length explicitly. Unlike assigning the field,
// this records that 0 means "no ranking" rather than "use the default".
func (o *Options) SetTopK(k int) {
	o.TopK = k
	o.topKSet = true
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.TopK < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top_k must be >= 0, got %d", o.TopK)
	}
	if o.TopK == 0 && !o.topKSet {
		o.TopK = DefaultTopK
	}

	kind, err := metrics.ParseDegreeKind(string(o.DegreeKind))
	if err != nil {
		return err
	}
	o.DegreeKind = kind

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of one analysis run.
type Result struct {
	// Graph is the finished mention graph (read-only from here on).
	Graph *mentiongraph.Graph `json:"-"`

	// Summary holds corpus-level statistics.
	Summary metrics.Summary `json:"summary"`

	// Rankings is the top-k ranking by the requested degree kind.
	Rankings []metrics.RankingEntry `json:"rankings"`

	// Warnings lists non-fatal failures (e.g. the PNG render).
	Warnings []string `json:"warnings,omitempty"`

	// Stats contains timing information.
	Stats Stats `json:"stats"`
}

// Stats contains pipeline execution timings.
type Stats struct {
	LoadMillis   int64 `json:"load_ms"`
	BuildMillis  int64 `json:"build_ms"`
	ExportMillis int64 `json:"export_ms,omitempty"`
	RenderMillis int64 `json:"render_ms,omitempty"`
}
