package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jselig/mentionet/pkg/errors"
	"github.com/jselig/mentionet/pkg/graphio"
	"github.com/jselig/mentionet/pkg/metrics"
	"github.com/jselig/mentionet/pkg/store"
	"github.com/jselig/mentionet/pkg/tweet"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		setTopK  *int
		wantErr  bool
		wantTopK int
		wantKind metrics.DegreeKind
	}{
		{
			name:     "Defaults",
			opts:     Options{},
			wantTopK: DefaultTopK,
			wantKind: metrics.DegreeTotal,
		},
		{
			name:     "ExplicitValues",
			opts:     Options{TopK: 5, DegreeKind: metrics.DegreeIn},
			wantTopK: 5,
			wantKind: metrics.DegreeIn,
		},
		{
			name:    "NegativeTopK",
			opts:    Options{TopK: -1},
			wantErr: true,
		},
		{
			name:    "InvalidKind",
			opts:    Options{DegreeKind: "sideways"},
			wantErr: true,
		},
		{
			name:     "ExplicitZeroMeansNoRanking",
			opts:     Options{},
			setTopK:  intPtr(0),
			wantTopK: 0,
			wantKind: metrics.DegreeTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			if tt.setTopK != nil {
				opts.SetTopK(*tt.setTopK)
			}

			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if opts.TopK != tt.wantTopK {
				t.Errorf("TopK = %d, want %d", opts.TopK, tt.wantTopK)
			}
			if opts.DegreeKind != tt.wantKind {
				t.Errorf("DegreeKind = %s, want %s", opts.DegreeKind, tt.wantKind)
			}
			if opts.Logger == nil {
				t.Error("Logger should default to a discard logger")
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func TestValidateIdempotent(t *testing.T) {
	opts := Options{TopK: 3}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	// A second call must not re-apply defaults or fail.
	opts.TopK = 0
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if opts.TopK != 0 {
		t.Errorf("TopK = %d, want 0 (second validate must be a no-op)", opts.TopK)
	}
}

func testCorpus() []tweet.Tweet {
	return []tweet.Tweet{
		{ID: "1", Author: "alice", Text: "hi @bob"},
		{ID: "2", Author: "alice", Text: "again @bob"},
		{ID: "3", Author: "carol", Text: "hello @Alice"},
		{ID: "4", Author: "", Text: "@nobody sees this"},
	}
}

func TestAnalyze(t *testing.T) {
	r := NewRunner(store.NewMemoryStore(testCorpus()...))

	result, err := r.Analyze(context.Background(), Options{TopK: 2, DegreeKind: metrics.DegreeIn})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Summary.Tweets != 3 {
		t.Errorf("Tweets = %d, want 3", result.Summary.Tweets)
	}
	if result.Summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Summary.Skipped)
	}
	if result.Summary.Nodes != 3 {
		t.Errorf("Nodes = %d, want 3", result.Summary.Nodes)
	}
	if result.Summary.Edges != 2 {
		t.Errorf("Edges = %d, want 2", result.Summary.Edges)
	}

	if len(result.Rankings) != 2 {
		t.Fatalf("Rankings has %d entries, want 2", len(result.Rankings))
	}
	if result.Rankings[0].Handle != "bob" || result.Rankings[0].Score != 2 {
		t.Errorf("top entry = %+v, want bob with score 2", result.Rankings[0])
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	r := NewRunner(store.NewMemoryStore())

	result, err := r.Analyze(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Summary.Nodes != 0 || result.Summary.Edges != 0 {
		t.Errorf("summary = %+v, want zero counts", result.Summary)
	}
	if len(result.Rankings) != 0 {
		t.Errorf("Rankings = %v, want empty", result.Rankings)
	}
	if result.Summary.Density != 0 {
		t.Errorf("Density = %g, want 0", result.Summary.Density)
	}
}

func TestAnalyzeExport(t *testing.T) {
	r := NewRunner(store.NewMemoryStore(testCorpus()...))
	path := filepath.Join(t.TempDir(), "out.graphml")

	result, err := r.Analyze(context.Background(), Options{ExportPath: path})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	g, err := graphio.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if g.EdgeCount() != result.Summary.Edges {
		t.Errorf("exported edges = %d, want %d", g.EdgeCount(), result.Summary.Edges)
	}
	if g.Weight("alice", "bob") != 2 {
		t.Errorf("exported Weight(alice, bob) = %d, want 2", g.Weight("alice", "bob"))
	}
}

func TestAnalyzeExportFailureIsFatal(t *testing.T) {
	r := NewRunner(store.NewMemoryStore(testCorpus()...))
	path := filepath.Join(t.TempDir(), "missing-dir", "out.graphml")

	_, err := r.Analyze(context.Background(), Options{ExportPath: path})
	if err == nil {
		t.Fatal("expected error for unwritable export path")
	}
	if !errors.Is(err, errors.ErrCodeExportFailed) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeExportFailed)
	}
}

func TestAnalyzeRenderFailureIsWarning(t *testing.T) {
	r := NewRunner(store.NewMemoryStore(testCorpus()...))
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "out.graphml")
	imagePath := filepath.Join(dir, "missing-dir", "out.png")

	result, err := r.Analyze(context.Background(), Options{
		ExportPath: exportPath,
		ImagePath:  imagePath,
	})
	if err != nil {
		t.Fatalf("Analyze should not fail on render problems: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a render warning")
	}
	if !strings.Contains(result.Warnings[0], string(errors.ErrCodeRenderFailed)) {
		t.Errorf("warning %q should carry the %s code", result.Warnings[0], errors.ErrCodeRenderFailed)
	}

	// The export must have succeeded regardless.
	if _, err := os.Stat(exportPath); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestAnalyzeSelfMentions(t *testing.T) {
	corpus := []tweet.Tweet{
		{ID: "1", Author: "alice", Text: "note to @alice"},
	}

	r := NewRunner(store.NewMemoryStore(corpus...))

	result, err := r.Analyze(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Summary.Edges != 0 {
		t.Errorf("Edges = %d, want 0 without self-mentions", result.Summary.Edges)
	}

	result, err = r.Analyze(context.Background(), Options{SelfMentions: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Summary.Edges != 1 {
		t.Errorf("Edges = %d, want 1 with self-mentions", result.Summary.Edges)
	}
}
