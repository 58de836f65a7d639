package graphio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jselig/mentionet/pkg/mentiongraph"
	"github.com/jselig/mentionet/pkg/tweet"
)

func sampleGraph(t *testing.T) *mentiongraph.Graph {
	t.Helper()
	g, _ := mentiongraph.Build([]tweet.Tweet{
		{ID: "1", Author: "Alice", Text: "hi @Bob"},
		{ID: "2", Author: "alice", Text: "again @bob"},
		{ID: "3", Author: "bob", Text: "@carol"},
	}, mentiongraph.Options{})
	return g
}

func TestWriteRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount = %d, want %d", got.NodeCount(), g.NodeCount())
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
	for _, e := range g.Edges() {
		if w := got.Weight(e.From, e.To); w != e.Weight {
			t.Errorf("Weight(%s, %s) = %d, want %d", e.From, e.To, w, e.Weight)
		}
	}
	for _, n := range g.Nodes() {
		gn, ok := got.Node(n.Handle)
		if !ok {
			t.Errorf("node %s missing after round trip", n.Handle)
			continue
		}
		if gn.DisplayLabel() != n.DisplayLabel() {
			t.Errorf("label of %s = %q, want %q", n.Handle, gn.DisplayLabel(), n.DisplayLabel())
		}
	}
}

func TestWriteDeterministic(t *testing.T) {
	g := sampleGraph(t)

	var a, b bytes.Buffer
	if err := Write(g, &a); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(g, &b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two writes of the same graph produced different bytes")
	}
}

func TestWriteDeclaresSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sampleGraph(t), &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`xmlns="http://graphml.graphdrawing.org/xmlns"`,
		`edgedefault="directed"`,
		`attr.name="weight"`,
		`attr.name="handle"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestReadDefaultsWeight(t *testing.T) {
	// Unweighted GraphML from another tool: edges import with weight 1.
	doc := `<?xml version="1.0"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <graph edgedefault="directed">
    <node id="alice"></node>
    <node id="bob"></node>
    <edge source="alice" target="bob"></edge>
  </graph>
</graphml>`

	g, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := g.Weight("alice", "bob"); got != 1 {
		t.Errorf("Weight = %d, want 1", got)
	}
}

func TestReadForeignKeyIDs(t *testing.T) {
	// Key ids differ from ours; resolution goes through attr.name.
	doc := `<?xml version="1.0"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="w9" for="edge" attr.name="weight" attr.type="long"/>
  <graph edgedefault="directed">
    <node id="alice"></node>
    <node id="bob"></node>
    <edge source="alice" target="bob"><data key="w9">7</data></edge>
  </graph>
</graphml>`

	g, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := g.Weight("alice", "bob"); got != 7 {
		t.Errorf("Weight = %d, want 7", got)
	}
}

func TestReadInvalidWeight(t *testing.T) {
	doc := `<?xml version="1.0"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="d2" for="edge" attr.name="weight" attr.type="long"/>
  <graph edgedefault="directed">
    <node id="a"></node>
    <node id="b"></node>
    <edge source="a" target="b"><data key="d2">lots</data></edge>
  </graph>
</graphml>`

	if _, err := Read(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for non-numeric weight")
	}
}

func TestExportImportFile(t *testing.T) {
	g := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "mentions.graphml")

	if err := ExportFile(g, path); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}

	got, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
}

func TestExportFileBadPath(t *testing.T) {
	g := sampleGraph(t)
	if err := ExportFile(g, filepath.Join(t.TempDir(), "no-such-dir", "out.graphml")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
