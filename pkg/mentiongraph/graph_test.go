package mentiongraph

import (
	"testing"
)

func TestAddMention(t *testing.T) {
	g := New()

	if err := g.AddMention("alice", "bob"); err != nil {
		t.Fatalf("AddMention: %v", err)
	}
	if err := g.AddMention("alice", "bob"); err != nil {
		t.Fatalf("AddMention: %v", err)
	}
	if err := g.AddMention("bob", "alice"); err != nil {
		t.Fatalf("AddMention: %v", err)
	}

	if got := g.Weight("alice", "bob"); got != 2 {
		t.Errorf("Weight(alice, bob) = %d, want 2", got)
	}
	if got := g.Weight("bob", "alice"); got != 1 {
		t.Errorf("Weight(bob, alice) = %d, want 1", got)
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("NodeCount = %d, want 2", got)
	}
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount = %d, want 2", got)
	}
}

func TestAddMentionEmptyHandle(t *testing.T) {
	g := New()
	if err := g.AddMention("", "bob"); err != ErrEmptyHandle {
		t.Errorf("AddMention with empty author = %v, want ErrEmptyHandle", err)
	}
	if err := g.AddMention("alice", "  "); err != ErrEmptyHandle {
		t.Errorf("AddMention with blank target = %v, want ErrEmptyHandle", err)
	}
}

func TestWeightedDegrees(t *testing.T) {
	g := New()
	// alice mentions bob twice and carol once; dave mentions alice once.
	g.AddMention("alice", "bob")
	g.AddMention("alice", "bob")
	g.AddMention("alice", "carol")
	g.AddMention("dave", "alice")

	tests := []struct {
		handle              string
		wantIn, wantOut     int
		wantTotal           int
	}{
		{"alice", 1, 3, 4},
		{"bob", 2, 0, 2},
		{"carol", 1, 0, 1},
		{"dave", 0, 1, 1},
		{"ghost", 0, 0, 0},
	}

	for _, tt := range tests {
		if got := g.InDegree(tt.handle); got != tt.wantIn {
			t.Errorf("InDegree(%s) = %d, want %d", tt.handle, got, tt.wantIn)
		}
		if got := g.OutDegree(tt.handle); got != tt.wantOut {
			t.Errorf("OutDegree(%s) = %d, want %d", tt.handle, got, tt.wantOut)
		}
		if got := g.TotalDegree(tt.handle); got != tt.wantTotal {
			t.Errorf("TotalDegree(%s) = %d, want %d", tt.handle, got, tt.wantTotal)
		}
	}
}

func TestAddNodeKeepsFirstLabel(t *testing.T) {
	g := New()
	g.AddNode("alice", "Alice")
	g.AddNode("alice", "ALICE")

	n, ok := g.Node("alice")
	if !ok {
		t.Fatal("node alice not found")
	}
	if n.Label != "Alice" {
		t.Errorf("Label = %q, want %q", n.Label, "Alice")
	}
}

func TestNodeLookupCanonicalizes(t *testing.T) {
	g := New()
	g.AddNode("Alice", "Alice")

	if !g.HasNode("alice") {
		t.Error("HasNode(alice) = false, want true")
	}
	if !g.HasNode("  ALICE ") {
		t.Error("HasNode with whitespace and caps = false, want true")
	}
	if g.HasNode("bob") {
		t.Error("HasNode(bob) = true, want false")
	}
}

func TestSetWeight(t *testing.T) {
	g := New()
	g.AddMention("alice", "bob")
	g.AddMention("alice", "bob")

	if err := g.SetWeight("alice", "bob", 5); err != nil {
		t.Fatalf("SetWeight: %v", err)
	}
	if got := g.Weight("alice", "bob"); got != 5 {
		t.Errorf("Weight = %d, want 5", got)
	}
	if got := g.OutDegree("alice"); got != 5 {
		t.Errorf("OutDegree(alice) = %d, want 5", got)
	}
	if got := g.InDegree("bob"); got != 5 {
		t.Errorf("InDegree(bob) = %d, want 5", got)
	}

	// Non-positive weight removes the edge but keeps the nodes.
	if err := g.SetWeight("alice", "bob", 0); err != nil {
		t.Fatalf("SetWeight: %v", err)
	}
	if got := g.EdgeCount(); got != 0 {
		t.Errorf("EdgeCount after removal = %d, want 0", got)
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("NodeCount after removal = %d, want 2", got)
	}
	if got := g.OutDegree("alice"); got != 0 {
		t.Errorf("OutDegree(alice) after removal = %d, want 0", got)
	}
}

func TestNodesSorted(t *testing.T) {
	g := New()
	g.AddNode("carol", "")
	g.AddNode("alice", "")
	g.AddNode("bob", "")

	nodes := g.Nodes()
	want := []string{"alice", "bob", "carol"}
	if len(nodes) != len(want) {
		t.Fatalf("Nodes() returned %d nodes, want %d", len(nodes), len(want))
	}
	for i, h := range want {
		if nodes[i].Handle != h {
			t.Errorf("nodes[%d].Handle = %q, want %q", i, nodes[i].Handle, h)
		}
	}
}

func TestEdgesSorted(t *testing.T) {
	g := New()
	g.AddMention("carol", "alice")
	g.AddMention("alice", "carol")
	g.AddMention("alice", "bob")

	edges := g.Edges()
	want := []Edge{
		{From: "alice", To: "bob", Weight: 1},
		{From: "alice", To: "carol", Weight: 1},
		{From: "carol", To: "alice", Weight: 1},
	}
	if len(edges) != len(want) {
		t.Fatalf("Edges() returned %d edges, want %d", len(edges), len(want))
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edges[%d] = %+v, want %+v", i, edges[i], want[i])
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{Handle: "alice", Label: "Alice"}).DisplayLabel(); got != "Alice" {
		t.Errorf("DisplayLabel with label = %q, want Alice", got)
	}
	if got := (Node{Handle: "alice"}).DisplayLabel(); got != "alice" {
		t.Errorf("DisplayLabel without label = %q, want alice", got)
	}
}
