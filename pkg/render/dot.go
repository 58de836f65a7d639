// Package render converts mention graphs to Graphviz DOT and rasterizes
// them to PNG.
//
// Rendering is best-effort by design: the GraphML export is the contract
// output, the image is a convenience. Callers treat a render failure as a
// warning, never as a pipeline failure.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jselig/mentionet/pkg/mentiongraph"
)

// Options configures DOT generation.
type Options struct {
	// Weights draws edge weights as labels and scales line width with
	// the weight. When false, edges render uniformly.
	Weights bool
}

// ToDOT converts a mention graph to Graphviz DOT. Nodes show their display
// label; heavier edges are drawn thicker so repeat mentions stand out.
// Output is deterministic for the same graph.
func ToDOT(g *mentiongraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph mentions {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=\"#1f78b4\", fontcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [color=\"#555555\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Handle, n.DisplayLabel())
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e, opts)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e mentiongraph.Edge, opts Options) []string {
	if !opts.Weights {
		return nil
	}
	attrs := []string{fmt.Sprintf("label=\"%d\"", e.Weight)}
	if w := penwidth(e.Weight); w != 1.0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%.1f", w))
	}
	return attrs
}

// penwidth maps an edge weight to a line width, capped so a single very
// chatty pair does not dominate the drawing.
func penwidth(weight int) float64 {
	w := 0.8 + 0.4*float64(weight)
	if w > 4.0 {
		w = 4.0
	}
	return w
}
