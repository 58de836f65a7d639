// Package graphio serializes mention graphs to GraphML and reads them back.
//
// GraphML is the interchange format: nodes carry a "handle" attribute (and
// optionally a "label"), edges carry a "weight" attribute. A written file
// re-imports to a graph with an identical node set and identical edge
// weights, so downstream tools (Gephi, networkx) and this tool itself can
// consume each other's output.
package graphio

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jselig/mentionet/pkg/mentiongraph"
)

const graphmlNS = "http://graphml.graphdrawing.org/xmlns"

// Attribute names used in key declarations. Readers resolve data elements
// through these names, not through key ids, so files produced by other
// tools with different id schemes import cleanly.
const (
	attrHandle = "handle"
	attrLabel  = "label"
	attrWeight = "weight"
)

type graphmlDoc struct {
	XMLName xml.Name  `xml:"graphml"`
	Xmlns   string    `xml:"xmlns,attr"`
	Keys    []keyDecl `xml:"key"`
	Graph   graphElem `xml:"graph"`
}

type keyDecl struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphElem struct {
	EdgeDefault string     `xml:"edgedefault,attr"`
	Nodes       []nodeElem `xml:"node"`
	Edges       []edgeElem `xml:"edge"`
}

type nodeElem struct {
	ID   string     `xml:"id,attr"`
	Data []dataElem `xml:"data"`
}

type edgeElem struct {
	Source string     `xml:"source,attr"`
	Target string     `xml:"target,attr"`
	Data   []dataElem `xml:"data"`
}

type dataElem struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Write encodes g as GraphML and writes it to w.
// Nodes and edges appear in the graph's deterministic order, so the same
// corpus always produces byte-identical output.
func Write(g *mentiongraph.Graph, w io.Writer) error {
	doc := graphmlDoc{
		Xmlns: graphmlNS,
		Keys: []keyDecl{
			{ID: "d0", For: "node", Name: attrHandle, Type: "string"},
			{ID: "d1", For: "node", Name: attrLabel, Type: "string"},
			{ID: "d2", For: "edge", Name: attrWeight, Type: "long"},
		},
		Graph: graphElem{EdgeDefault: "directed"},
	}

	for _, n := range g.Nodes() {
		ne := nodeElem{
			ID:   n.Handle,
			Data: []dataElem{{Key: "d0", Value: n.Handle}},
		}
		if n.Label != "" && n.Label != n.Handle {
			ne.Data = append(ne.Data, dataElem{Key: "d1", Value: n.Label})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, ne)
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, edgeElem{
			Source: e.From,
			Target: e.To,
			Data:   []dataElem{{Key: "d2", Value: strconv.Itoa(e.Weight)}},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ExportFile writes g to a GraphML file at path.
// The file is created with 0644 permissions.
func ExportFile(g *mentiongraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a GraphML document from r into a mention graph.
//
// Node ids become handles; a "label" data attribute, if present, becomes
// the display label. Edge weights default to 1 when the "weight" attribute
// is missing, so unweighted GraphML from other tools still imports.
// Read does not close r.
func Read(r io.Reader) (*mentiongraph.Graph, error) {
	var doc graphmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// Map key ids to attribute names declared in the document.
	names := make(map[string]string, len(doc.Keys))
	for _, k := range doc.Keys {
		names[k.ID] = k.Name
	}

	g := mentiongraph.New()
	for _, ne := range doc.Graph.Nodes {
		if err := g.AddNode(ne.ID, ne.ID); err != nil {
			return nil, fmt.Errorf("node %q: %w", ne.ID, err)
		}
		for _, d := range ne.Data {
			if names[d.Key] == attrLabel && d.Value != "" {
				g.SetLabel(ne.ID, d.Value)
			}
		}
	}
	for _, ee := range doc.Graph.Edges {
		weight := 1
		for _, d := range ee.Data {
			if names[d.Key] != attrWeight {
				continue
			}
			w, err := strconv.Atoi(d.Value)
			if err != nil {
				return nil, fmt.Errorf("edge %s->%s: invalid weight %q", ee.Source, ee.Target, d.Value)
			}
			weight = w
		}
		if err := g.SetWeight(ee.Source, ee.Target, weight); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", ee.Source, ee.Target, err)
		}
	}

	return g, nil
}

// ImportFile reads a GraphML file at path and returns the decoded graph.
func ImportFile(path string) (*mentiongraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
