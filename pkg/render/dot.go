// Package render converts computed layouts into visual artifacts.
//
// The entry point is [ToDOT], which emits Graphviz DOT with every node
// pinned at its computed position. [RenderSVG] and [RenderPNG] rasterize
// the DOT via Graphviz (neato, so pinned positions are honored), and
// [ToPNG]/[ToPDF] convert SVG output using the external rsvg-convert tool.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/treekit/lineage/pkg/layout"
	"github.com/treekit/lineage/pkg/member"
)

// Options configures DOT emission.
type Options struct {
	// Detailed includes lifespan, birthplace, and occupation in node
	// labels. When false, only the member's full name is shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT format.
// Nodes carry pinned positions ("x,y!") so neato reproduces the computed
// layout instead of inventing its own. Spouse edges are dashed and
// unconstrained; parent-child edges are plain arrows.
func ToDOT(l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph family {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		label := fmtLabel(n.Data.Member, opts.Detailed)
		// Graphviz points grow upward, layout pixels grow downward.
		pos := fmt.Sprintf("%.0f,%.0f!", n.Position.X, -n.Position.Y)
		fmt.Fprintf(&buf, "  %q [label=%q, pos=%q];\n", n.ID, label, pos)
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if e.Type == layout.EdgeTypeSpouse {
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed, constraint=false];\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(m member.FamilyMember, detailed bool) string {
	name := m.FullName() // falls back to the ID for nameless members
	if !detailed {
		return name
	}

	parts := []string{name}
	if span := m.Lifespan(); span != "" {
		parts = append(parts, span)
	}
	if m.BirthPlace != "" {
		parts = append(parts, m.BirthPlace)
	}
	if m.Occupation != "" {
		parts = append(parts, m.Occupation)
	}
	return strings.Join(parts, "\n")
}
