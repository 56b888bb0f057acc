package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/molgraph/pkg/molecule"
)

// Graphviz layout engines suited to molecules.
const (
	LayoutNeato = "neato"
	LayoutDot   = "dot"
	LayoutCirco = "circo"
	LayoutFDP   = "fdp"
)

var validLayouts = map[string]graphviz.Layout{
	LayoutNeato: graphviz.NEATO,
	LayoutDot:   graphviz.DOT,
	LayoutCirco: graphviz.CIRCO,
	LayoutFDP:   graphviz.FDP,
}

// ValidateLayout checks that name is a supported layout engine.
func ValidateLayout(name string) error {
	if _, ok := validLayouts[name]; !ok {
		return fmt.Errorf("invalid layout: %q (must be one of: neato, dot, circo, fdp)", name)
	}
	return nil
}

// Options configures diagram generation.
type Options struct {
	// Hydrogens draws implicit hydrogens. When false they and their bonds
	// are omitted.
	Hydrogens bool
	// Detailed appends the atom id to each label.
	Detailed bool
}

// cpk holds fill colours for common elements; others use defaultFill.
var cpk = map[string]string{
	"H":  "#ffffff",
	"B":  "#ffb5b5",
	"C":  "#909090",
	"N":  "#3050f8",
	"O":  "#ff0d0d",
	"F":  "#90e050",
	"P":  "#ff8000",
	"S":  "#ffff30",
	"CL": "#1ff01f",
	"BR": "#a62929",
	"I":  "#940094",
	"*":  "#d3d3d3",
}

const defaultFill = "#ffc0cb"

// ToDOT converts a molecule to Graphviz DOT source.
func ToDOT(m *molecule.Molecule, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph M {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.45, fontsize=14, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [penwidth=2, len=0.9];\n")
	fmt.Fprintf(&buf, "  label=%q;\n", m.Notation)
	buf.WriteString("\n")

	for _, a := range m.Atoms {
		if a.IsHydrogen() && !opts.Hydrogens {
			continue
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", a.ID, strings.Join(atomAttrs(a, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		if !opts.Hydrogens && (m.Atoms[e.A].IsHydrogen() || m.Atoms[e.B].IsHydrogen()) {
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.A, e.B, strings.Join(bondAttrs(e, m), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func atomAttrs(a molecule.Atom, opts Options) []string {
	label := displaySymbol(a)
	if opts.Detailed {
		label = fmt.Sprintf("%s\n%d", label, a.ID)
	}
	fill, ok := cpk[a.Element]
	if !ok {
		fill = defaultFill
	}
	attrs := []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("fillcolor=%q", fill)}

	switch {
	case a.IsHydrogen():
		attrs = append(attrs, "width=0.3", "fontsize=10")
	case a.Kind == molecule.KindUnspecified:
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	if fill == cpk["N"] || fill == cpk["I"] || fill == cpk["BR"] {
		attrs = append(attrs, "fontcolor=white")
	}
	return attrs
}

// bondAttrs draws n parallel strokes for a bond of order n. Bonds between
// aromatic atoms are dashed.
func bondAttrs(e molecule.Edge, m *molecule.Molecule) []string {
	strokes := make([]string, e.Order.Weight())
	for i := range strokes {
		strokes[i] = "black"
	}
	attrs := []string{fmt.Sprintf("color=%q", strings.Join(strokes, ":invis:"))}
	if m.Atoms[e.A].Aromatic && m.Atoms[e.B].Aromatic &&
		!m.Atoms[e.A].IsHydrogen() && !m.Atoms[e.B].IsHydrogen() {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// displaySymbol writes two-letter symbols in mixed case and aromatic atoms in
// lowercase.
func displaySymbol(a molecule.Atom) string {
	sym := a.Element
	if len(sym) == 2 {
		sym = sym[:1] + strings.ToLower(sym[1:])
	}
	if a.Aromatic && !a.IsHydrogen() {
		sym = strings.ToLower(sym)
	}
	return sym
}

// RenderSVG lays out DOT source with the named engine and renders it to SVG.
// An empty layout uses neato.
func RenderSVG(ctx context.Context, dot, layout string) ([]byte, error) {
	if layout == "" {
		layout = LayoutNeato
	}
	engine, ok := validLayouts[layout]
	if !ok {
		return nil, ValidateLayout(layout)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// viewBox-only one so the SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
