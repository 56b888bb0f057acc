// Package render groups the output renderers for parsed molecules.
//
// The [nodelink] subpackage draws the molecular graph with Graphviz: atoms as
// coloured circles, bonds as single, double or triple strokes.
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Hydrogens: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.LayoutNeato)
//
// [nodelink]: github.com/matzehuels/molgraph/pkg/render/nodelink
package render
