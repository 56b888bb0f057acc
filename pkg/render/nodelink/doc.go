// Package nodelink renders molecules as node-link diagrams.
//
// [ToDOT] produces undirected Graphviz source. Atoms are circles filled with
// their CPK colour and labelled with their element (lowercase when aromatic).
// Bond order is drawn with parallel strokes. Implicit hydrogens can be hidden
// with [Options.Hydrogens] set to false, which gives the usual skeletal view.
//
// [RenderSVG] runs Graphviz in-process through
// [github.com/goccy/go-graphviz], so no system install is needed.
package nodelink
