package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/molgraph/pkg/pipeline"
	"github.com/matzehuels/molgraph/pkg/render/nodelink"
)

// defaultBase is the output file stem when --output is not given.
const defaultBase = "molecule"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	parse     parseFlags
	output    string // output file (single format) or base path
	formats   string // comma-separated formats
	layout    string // graphviz engine
	hydrogens bool   // draw implicit hydrogens
	detailed  bool   // label atoms with ids and bond orders
	noCache   bool
	refresh   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <notation>",
		Short: "Render a molecule to SVG, DOT or JSON",
		Long: `Render a molecule as a node-link diagram.

With one format, --output names the file ("-" writes to stdout). With several,
--output is a base path and each format gets its own extension.

Examples:
  molgraph render CC(=O)O                       # molecule.svg
  molgraph render -f svg,dot -o acetic CC(=O)O  # acetic.svg, acetic.dot
  molgraph render -f dot -o - c1ccccc1 | dot -Tpng > benzene.png
  molgraph render --layout circo --hydrogens=false C1CCCCC1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.pipelineOptions(cmd, args[0], &opts)
			if err := popts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, &opts)
		},
	}

	opts.parse.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "graphviz layout: neato, dot, circo, fdp (default from settings)")
	cmd.Flags().BoolVar(&opts.hydrogens, "hydrogens", true, "draw implicit hydrogens")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label atoms with ids")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	_ = cmd.RegisterFlagCompletionFunc("layout", layoutNames)

	return cmd
}

// pipelineOptions merges flags over the render settings.
func (c *CLI) pipelineOptions(cmd *cobra.Command, notation string, opts *renderOpts) pipeline.Options {
	popts := pipeline.Options{
		Notation:  notation,
		Parse:     opts.parse.options(cmd, c.Config.Parse),
		Formats:   parseFormats(opts.formats),
		Layout:    c.Config.Render.Layout,
		Hydrogens: c.Config.Render.Hydrogens,
		Detailed:  opts.detailed,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	}
	if opts.layout != "" {
		popts.Layout = opts.layout
	}
	if cmd.Flags().Changed("hydrogens") {
		popts.Hydrogens = opts.hydrogens
	}
	return popts
}

// parseFormats splits the --format flag. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// runRender parses and renders the notation, then writes the artifacts.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(popts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		prog.failed("render failed", err)
		return err
	}
	spinner.Stop()
	prog.logger.Debugf("rendered %s (%s)", strings.Join(popts.Formats, ", "), prog.elapsed())

	if opts.output != "-" {
		printSuccess("%s  %s", popts.Notation, StyleHighlight.Render(result.Molecule.Formula()))
		printStats(result.Stats.AtomCount, result.Stats.EdgeCount, result.CacheInfo.ParseHit && result.CacheInfo.RenderHit)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   popts.Formats,
		output:    opts.output,
	})
}

// artifactWriteParams describes a set of rendered outputs to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string
}

// writeArtifacts writes each artifact to its path from outputPaths.
func writeArtifacts(p artifactWriteParams) error {
	paths := outputPaths(p.output, p.formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	for _, format := range formats {
		path := paths[format]
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s output", format)
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	target := path
	if target == "-" {
		target = ""
	}
	out, err := openOutput(target)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// outputPaths maps each format to the file it is written to.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or returns the
// default stem when output is empty.
func basePath(output string) string {
	if output == "" || output == "-" {
		return defaultBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// layoutNames lists the graphviz engines for shell completion.
func layoutNames(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{nodelink.LayoutNeato, nodelink.LayoutDot, nodelink.LayoutCirco, nodelink.LayoutFDP}, cobra.ShellCompDirectiveNoFileComp
}
