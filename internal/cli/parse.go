package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/molgraph/pkg/errors"
	molio "github.com/matzehuels/molgraph/pkg/io"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/pipeline"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

// parseFlags are the parser switches shared by parse, render and inspect.
// Unset flags fall back to the settings file.
type parseFlags struct {
	keepWildcards bool
	ringValence   bool
	strict        bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.keepWildcards, "keep-wildcards", false, "emit a placeholder atom for each '*'")
	cmd.Flags().BoolVar(&f.ringValence, "ring-valence", false, "count ring-closure bonds against capacity")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on over-bonded atoms instead of clamping hydrogens")
}

// options returns base with every explicitly set flag applied.
func (f *parseFlags) options(cmd *cobra.Command, base smiles.Options) smiles.Options {
	flags := cmd.Flags()
	if flags.Changed("keep-wildcards") {
		base.KeepWildcards = f.keepWildcards
	}
	if flags.Changed("ring-valence") {
		base.RingBondsConsumeValence = f.ringValence
	}
	if flags.Changed("strict") {
		base.StrictValence = f.strict
	}
	return base
}

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	parse   parseFlags
	output  string // JSON output file
	json    bool   // write JSON documents to stdout
	tables  bool   // print atom and bond tables
	noCache bool
	refresh bool
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <notation>...",
		Short: "Parse line notation into a molecular graph",
		Long: `Parse one or more notations and report the resulting graph.

Pass "-" to read notations from stdin, one per line. Blank lines and lines
starting with '#' are skipped.

Examples:
  molgraph parse CC(=O)O                 # formula and counts
  molgraph parse --tables C1CCCCC1       # atom and bond tables
  molgraph parse --json CCO > eth.json   # JSON document on stdout
  molgraph parse -o benzene.json c1ccccc1
  cat list.txt | molgraph parse -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notations, err := readNotations(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if opts.output != "" && len(notations) != 1 {
				return fmt.Errorf("--output needs exactly one notation, got %d", len(notations))
			}
			popts := opts.parse.options(cmd, c.Config.Parse)
			return c.runParse(cmd.Context(), cmd.OutOrStdout(), notations, popts, &opts)
		},
	}

	opts.parse.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON document to a file")
	cmd.Flags().BoolVar(&opts.json, "json", false, "write JSON documents to stdout")
	cmd.Flags().BoolVarP(&opts.tables, "tables", "t", false, "print atom and bond tables")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runParse parses every notation. With a single notation its error is
// returned as is; with several, failures are reported and counted.
func (c *CLI) runParse(ctx context.Context, w io.Writer, notations []string, popts smiles.Options, opts *parseOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	failed := 0
	for _, notation := range notations {
		m, hit, err := runner.ParseWithCacheInfo(ctx, pipeline.Options{
			Notation: notation,
			Parse:    popts,
			Refresh:  opts.refresh,
			Logger:   logger,
		})
		if err != nil {
			if len(notations) == 1 {
				return err
			}
			failed++
			logger.Error("parse failed", "notation", notation, "code", errors.GetCode(err), "err", errors.UserMessage(err))
			continue
		}
		if err := c.report(w, m, hit, opts); err != nil {
			return err
		}
	}

	if len(notations) > 1 {
		prog.done(fmt.Sprintf("Parsed %d of %d molecules", len(notations)-failed, len(notations)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d notations failed to parse", failed, len(notations))
	}
	return nil
}

// report prints or writes one parsed molecule according to opts.
func (c *CLI) report(w io.Writer, m *molecule.Molecule, cached bool, opts *parseOpts) error {
	switch {
	case opts.output != "":
		if err := molio.ExportJSON(m, opts.output); err != nil {
			return err
		}
		printSuccess("%s  %s", m.Notation, StyleHighlight.Render(m.Formula()))
		printFile(opts.output)
		return nil
	case opts.json:
		return molio.WriteJSON(m, w)
	}

	printSuccess("%s  %s", m.Notation, StyleHighlight.Render(m.Formula()))
	printStats(m.AtomCount(), m.EdgeCount(), cached)
	if opts.tables {
		printTable(w, atomTable(m))
		printTable(w, bondTable(m, false))
	}
	return nil
}

// readNotations expands "-" into the lines of stdin.
func readNotations(args []string, stdin io.Reader) ([]string, error) {
	var out []string
	for _, arg := range args {
		if arg != "-" {
			out = append(out, arg)
			continue
		}
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			out = append(out, line)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no notation given")
	}
	return out, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout for an empty path, otherwise creates the file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
