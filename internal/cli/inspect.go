package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	molio "github.com/matzehuels/molgraph/pkg/io"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/pipeline"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		parse   parseFlags
		input   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [notation]",
		Short: "Browse the atoms and bonds of a molecule",
		Long: `Open an interactive atom browser.

The molecule comes from a notation argument or from a JSON document written
by 'molgraph parse -o' (--input).

Keys: up/down (k/j) move, h toggles hydrogens, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				m   *molecule.Molecule
				err error
			)
			switch {
			case input != "":
				m, err = molio.ImportJSON(input)
			case len(args) == 1:
				m, err = c.parseOne(cmd.Context(), args[0], parse.options(cmd, c.Config.Parse), noCache)
			default:
				return fmt.Errorf("inspect needs a notation or --input")
			}
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newAtomListModel(m), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	parse.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON document to inspect")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// parseOne parses a single notation through a cached runner.
func (c *CLI) parseOne(ctx context.Context, notation string, popts smiles.Options, noCache bool) (*molecule.Molecule, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	return runner.Parse(ctx, pipeline.Options{Notation: notation, Parse: popts, Logger: c.Logger})
}

// =============================================================================
// atomListModel - Interactive atom browser
// =============================================================================

// atomListModel is the bubbletea model for the atom browser.
type atomListModel struct {
	mol       *molecule.Molecule
	hydrogens bool
	visible   []int // atom ids currently listed
	cursor    int
	offset    int
	height    int
}

func newAtomListModel(m *molecule.Molecule) atomListModel {
	model := atomListModel{mol: m, height: 15}
	model.refresh()
	return model
}

// refresh rebuilds the visible id list and keeps the cursor in range.
func (m *atomListModel) refresh() {
	m.visible = make([]int, 0, len(m.mol.Atoms))
	for _, a := range m.mol.Atoms {
		if m.hydrogens || !a.IsHydrogen() {
			m.visible = append(m.visible, a.ID)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	m.clampOffset()
}

func (m *atomListModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// selected returns the atom under the cursor.
func (m atomListModel) selected() (molecule.Atom, bool) {
	if len(m.visible) == 0 {
		return molecule.Atom{}, false
	}
	return m.mol.Atom(m.visible[m.cursor])
}

func (m atomListModel) Init() tea.Cmd {
	return nil
}

func (m atomListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.visible)-1, 0)
		case "h":
			m.hydrogens = !m.hydrogens
			m.refresh()
		}
		m.clampOffset()
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m.clampOffset()
	}
	return m, nil
}

func (m atomListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.mol.Notation))
	b.WriteString("  ")
	b.WriteString(StyleHighlight.Render(m.mol.Formula()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  h hydrogens  q quit"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), "  ", m.detailView()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.visible)), len(m.visible))))

	return b.String()
}

func (m atomListModel) listView() string {
	end := min(m.offset+m.height, len(m.visible))

	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		a := m.mol.Atoms[m.visible[i]]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, a.String(), strconv.Itoa(m.mol.Degree(a.ID)), strconv.Itoa(m.mol.HydrogenCount(a.ID))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", "Atom", "Deg", "H").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			if m.mol.Atoms[m.visible[m.offset+row]].IsHydrogen() {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// detailView describes the selected atom and its bonds.
func (m atomListModel) detailView() string {
	a, ok := m.selected()
	if !ok {
		return detailBoxStyle.Render(listDimStyle.Render("no atoms"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleTitle.Render(a.String()), listDimStyle.Render(a.Kind.String()))
	fmt.Fprintf(&b, "aromatic  %t\n", a.Aromatic)
	fmt.Fprintf(&b, "units     %d\n", m.mol.BondUnits(a.ID))
	b.WriteString("\n")
	for _, n := range m.mol.Neighbors(a.ID) {
		e, _ := m.mol.Bond(a.ID, n)
		fmt.Fprintf(&b, "%s %s %s\n", a.String(), e.Order.Symbol(), m.mol.Atoms[n].String())
	}
	return detailBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
