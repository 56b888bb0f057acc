package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/molgraph/pkg/elements"
	"github.com/matzehuels/molgraph/pkg/molecule"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values such as formulas.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine formats molecule statistics on a single line.
func statsLine(atomCount, edgeCount int, cached bool) string {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	parts := []string{
		fmt.Sprintf("%d atoms", atomCount),
		fmt.Sprintf("%d bonds", edgeCount),
		statusStyle.Render(status),
	}
	return "  " + StyleDim.Render(strings.Join(parts, " · "))
}

func printStats(atomCount, edgeCount int, cached bool) {
	fmt.Println(statsLine(atomCount, edgeCount, cached))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader.Padding(0, 1)
			}
			return styleTableCell
		})
}

// atomTable lists the heavy atoms of m with their hydrogen count, degree and
// bond units. Hydrogens are folded into their parent's row.
func atomTable(m *molecule.Molecule) string {
	t := newTable("ID", "Element", "Aromatic", "H", "Degree", "Units")
	for _, a := range m.HeavyAtoms() {
		aromatic := ""
		if a.Aromatic {
			aromatic = iconSuccess
		}
		t.Row(
			strconv.Itoa(a.ID),
			a.Element,
			aromatic,
			strconv.Itoa(m.HydrogenCount(a.ID)),
			strconv.Itoa(m.Degree(a.ID)),
			strconv.Itoa(m.BondUnits(a.ID)),
		)
	}
	return t.Render()
}

// bondTable lists every edge of m, or only edges between heavy atoms when
// hydrogens is false.
func bondTable(m *molecule.Molecule, hydrogens bool) string {
	t := newTable("#", "A", "B", "Order")
	for i, e := range m.Edges {
		if !hydrogens && (m.Atoms[e.A].IsHydrogen() || m.Atoms[e.B].IsHydrogen()) {
			continue
		}
		t.Row(
			strconv.Itoa(i),
			m.Atoms[e.A].String(),
			m.Atoms[e.B].String(),
			e.Order.String(),
		)
	}
	return t.Render()
}

// elementTable lists the symbols of tbl with their capacities.
func elementTable(tbl *elements.Table) string {
	t := newTable("Symbol", "Capacity")
	for _, sym := range tbl.Symbols() {
		capacity, _ := tbl.Capacity(sym)
		t.Row(sym, strconv.Itoa(capacity))
	}
	return t.Render()
}

func printTable(w io.Writer, rendered string) {
	fmt.Fprintln(w, rendered)
}
