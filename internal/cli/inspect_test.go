package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/molgraph/pkg/elements"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

func mustParse(t *testing.T, notation string) *molecule.Molecule {
	t.Helper()
	m, err := smiles.Parse(notation, elements.Default(), smiles.Options{})
	if err != nil {
		t.Fatalf("Parse(%q): %v", notation, err)
	}
	return m
}

func press(m atomListModel, keys ...tea.KeyMsg) atomListModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(atomListModel)
	}
	return m
}

var (
	keyDown = tea.KeyMsg{Type: tea.KeyDown}
	keyUp   = tea.KeyMsg{Type: tea.KeyUp}
	keyH    = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}
	keyQ    = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestAtomListHidesHydrogens(t *testing.T) {
	m := newAtomListModel(mustParse(t, "C=O"))

	if len(m.visible) != 2 {
		t.Fatalf("visible = %v, want the two heavy atoms", m.visible)
	}

	m = press(m, keyDown)
	a, ok := m.selected()
	if !ok || a.Element != "O" || a.ID != 3 {
		t.Errorf("selected = %v, want O3", a)
	}

	// The cursor stops at the last row.
	m = press(m, keyDown, keyDown)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m = press(m, keyUp, keyUp, keyUp)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestAtomListToggleHydrogens(t *testing.T) {
	m := press(newAtomListModel(mustParse(t, "C=O")), keyH)
	if len(m.visible) != 4 {
		t.Errorf("visible with hydrogens = %v, want 4 atoms", m.visible)
	}

	m = press(m, keyH)
	if len(m.visible) != 2 {
		t.Errorf("visible after second toggle = %v, want 2 atoms", m.visible)
	}
}

func TestAtomListScrolls(t *testing.T) {
	m := newAtomListModel(mustParse(t, "CCCCCCCCCC"))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 13})
	m = next.(atomListModel)
	if m.height != 5 {
		t.Fatalf("height = %d, want 5", m.height)
	}

	for range 7 {
		m = press(m, keyDown)
	}
	if m.cursor != 7 || m.offset != 3 {
		t.Errorf("cursor=%d offset=%d, want 7 and 3", m.cursor, m.offset)
	}
}

func TestAtomListQuit(t *testing.T) {
	_, cmd := newAtomListModel(mustParse(t, "C")).Update(keyQ)
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestAtomListView(t *testing.T) {
	m := press(newAtomListModel(mustParse(t, "C=O")), keyDown)
	view := m.View()

	for _, want := range []string{"C=O", "CH2O", "O3 = C0", "[2/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
