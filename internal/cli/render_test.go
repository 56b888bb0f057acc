package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"dot", []string{"dot"}},
		{"svg,dot,json", []string{"svg", "dot", "json"}},
		{" svg , json ,", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", defaultBase},
		{"-", defaultBase},
		{"out/benzene", "out/benzene"},
		{"out/benzene.svg", "out/benzene"},
		{"out/benzene.dot", "out/benzene"},
		{"out/benzene.png", "out/benzene.png"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	single := outputPaths("ring.svg", []string{"svg"})
	if single["svg"] != "ring.svg" {
		t.Errorf("single format path = %q, want ring.svg", single["svg"])
	}

	defaulted := outputPaths("", []string{"svg"})
	if defaulted["svg"] != "molecule.svg" {
		t.Errorf("default path = %q, want molecule.svg", defaulted["svg"])
	}

	multi := outputPaths("ring.svg", []string{"svg", "dot"})
	if multi["svg"] != "ring.svg" || multi["dot"] != "ring.dot" {
		t.Errorf("multi-format paths = %v", multi)
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "ethane")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dot": []byte("graph M {}\n"), "json": []byte("{}")},
		formats:   []string{"dot", "json"},
		output:    base,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	data, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "graph M {}\n" {
		t.Errorf("dot file = %q", data)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json file: %v", err)
	}
}

func TestWriteArtifactsMissingFormat(t *testing.T) {
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"svg"},
		output:    filepath.Join(t.TempDir(), "x.svg"),
	})
	if err == nil || !strings.Contains(err.Error(), "missing svg") {
		t.Errorf("err = %v, want missing svg output", err)
	}
}
