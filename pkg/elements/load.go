package elements

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/molgraph/pkg/errors"
)

// Format identifies an element table file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// jsonEntry is the per-element object of the reference data file.
// Only the bond capacity is used; other properties are ignored.
type jsonEntry struct {
	PossibleNumBonds int `json:"possible_num_bonds"`
}

// tomlFile is the TOML layout:
//
//	[elements]
//	C = 4
//	N = 3
type tomlFile struct {
	Elements map[string]int `toml:"elements"`
}

// Load reads an element table from path. The format is chosen from the
// file extension (.json or .toml). Any failure is a CONFIG_LOAD error.
func Load(path string) (*Table, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "open element table %s", path)
	}
	defer f.Close()

	t, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "load element table %s", path)
	}
	return t, nil
}

// Read decodes an element table in the given format.
func Read(r io.Reader, format Format) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatTOML:
		return decodeTOML(data)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported element table format %q", format)
	}
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeConfigLoad, "element table %s: unknown extension (want .json or .toml)", path)
	}
}

// decodeJSON accepts both {"C": {"possible_num_bonds": 4}} and {"C": 4}.
func decodeJSON(data []byte) (*Table, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
	}
	caps := make(map[string]int, len(raw))
	for sym, msg := range raw {
		msg = bytes.TrimSpace(msg)
		if len(msg) > 0 && msg[0] == '{' {
			var e jsonEntry
			if err := json.Unmarshal(msg, &e); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "element %s", sym)
			}
			caps[sym] = e.PossibleNumBonds
			continue
		}
		var n int
		if err := json.Unmarshal(msg, &n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "element %s", sym)
		}
		caps[sym] = n
	}
	return New(caps)
}

func decodeTOML(data []byte) (*Table, error) {
	var f tomlFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML")
	}
	if len(f.Elements) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no [elements] table")
	}
	return New(f.Elements)
}
