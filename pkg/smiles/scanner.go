package smiles

import (
	"fmt"
	"strings"

	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
)

// TokenKind classifies a span of the notation string.
type TokenKind int

const (
	TokenAtom         TokenKind = iota // element symbol
	TokenBond                          // -, = or #
	TokenBranchOpen                    // (
	TokenBranchClose                   // )
	TokenRingLabel                     // digit or %-escaped digit run
	TokenWildcard                      // *
	TokenDot                           // . (disconnection)
	TokenIgnored                       // anything else
)

var tokenNames = [...]string{
	TokenAtom:        "atom",
	TokenBond:        "bond",
	TokenBranchOpen:  "branch-open",
	TokenBranchClose: "branch-close",
	TokenRingLabel:   "ring-label",
	TokenWildcard:    "wildcard",
	TokenDot:         "dot",
	TokenIgnored:     "ignored",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one classified span of the input.
type Token struct {
	Kind     TokenKind
	Pos      int // byte offset of the first character
	Len      int // number of bytes consumed
	Symbol   string             // atoms: uppercase element symbol
	Aromatic bool               // atoms: written in lowercase
	Order    molecule.BondOrder // bonds
	Label    string             // ring labels: the digit run
}

// bondSymbols is the fixed symbol-to-order mapping. Orders are never derived
// from a symbol's position in a list.
var bondSymbols = map[byte]molecule.BondOrder{
	'-': molecule.Single,
	'=': molecule.Double,
	'#': molecule.Triple,
}

// organicPairs are the two-letter symbols recognised outside brackets.
// Any other uppercase-lowercase pair is an atom followed by an aromatic atom
// ("Cn" is carbon then aromatic nitrogen).
var organicPairs = map[string]bool{"CL": true, "BR": true}

// Scan classifies notation into tokens. Element symbols are resolved against
// table. Outside brackets only Cl and Br form two-letter symbols; inside
// "[...]" any uppercase-lowercase pair the table knows does ("[Si]").
// Otherwise letters are single symbols and lowercase marks aromaticity. A
// letter whose symbol is not in the table fails with UNKNOWN_ELEMENT; a '%'
// without digits fails with MALFORMED_RING_CLOSURE.
func Scan(notation string, table ElementTable) ([]Token, error) {
	tokens := make([]Token, 0, len(notation))
	inBracket := false
	for i := 0; i < len(notation); {
		c := notation[i]
		switch {
		case isUpper(c):
			if i+1 < len(notation) && isLower(notation[i+1]) {
				sym := strings.ToUpper(notation[i : i+2])
				if _, ok := table.Capacity(sym); ok && (inBracket || organicPairs[sym]) {
					tokens = append(tokens, Token{Kind: TokenAtom, Pos: i, Len: 2, Symbol: sym})
					i += 2
					continue
				}
			}
			tok, err := atomToken(notation, i, table)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i++

		case isLower(c):
			tok, err := atomToken(notation, i, table)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i++

		case isDigit(c):
			tokens = append(tokens, Token{Kind: TokenRingLabel, Pos: i, Len: 1, Label: notation[i : i+1]})
			i++

		case c == '%':
			j := i + 1
			for j < len(notation) && isDigit(notation[j]) {
				j++
			}
			if j == i+1 {
				return nil, errors.New(errors.ErrCodeMalformedRingClosure, "ring label %q at position %d has no digits", "%", i).At(i)
			}
			tokens = append(tokens, Token{Kind: TokenRingLabel, Pos: i, Len: j - i, Label: notation[i+1 : j]})
			i = j

		default:
			switch c {
			case '[':
				inBracket = true
			case ']':
				inBracket = false
			}
			tokens = append(tokens, punctToken(c, i))
			i++
		}
	}
	return tokens, nil
}

func atomToken(notation string, i int, table ElementTable) (Token, error) {
	c := notation[i]
	sym := strings.ToUpper(notation[i : i+1])
	if _, ok := table.Capacity(sym); !ok {
		return Token{}, errors.New(errors.ErrCodeUnknownElement, "unknown element %q at position %d", string(c), i).At(i)
	}
	return Token{Kind: TokenAtom, Pos: i, Len: 1, Symbol: sym, Aromatic: isLower(c)}, nil
}

func punctToken(c byte, i int) Token {
	tok := Token{Pos: i, Len: 1}
	if order, ok := bondSymbols[c]; ok {
		tok.Kind = TokenBond
		tok.Order = order
		return tok
	}
	switch c {
	case '(':
		tok.Kind = TokenBranchOpen
	case ')':
		tok.Kind = TokenBranchClose
	case '*':
		tok.Kind = TokenWildcard
	case '.':
		tok.Kind = TokenDot
	default:
		tok.Kind = TokenIgnored
	}
	return tok
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
