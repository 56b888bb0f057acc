package smiles

import (
	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
)

const noPos = -1

// skeleton records, per input position, how atoms hang together. It is built
// in one forward pass before any bond accounting so the accountant only does
// O(1) lookups per atom.
//
// Entries are meaningful only at the positions named in their comment.
type skeleton struct {
	parent     []int                // atom/wildcard: position of the structural predecessor, or noPos
	order      []molecule.BondOrder // atom/wildcard: bond order to parent
	childUnits []int                // atom/wildcard: summed weight of bonds to its successors
	ringCount  []int                // atom/wildcard: ring labels attached to it
	anchor     []int                // ring label: position of the atom it is attached to
}

// resolve walks tokens with a branch stack. '(' remembers the current atom,
// ')' returns to it, so every atom's predecessor is the backbone atom its
// branch hangs from:
//
//	CC(C)(=O)C    parent(3)=1, parent(7)=1 double, parent(9)=1
//
// Consecutive opens collapse onto the same atom, an empty "()" leaves no
// trace and ring labels are transparent. A bond symbol directly before a ring
// label belongs to that label and is dropped. Any other bond symbol must sit
// between two atoms; one that starts a component or is followed by '(', ')',
// '.', another bond or the end of input fails with INVALID_INPUT.
func resolve(n int, tokens []Token) (*skeleton, error) {
	sk := &skeleton{
		parent:     make([]int, n),
		order:      make([]molecule.BondOrder, n),
		childUnits: make([]int, n),
		ringCount:  make([]int, n),
		anchor:     make([]int, n),
	}
	for i := range sk.parent {
		sk.parent[i] = noPos
		sk.anchor[i] = noPos
	}

	prev := noPos
	pending := molecule.Single
	var bond *Token
	var stack []int

	for _, tok := range tokens {
		if bond != nil {
			switch tok.Kind {
			case TokenBond, TokenBranchOpen, TokenBranchClose, TokenDot:
				return nil, danglingBond(*bond)
			}
		}

		switch tok.Kind {
		case TokenAtom, TokenWildcard:
			sk.parent[tok.Pos] = prev
			if prev != noPos {
				sk.order[tok.Pos] = pending
				sk.childUnits[prev] += pending.Weight()
			}
			prev = tok.Pos
			pending = molecule.Single
			bond = nil

		case TokenBond:
			if prev == noPos {
				return nil, errors.New(errors.ErrCodeInvalidInput, "bond %q at position %d does not follow an atom", tok.Order.Symbol(), tok.Pos).At(tok.Pos)
			}
			pending = tok.Order
			bond = &tok

		case TokenBranchOpen:
			if prev == noPos {
				return nil, errors.New(errors.ErrCodeMalformedBranch, "branch at position %d does not follow an atom", tok.Pos).At(tok.Pos)
			}
			stack = append(stack, prev)
			pending = molecule.Single

		case TokenBranchClose:
			if len(stack) == 0 {
				return nil, errors.New(errors.ErrCodeMalformedBranch, "unmatched ')' at position %d", tok.Pos).At(tok.Pos)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pending = molecule.Single

		case TokenRingLabel:
			if prev == noPos {
				return nil, errors.New(errors.ErrCodeMalformedRingClosure, "ring label %q at position %d does not follow an atom", tok.Label, tok.Pos).At(tok.Pos)
			}
			sk.anchor[tok.Pos] = prev
			sk.ringCount[prev]++
			pending = molecule.Single
			bond = nil

		case TokenDot:
			prev = noPos
			pending = molecule.Single
		}
	}

	if bond != nil {
		return nil, danglingBond(*bond)
	}
	if len(stack) > 0 {
		return nil, errors.New(errors.ErrCodeMalformedBranch, "%d unclosed branch(es)", len(stack))
	}
	return sk, nil
}

func danglingBond(tok Token) error {
	return errors.New(errors.ErrCodeInvalidInput, "bond %q at position %d is not followed by an atom", tok.Order.Symbol(), tok.Pos).At(tok.Pos)
}
