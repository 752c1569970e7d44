package minikanren

import (
	"fmt"
	"strings"

	"github.com/google/btree"
)

// substitutionDegree is the B-tree degree used for binding storage.
// Substitutions in this engine stay small, so a narrow node keeps the
// copy-on-write clones cheap.
const substitutionDegree = 8

// binding is one entry of a substitution.
type binding struct {
	id   int64
	term Term
}

func bindingLess(a, b binding) bool {
	return a.id < b.id
}

// Substitution represents a mapping from variables to terms.
// It's used to track bindings during unification and goal evaluation.
//
// Substitutions are persistent: Extend returns a new substitution and leaves
// the receiver untouched, sharing unchanged B-tree nodes between the two.
// Sibling search branches can therefore hold on to a common ancestor and
// extend it independently. A variable is bound at most once.
type Substitution struct {
	tree *btree.BTreeG[binding]
}

// NewSubstitution creates an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{tree: btree.NewG(substitutionDegree, bindingLess)}
}

// Lookup returns the term bound to a variable, or nil if unbound.
func (s *Substitution) Lookup(v *Var) Term {
	b, ok := s.tree.Get(binding{id: v.id})
	if !ok {
		return nil
	}
	return b.term
}

// Extend creates a new substitution with an additional binding.
// It returns false, and no substitution, when v is already bound.
func (s *Substitution) Extend(v *Var, term Term) (*Substitution, bool) {
	if _, ok := s.tree.Get(binding{id: v.id}); ok {
		return nil, false
	}
	// Binding a variable to itself adds nothing.
	if tv, ok := term.(*Var); ok && tv.id == v.id {
		return s, true
	}
	tree := s.tree.Clone()
	tree.ReplaceOrInsert(binding{id: v.id, term: term})
	return &Substitution{tree: tree}, true
}

// Walk follows variable bindings until it reaches an unbound variable or
// a non-variable term.
func (s *Substitution) Walk(term Term) Term {
	for {
		v, ok := term.(*Var)
		if !ok {
			return term
		}
		bound := s.Lookup(v)
		if bound == nil {
			return term
		}
		term = bound
	}
}

// DeepWalk resolves a term completely, rebuilding pairs and labeled terms
// from their resolved parts. Unbound variables are left in place.
func (s *Substitution) DeepWalk(term Term) Term {
	term = s.Walk(term)
	switch t := term.(type) {
	case *Pair:
		return NewPair(s.DeepWalk(t.car), s.DeepWalk(t.cdr))
	case *Labeled:
		return NewLabeled(t.label, s.DeepWalk(t.value))
	default:
		return term
	}
}

// Size returns the number of bindings in the substitution.
func (s *Substitution) Size() int {
	return s.tree.Len()
}

// String returns a string representation of the substitution, ordered by
// variable identity.
func (s *Substitution) String() string {
	if s.tree.Len() == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	s.tree.Ascend(func(b binding) bool {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "_%d=%s", b.id, b.term.String())
		first = false
		return true
	})
	sb.WriteString("}")
	return sb.String()
}
