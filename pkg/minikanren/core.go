// Package minikanren provides a small, lazy implementation of miniKanren in Go.
//
// miniKanren is a domain-specific language for relational programming.
// It provides a minimal set of operators for building relational programs:
//   - Unification (Eq): Constrains two terms to be equal
//   - Fresh variables: Introduces new logic variables
//   - Disjunction (Disj): Represents choice points
//   - Conjunction (Conj): Combines goals that must all succeed
//   - Suspension (Delay): Defers a goal until the search demands it
//
// Goals are evaluated by a single-threaded search engine that produces a lazy,
// fair stream of substitutions. Disjunctions interleave their branches, so a
// relation with infinitely many answers never starves its siblings, and the
// engine steps through the search with an explicit heap-allocated frame stack
// instead of native recursion.
//
// Variables are allocated by a Session. Every Session owns its own allocator,
// so independent searches can run concurrently on different goroutines.
package minikanren

import (
	"fmt"
)

// Term represents any value in the miniKanren universe.
// Terms can be atoms, variables, pairs, labeled values, or placeholders
// produced by reification. Terms are immutable once built.
type Term interface {
	// String returns a human-readable representation of the term.
	String() string

	// Equal checks if this term is structurally equal to another term.
	// This is different from unification - it's a strict equality check.
	Equal(other Term) bool

	// IsVar returns true if this term is a logic variable.
	IsVar() bool
}

// Var represents a logic variable in miniKanren.
// Variables can be bound to values through unification. Each variable has
// an identifier that is unique within the Session that allocated it; the
// name is for diagnostics only.
type Var struct {
	id   int64
	name string
}

// ID returns the variable's identity within its session.
func (v *Var) ID() int64 {
	return v.id
}

// Name returns the diagnostic name given when the variable was created.
func (v *Var) Name() string {
	return v.name
}

// String returns a string representation of the variable.
func (v *Var) String() string {
	if v.name != "" {
		return fmt.Sprintf("_%s_%d", v.name, v.id)
	}
	return fmt.Sprintf("_%d", v.id)
}

// Equal checks if two variables are the same variable.
func (v *Var) Equal(other Term) bool {
	if otherVar, ok := other.(*Var); ok {
		return v.id == otherVar.id
	}
	return false
}

// IsVar always returns true for variables.
func (v *Var) IsVar() bool {
	return true
}

// Atom represents an atomic value (symbol, number, string, struct, etc.).
// Atoms are immutable and represent themselves. The wrapped value must be
// comparable with ==.
type Atom struct {
	value interface{}
}

// NewAtom creates a new atom from any comparable Go value.
func NewAtom(value interface{}) *Atom {
	return &Atom{value: value}
}

// String returns a string representation of the atom.
func (a *Atom) String() string {
	if a.value == nil {
		return "()"
	}
	return fmt.Sprintf("%v", a.value)
}

// Equal checks if two atoms have the same value.
func (a *Atom) Equal(other Term) bool {
	if otherAtom, ok := other.(*Atom); ok {
		return a.value == otherAtom.value
	}
	return false
}

// IsVar always returns false for atoms.
func (a *Atom) IsVar() bool {
	return false
}

// Value returns the underlying Go value.
func (a *Atom) Value() interface{} {
	return a.value
}

// Nil is the empty sequence. Lists built by List and Cons end with Nil.
var Nil = NewAtom(nil)

// Pair represents a cons cell (pair) in miniKanren.
// Pairs are used to build lists and other compound structures.
type Pair struct {
	car Term
	cdr Term
}

// NewPair creates a new pair with the given car and cdr.
func NewPair(car, cdr Term) *Pair {
	return &Pair{car: car, cdr: cdr}
}

// String returns a string representation of the pair. Proper lists print
// as (a b c), improper tails as (a b . c).
func (p *Pair) String() string {
	s := "(" + p.car.String()
	var rest Term = p.cdr
	for {
		switch r := rest.(type) {
		case *Pair:
			s += " " + r.car.String()
			rest = r.cdr
			continue
		case *Atom:
			if r.value == nil {
				return s + ")"
			}
		}
		return s + " . " + rest.String() + ")"
	}
}

// Equal checks if two pairs are structurally equal.
func (p *Pair) Equal(other Term) bool {
	if otherPair, ok := other.(*Pair); ok {
		return p.car.Equal(otherPair.car) && p.cdr.Equal(otherPair.cdr)
	}
	return false
}

// IsVar always returns false for pairs.
func (p *Pair) IsVar() bool {
	return false
}

// Car returns the first element of the pair.
func (p *Pair) Car() Term {
	return p.car
}

// Cdr returns the rest of the pair.
func (p *Pair) Cdr() Term {
	return p.cdr
}

// Labeled is a single-field tagged value such as succ(n). Two labeled terms
// unify only when their labels match.
type Labeled struct {
	label string
	value Term
}

// NewLabeled wraps value under label.
func NewLabeled(label string, value Term) *Labeled {
	return &Labeled{label: label, value: value}
}

// Label returns the tag.
func (l *Labeled) Label() string {
	return l.label
}

// Value returns the wrapped term.
func (l *Labeled) Value() Term {
	return l.value
}

// String returns a string representation of the labeled term.
func (l *Labeled) String() string {
	return fmt.Sprintf("%s(%s)", l.label, l.value.String())
}

// Equal checks label and wrapped value.
func (l *Labeled) Equal(other Term) bool {
	if o, ok := other.(*Labeled); ok {
		return l.label == o.label && l.value.Equal(o.value)
	}
	return false
}

// IsVar always returns false for labeled terms.
func (l *Labeled) IsVar() bool {
	return false
}

// Placeholder stands for a variable that was still unbound when a term was
// reified. Placeholders are numbered in order of first appearance within one
// reified term, so two answers that differ only in internal variable
// identities compare equal.
type Placeholder struct {
	index int
}

// Index returns the placeholder number.
func (p *Placeholder) Index() int {
	return p.index
}

// String returns the conventional _.N form.
func (p *Placeholder) String() string {
	return fmt.Sprintf("_.%d", p.index)
}

// Equal checks if two placeholders carry the same number.
func (p *Placeholder) Equal(other Term) bool {
	if o, ok := other.(*Placeholder); ok {
		return p.index == o.index
	}
	return false
}

// IsVar returns false; a placeholder is reified data, not a variable.
func (p *Placeholder) IsVar() bool {
	return false
}

// Equal reports whether two terms are structurally identical.
// It is the equality used to deduplicate reified answers.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
