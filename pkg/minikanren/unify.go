package minikanren

// Unify attempts to make two terms identical under sub.
// Returns the extended substitution and true on success, or nil and false
// when the terms cannot be unified.
//
// Unification Rules:
//   - Var == Var (same, unbound): succeeds without new bindings
//   - Var == Term: binds the variable to the term
//   - Atom == Atom: succeeds if atoms have the same value
//   - Pair == Pair: unifies car then cdr, threading the substitution
//   - Labeled == Labeled: labels must match, then the values unify
//   - Otherwise: fails
//
// There is no occurs check. Terms built by the relations in this module are
// finite and acyclic, and binding a variable to a term containing itself is
// left undefined.
func Unify(term1, term2 Term, sub *Substitution) (*Substitution, bool) {
	// Pending pairs of terms; the stack replaces recursion on compound terms.
	work := [][2]Term{{term1, term2}}
	for len(work) > 0 {
		top := work[len(work)-1]
		work = work[:len(work)-1]

		t1 := sub.Walk(top[0])
		t2 := sub.Walk(top[1])

		if v1, ok := t1.(*Var); ok {
			if v2, ok := t2.(*Var); ok && v1.id == v2.id {
				continue
			}
			next, ok := sub.Extend(v1, t2)
			if !ok {
				return nil, false
			}
			sub = next
			continue
		}
		if v2, ok := t2.(*Var); ok {
			next, ok := sub.Extend(v2, t1)
			if !ok {
				return nil, false
			}
			sub = next
			continue
		}

		switch a := t1.(type) {
		case *Atom:
			b, ok := t2.(*Atom)
			if !ok || a.value != b.value {
				return nil, false
			}
		case *Pair:
			b, ok := t2.(*Pair)
			if !ok {
				return nil, false
			}
			// cdr is pushed first so the car is unified first.
			work = append(work, [2]Term{a.cdr, b.cdr}, [2]Term{a.car, b.car})
		case *Labeled:
			b, ok := t2.(*Labeled)
			if !ok || a.label != b.label {
				return nil, false
			}
			work = append(work, [2]Term{a.value, b.value})
		default:
			if !t1.Equal(t2) {
				return nil, false
			}
		}
	}
	return sub, true
}
