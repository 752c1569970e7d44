package minikanren

// Reify resolves term through sub into a fully concrete term.
// Bound variables are replaced by their values, pairs and labeled terms are
// rebuilt from reified parts, and each variable that is still unbound becomes
// a Placeholder numbered in order of first appearance.
//
// Example:
//
//	Reify(List(x, y, x), sub)  // with x, y unbound: (_.0 _.1 _.0)
func Reify(term Term, sub *Substitution) Term {
	names := make(map[int64]int)
	return reifyTerm(sub.Walk(term), sub, names)
}

func reifyTerm(term Term, sub *Substitution, names map[int64]int) Term {
	switch t := sub.Walk(term).(type) {
	case *Var:
		idx, ok := names[t.id]
		if !ok {
			idx = len(names)
			names[t.id] = idx
		}
		return &Placeholder{index: idx}
	case *Pair:
		car := reifyTerm(t.car, sub, names)
		return NewPair(car, reifyTerm(t.cdr, sub, names))
	case *Labeled:
		return NewLabeled(t.label, reifyTerm(t.value, sub, names))
	default:
		return t
	}
}

// IsGround reports whether a reified term contains no placeholders.
func IsGround(term Term) bool {
	switch t := term.(type) {
	case *Var, *Placeholder:
		return false
	case *Pair:
		return IsGround(t.car) && IsGround(t.cdr)
	case *Labeled:
		return IsGround(t.value)
	default:
		return true
	}
}
