package minikanren

// List creates a list (chain of pairs) from a slice of terms.
// The list is terminated with Nil.
//
// Example:
//
//	lst := List(NewAtom(1), NewAtom(2), NewAtom(3))
//	// Creates: (1 2 3)
func List(terms ...Term) Term {
	var result Term = Nil
	for i := len(terms) - 1; i >= 0; i-- {
		result = NewPair(terms[i], result)
	}
	return result
}

// Cons prepends head to tail.
func Cons(head, tail Term) Term {
	return NewPair(head, tail)
}

// ListTerms returns the elements of a proper list. The boolean is false when
// term is not a Nil-terminated chain of pairs.
func ListTerms(term Term) ([]Term, bool) {
	var out []Term
	for {
		switch t := term.(type) {
		case *Pair:
			out = append(out, t.car)
			term = t.cdr
		case *Atom:
			return out, t.value == nil
		default:
			return nil, false
		}
	}
}

// Appendo creates a goal that relates three lists where the third list
// is the result of appending the first two lists.
//
// Example:
//
//	goal := Appendo(List(NewAtom(1), NewAtom(2)), List(NewAtom(3)), x)
//	// x will be bound to (1 2 3)
func Appendo(l1, l2, l3 Term) Goal {
	return Disj(
		// Base case: appending empty list to l2 gives l2
		Conj(Eq(l1, Nil), Eq(l2, l3)),

		// Recursive case: l1 = (a . d), l3 = (a . res), append(d, l2, res)
		Fresh3("a", "d", "res", func(a, d, res *Var) Goal {
			return Conj(
				Eq(l1, NewPair(a, d)),
				Eq(l3, NewPair(a, res)),
				Delay(func() Goal { return Appendo(d, l2, res) }),
			)
		}),
	)
}

// Membero succeeds once for every position at which element occurs in list.
func Membero(element, list Term) Goal {
	return Fresh2("head", "tail", func(head, tail *Var) Goal {
		return Conj(
			Eq(list, NewPair(head, tail)),
			Disj(
				Eq(element, head),
				Delay(func() Goal { return Membero(element, tail) }),
			),
		)
	})
}

// Lengtho creates a goal that relates a list to its length as a Peano number.
//
// Example:
//
//	Lengtho(List(NewAtom(1), NewAtom(2), NewAtom(3)), Nat(3))  // succeeds
func Lengtho(list, length Term) Goal {
	return Disj(
		// Base case: empty list has length zero
		Conj(Eq(list, Nil), Eq(length, Zero)),

		// Recursive case: list is (head . tail) and length is succ(restLength)
		Fresh3("head", "tail", "restLength", func(head, tail, restLength *Var) Goal {
			return Conj(
				Eq(list, NewPair(head, tail)),
				Eq(length, Succ(restLength)),
				Delay(func() Goal { return Lengtho(tail, restLength) }),
			)
		}),
	)
}
