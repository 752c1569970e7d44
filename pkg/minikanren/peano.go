package minikanren

// succLabel tags the successor of a Peano natural.
const succLabel = "succ"

// Zero is the Peano natural 0.
var Zero = NewAtom(0)

// Succ returns the successor of n: succ(n).
func Succ(n Term) Term {
	return NewLabeled(succLabel, n)
}

// Nat encodes a non-negative integer as a Peano natural: Zero wrapped in n
// successor labels. Negative values encode as Zero.
func Nat(n int) Term {
	var result Term = Zero
	for i := 0; i < n; i++ {
		result = Succ(result)
	}
	return result
}

// NatValue decodes a ground Peano natural. The boolean is false when term is
// not Zero wrapped in successor labels.
func NatValue(term Term) (int, bool) {
	n := 0
	for {
		switch t := term.(type) {
		case *Labeled:
			if t.label != succLabel {
				return 0, false
			}
			n++
			term = t.value
		case *Atom:
			return n, t.Equal(Zero)
		default:
			return 0, false
		}
	}
}
