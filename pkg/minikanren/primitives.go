package minikanren

// Goal represents a relation over substitutions. Applying a goal to a state
// returns the stream of ways the goal can be satisfied from that state.
// Goals are values: building one performs no search and no unification.
type Goal func(st State) Stream

// Success is a goal that always succeeds with the given substitution.
var Success Goal = func(st State) Stream {
	return &unitStream{sub: st.sub}
}

// Failure is a goal that always fails (returns no substitutions).
var Failure Goal = func(st State) Stream {
	return emptyStream{}
}

// Eq creates a unification goal that constrains two terms to be equal.
// This is the fundamental operation in miniKanren - it attempts to make
// two terms identical by binding variables as needed. A failed unification
// only prunes the current branch.
//
// Example:
//
//	x := session.Var("x")
//	goal := Eq(x, NewAtom("hello"))  // Binds x to "hello"
func Eq(term1, term2 Term) Goal {
	return func(st State) Stream {
		sub, ok := Unify(term1, term2, st.sub)
		st.session.metrics.unified(ok)
		if !ok {
			return emptyStream{}
		}
		return &unitStream{sub: sub}
	}
}

// Conj creates a conjunction goal that requires all goals to succeed.
// The goals are evaluated sequentially: each later goal runs against every
// substitution produced by the earlier ones.
//
// Example:
//
//	goal := Conj(Eq(x, NewAtom(1)), Eq(y, NewAtom(2)))
func Conj(goals ...Goal) Goal {
	if len(goals) == 0 {
		return Success
	}
	if len(goals) == 1 {
		return goals[0]
	}
	first, rest := goals[0], Conj(goals[1:]...)
	return func(st State) Stream {
		return bind(first(st), rest, st.session)
	}
}

// Disj creates a disjunction goal that succeeds if any of the goals succeed.
// This represents choice points in the search space. The streams of the
// alternatives are interleaved rather than concatenated, so an alternative
// with infinitely many solutions cannot starve the others.
//
// Example:
//
//	goal := Disj(Eq(x, NewAtom(1)), Eq(x, NewAtom(2)))  // x can be 1 or 2
func Disj(goals ...Goal) Goal {
	if len(goals) == 0 {
		return Failure
	}
	if len(goals) == 1 {
		return goals[0]
	}
	first, rest := goals[0], Disj(goals[1:]...)
	return func(st State) Stream {
		return mplus(first(st), rest(st))
	}
}

// Conde is a disjunction of conjunctions, following miniKanren naming.
// Each clause is a list of goals that must hold together.
func Conde(clauses ...[]Goal) Goal {
	goals := make([]Goal, len(clauses))
	for i, clause := range clauses {
		goals[i] = Conj(clause...)
	}
	return Disj(goals...)
}

// Fresh introduces a new logic variable. The variable is allocated from the
// search's session when the goal is evaluated, not when it is built, so every
// evaluation gets a variable of its own.
//
// Example:
//
//	Fresh("x", func(x *Var) Goal {
//	    return Eq(x, NewAtom(1))
//	})
func Fresh(name string, f func(*Var) Goal) Goal {
	return func(st State) Stream {
		return f(st.session.Var(name))(st)
	}
}

// Fresh2 introduces two logic variables.
func Fresh2(name1, name2 string, f func(*Var, *Var) Goal) Goal {
	return func(st State) Stream {
		return f(st.session.Var(name1), st.session.Var(name2))(st)
	}
}

// Fresh3 introduces three logic variables.
func Fresh3(name1, name2, name3 string, f func(*Var, *Var, *Var) Goal) Goal {
	return func(st State) Stream {
		return f(st.session.Var(name1), st.session.Var(name2), st.session.Var(name3))(st)
	}
}

// Delay suspends a goal. The thunk is called, and the goal it returns is
// evaluated, only when the search first demands a result from this point.
//
// Every self-referential call inside a relation body must go through Delay;
// otherwise building the relation would recurse without bound before any
// search begins.
//
// Example:
//
//	func fives(x Term) Goal {
//	    return Disj(Eq(x, NewAtom(5)), Delay(func() Goal { return fives(x) }))
//	}
func Delay(thunk func() Goal) Goal {
	return func(st State) Stream {
		return &pauseStream{force: func() Stream {
			return thunk()(st)
		}}
	}
}
