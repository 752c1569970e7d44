package labyrinth

import (
	"context"
	"errors"
	"fmt"

	mk "github.com/gitrdm/minotaur/pkg/minikanren"
)

// ErrUnbounded is returned when every path of a cyclic layout is requested
// without a battery level. Such layouts have infinitely many paths; pass a
// limit or a level.
var ErrUnbounded = errors.New("unbounded search on a cyclic layout")

// CyclicMaxSteps bounds path searches over cyclic layouts that have a limit
// but no battery level, when the query options set no bound of their own.
// Fewer answers than the limit may exist, and then only the bound ends the
// search.
const CyclicMaxSteps = 1 << 20

// Query runs the relations of one layout. Each call uses a new session, so
// a Query may be shared by goroutines.
type Query struct {
	rel  *Relations
	opts []mk.Option
}

// NewQuery validates l and prepares queries over it. The options are passed
// to every session the query creates.
func NewQuery(l *Layout, opts ...mk.Option) (*Query, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &Query{rel: NewRelations(l), opts: opts}, nil
}

// Relations returns the relations the query evaluates.
func (q *Query) Relations() *Relations {
	return q.rel
}

// distinct solves the goal built by build and returns the distinct reified
// values of the term it returns. A limit of zero or less asks for all.
func (q *Query) distinct(ctx context.Context, limit int, build func(s *mk.Session) (mk.Goal, mk.Term), extra ...mk.Option) ([]mk.Term, error) {
	session := mk.NewSession(append(append([]mk.Option(nil), q.opts...), extra...)...)
	goal, answer := build(session)
	return mk.Distinct(ctx, session.Solve(goal), answer, limit)
}

func (q *Query) checkBounded(limit int) error {
	if limit <= 0 && !q.rel.layout.Acyclic() {
		return fmt.Errorf("layout %q: %w", q.rel.layout.Name, ErrUnbounded)
	}
	return nil
}

// Doors enumerates the door relation.
func (q *Query) Doors(ctx context.Context) ([]Door, error) {
	answers, err := q.distinct(ctx, 0, func(s *mk.Session) (mk.Goal, mk.Term) {
		from, to := s.Var("from"), s.Var("to")
		return q.rel.Door(from, to), mk.List(from, to)
	})
	if err != nil {
		return nil, err
	}
	doors := make([]Door, 0, len(answers))
	for _, a := range answers {
		pair, _ := mk.ListTerms(a)
		from, err := roomFromTerm(pair[0])
		if err != nil {
			return nil, err
		}
		to, err := roomFromTerm(pair[1])
		if err != nil {
			return nil, err
		}
		doors = append(doors, Door{From: from, To: to})
	}
	return doors, nil
}

// Rooms enumerates the rooms satisfying the role relation.
func (q *Query) Rooms(ctx context.Context, role Role) ([]Room, error) {
	answers, err := q.distinct(ctx, 0, func(s *mk.Session) (mk.Goal, mk.Term) {
		location := s.Var("location")
		return q.rel.Role(location, q.rel.layout.RoomsFor(role)), location
	})
	if err != nil {
		return nil, err
	}
	rooms := make([]Room, 0, len(answers))
	for _, a := range answers {
		room, err := roomFromTerm(a)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// Routes returns the distinct paths from one room to another. When level is
// not negative only the paths that can be walked on that battery are kept,
// and the search is finite on every layout. Without a level, a cyclic
// layout needs a limit and is bounded by CyclicMaxSteps unless the options
// set a bound.
func (q *Query) Routes(ctx context.Context, from, to Room, level, limit int) ([]Route, error) {
	var extra []mk.Option
	if level < 0 {
		if err := q.checkBounded(limit); err != nil {
			return nil, err
		}
		if !q.rel.layout.Acyclic() {
			extra = append(extra, mk.WithDefaultMaxSteps(CyclicMaxSteps))
		}
	}
	answers, err := q.distinct(ctx, limit, func(s *mk.Session) (mk.Goal, mk.Term) {
		through := s.Var("through")
		if level < 0 {
			return q.rel.Path(RoomTerm(from), RoomTerm(to), through), through
		}
		return mk.Conj(
			q.rel.PathWithin(RoomTerm(from), RoomTerm(to), through, level),
			Battery(through, mk.Nat(level)),
		), through
	}, extra...)
	if err != nil {
		return nil, err
	}
	return routes(answers)
}

// WinningRoutes returns the distinct winning walks on a battery of level.
// A limit of zero or less returns all of them.
func (q *Query) WinningRoutes(ctx context.Context, level, limit int) ([]Route, error) {
	answers, err := q.distinct(ctx, limit, func(s *mk.Session) (mk.Goal, mk.Term) {
		through := s.Var("through")
		return q.rel.WinningOn(through, level), through
	})
	if err != nil {
		return nil, err
	}
	return routes(answers)
}

// CheckRoute reports whether route is a winning walk on a battery of level.
func (q *Query) CheckRoute(ctx context.Context, route Route, level int) (bool, error) {
	answers, err := q.distinct(ctx, 1, func(s *mk.Session) (mk.Goal, mk.Term) {
		return q.rel.WinningOn(route.Term(), level), mk.Nil
	})
	if err != nil {
		return false, err
	}
	return len(answers) > 0, nil
}

func routes(answers []mk.Term) ([]Route, error) {
	out := make([]Route, 0, len(answers))
	for _, a := range answers {
		r, err := RouteFromTerm(a)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
