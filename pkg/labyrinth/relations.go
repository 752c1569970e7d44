package labyrinth

import (
	mk "github.com/gitrdm/minotaur/pkg/minikanren"
)

// Relations holds the goals over one layout. Building a goal does no search;
// the returned goals are evaluated by a minikanren.Session.
type Relations struct {
	layout *Layout
}

// NewRelations builds the relations for l. The layout is read, never
// modified, and must not change while goals built from it are in use.
func NewRelations(l *Layout) *Relations {
	return &Relations{layout: l}
}

// Layout returns the layout the relations were built from.
func (r *Relations) Layout() *Layout {
	return r.layout
}

// Door holds when a door leads from room from to room to. It has one
// disjunct per configured door.
func (r *Relations) Door(from, to mk.Term) mk.Goal {
	goals := make([]mk.Goal, len(r.layout.Doors))
	for i, d := range r.layout.Doors {
		goals[i] = mk.Conj(mk.Eq(from, RoomTerm(d.From)), mk.Eq(to, RoomTerm(d.To)))
	}
	return mk.Disj(goals...)
}

// Role holds when location is one of rooms.
func (r *Relations) Role(location mk.Term, rooms []Room) mk.Goal {
	goals := make([]mk.Goal, len(rooms))
	for i, room := range rooms {
		goals[i] = mk.Eq(location, RoomTerm(room))
	}
	return mk.Disj(goals...)
}

// Entrance holds for the entrance rooms.
func (r *Relations) Entrance(location mk.Term) mk.Goal {
	return r.Role(location, r.layout.Entrances)
}

// Exit holds for the exit rooms.
func (r *Relations) Exit(location mk.Term) mk.Goal {
	return r.Role(location, r.layout.Exits)
}

// Hazard holds for the rooms holding the minotaur.
func (r *Relations) Hazard(location mk.Term) mk.Goal {
	return r.Role(location, r.layout.Hazards)
}

// Path relates two rooms to a sequence of rooms walked from one to the
// other. The sequence lists the destination first and the starting room
// last, e.g. (3:2 2:2 2:3 2:4 3:4 4:4) for a walk from 4:4 to 3:2.
//
// On a cyclic layout Path has infinitely many answers; see PathWithin.
func (r *Relations) Path(from, to, through mk.Term) mk.Goal {
	return r.pathFrom(from, to, through, mk.List(from), -1)
}

// PathWithin is Path restricted to walks of at most rooms rooms. The bound
// is spent while walking, so the relation is finite on every layout.
func (r *Relations) PathWithin(from, to, through mk.Term, rooms int) mk.Goal {
	// Every walk crosses at least one door.
	if rooms < 2 {
		return mk.Failure
	}
	return r.pathFrom(from, to, through, mk.List(from), rooms-1)
}

// pathFrom extends walked, the rooms visited so far, most recent first.
// doors is how many more doors may be crossed; a negative count is no limit.
func (r *Relations) pathFrom(from, to, through, walked mk.Term, doors int) mk.Goal {
	if doors == 0 {
		return mk.Failure
	}
	rest := doors
	if doors > 0 {
		rest = doors - 1
	}
	return mk.Disj(
		// A door leads straight to the destination.
		mk.Conj(r.Door(from, to), mk.Eq(mk.Cons(to, walked), through)),
		// Or step through a neighbour and keep walking.
		mk.Fresh("next", func(next *mk.Var) mk.Goal {
			return mk.Conj(
				r.Door(from, next),
				mk.Delay(func() mk.Goal {
					return r.pathFrom(next, to, through, mk.Cons(next, walked), rest)
				}),
			)
		}),
	)
}

// Battery holds when a walk along through can be made on level charges:
// through has at least two rooms and level, a Peano natural, is at least the
// number of rooms on it. Each recursive step strips one room and one charge.
func Battery(through, level mk.Term) mk.Goal {
	return mk.Fresh3("first", "second", "rest", func(first, second, rest *mk.Var) mk.Goal {
		return mk.Conj(
			mk.Eq(mk.Cons(first, mk.Cons(second, rest)), through),
			mk.Fresh("remaining", func(remaining *mk.Var) mk.Goal {
				return mk.Disj(
					// The last two rooms need two charges.
					mk.Conj(mk.Eq(rest, mk.Nil), mk.Eq(mk.Succ(mk.Succ(remaining)), level)),
					// Otherwise spend one on the first room and go on.
					mk.Conj(
						mk.Eq(mk.Succ(remaining), level),
						mk.Delay(func() mk.Goal {
							return Battery(mk.Cons(second, rest), remaining)
						}),
					),
				)
			}),
		)
	})
}

// Edges holds when n, a Peano natural, is exactly the number of doors
// crossed along through: its length minus one.
func Edges(through, n mk.Term) mk.Goal {
	return mk.Fresh2("last", "rest", func(last, rest *mk.Var) mk.Goal {
		return mk.Conj(
			mk.Eq(mk.Cons(last, rest), through),
			mk.Lengtho(rest, n),
		)
	})
}

// MeetHazard holds when some room of through holds the minotaur.
func (r *Relations) MeetHazard(through mk.Term) mk.Goal {
	return mk.Fresh2("room", "rest", func(room, rest *mk.Var) mk.Goal {
		return mk.Conj(
			mk.Eq(mk.Cons(room, rest), through),
			mk.Disj(
				r.Hazard(room),
				mk.Delay(func() mk.Goal { return r.MeetHazard(rest) }),
			),
		)
	})
}

// Winning holds for the walks from an entrance to an exit that meet the
// minotaur and can be made on level charges. level may be unbound; on a
// cyclic layout use WinningOn, which stays finite.
func (r *Relations) Winning(through, level mk.Term) mk.Goal {
	return mk.Fresh2("entrance", "exit", func(entrance, exit *mk.Var) mk.Goal {
		return mk.Conj(
			r.Entrance(entrance),
			r.Exit(exit),
			r.Path(entrance, exit, through),
			Battery(through, level),
			r.MeetHazard(through),
		)
	})
}

// WinningOn is Winning for a known battery level. Walks longer than level
// rooms are never built, so the relation is finite on cyclic layouts too.
func (r *Relations) WinningOn(through mk.Term, level int) mk.Goal {
	if level < 2 {
		return mk.Failure
	}
	return mk.Fresh2("entrance", "exit", func(entrance, exit *mk.Var) mk.Goal {
		return mk.Conj(
			r.Entrance(entrance),
			r.Exit(exit),
			r.PathWithin(entrance, exit, through, level),
			Battery(through, mk.Nat(level)),
			r.MeetHazard(through),
		)
	})
}
