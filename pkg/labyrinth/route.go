package labyrinth

import (
	"fmt"
	"strings"

	mk "github.com/gitrdm/minotaur/pkg/minikanren"
)

// RoomTerm returns the atom for a room.
func RoomTerm(r Room) mk.Term {
	return mk.NewAtom(r)
}

// Route is a sequence of rooms in walking order, entrance first.
type Route []Room

// String returns the rooms joined by arrows.
func (r Route) String() string {
	parts := make([]string, len(r))
	for i, room := range r {
		parts[i] = room.String()
	}
	return strings.Join(parts, " -> ")
}

// Len returns the number of rooms on the route.
func (r Route) Len() int {
	return len(r)
}

// Term returns the sequence term used by the relations, which lists the
// rooms destination first.
func (r Route) Term() mk.Term {
	terms := make([]mk.Term, len(r))
	for i, room := range r {
		terms[len(r)-1-i] = RoomTerm(room)
	}
	return mk.List(terms...)
}

// Connected reports whether every consecutive pair of rooms is joined by a
// door of l.
func (r Route) Connected(l *Layout) bool {
	doors := make(map[Door]bool, len(l.Doors))
	for _, d := range l.Doors {
		doors[d] = true
	}
	for i := 1; i < len(r); i++ {
		if !doors[Door{From: r[i-1], To: r[i]}] {
			return false
		}
	}
	return true
}

// RouteFromTerm decodes a reified sequence term, destination first, into a
// route in walking order.
func RouteFromTerm(t mk.Term) (Route, error) {
	elems, ok := mk.ListTerms(t)
	if !ok {
		return nil, fmt.Errorf("not a room sequence: %s", t)
	}
	route := make(Route, len(elems))
	for i, e := range elems {
		room, err := roomFromTerm(e)
		if err != nil {
			return nil, err
		}
		route[len(elems)-1-i] = room
	}
	return route, nil
}

func roomFromTerm(t mk.Term) (Room, error) {
	if a, ok := t.(*mk.Atom); ok {
		if room, ok := a.Value().(Room); ok {
			return room, nil
		}
	}
	return Room{}, fmt.Errorf("not a room: %s", t)
}
