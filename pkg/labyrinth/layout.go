// Package labyrinth describes a grid of rooms joined by one-way doors and the
// relations used to reason about routes through it: which rooms are
// entrances, exits or hazards, which room sequences are paths, and which
// paths can be walked on a given battery.
//
// Every relation is a minikanren.Goal built from unification, conjunction,
// disjunction, fresh variables and suspension; there is no bespoke graph
// search in this package.
package labyrinth

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned by Validate for inconsistent layouts.
var ErrInvalidLayout = errors.New("invalid layout")

// Room is a cell of the grid. Coordinates start at 1:
//
//	1:1 ... W:1
//	...     ...
//	1:H ... W:H
type Room struct {
	X int
	Y int
}

// String returns the x:y form.
func (r Room) String() string {
	return fmt.Sprintf("%d:%d", r.X, r.Y)
}

// Door is a one-way connection between two rooms.
type Door struct {
	From Room
	To   Room
}

// String returns the "from -> to" form.
func (d Door) String() string {
	return d.From.String() + " -> " + d.To.String()
}

// Role names one of the configured room sets.
type Role string

// The room roles of a layout.
const (
	RoleEntrance Role = "entrance"
	RoleExit     Role = "exit"
	RoleHazard   Role = "hazard"
)

// Roles lists every role in display order.
var Roles = []Role{RoleEntrance, RoleExit, RoleHazard}

// Layout is the static configuration the relations are built from.
type Layout struct {
	Name      string
	Width     int
	Height    int
	Doors     []Door
	Entrances []Room
	Exits     []Room
	Hazards   []Room
}

// Reference returns the reference labyrinth: a 4x4 grid with 18 doors,
// entrances at 1:4 and 4:4, exits at 1:1 and 4:3, and the minotaur at 3:2.
func Reference() *Layout {
	r := func(x, y int) Room { return Room{X: x, Y: y} }
	return &Layout{
		Name:   "reference",
		Width:  4,
		Height: 4,
		Doors: []Door{
			{r(1, 2), r(1, 1)},
			{r(1, 2), r(2, 2)},
			{r(1, 3), r(1, 2)},
			{r(1, 4), r(1, 3)},
			{r(2, 1), r(1, 1)},
			{r(2, 2), r(3, 2)},
			{r(2, 3), r(2, 2)},
			{r(2, 3), r(1, 3)},
			{r(2, 4), r(2, 3)},
			{r(3, 1), r(2, 1)},
			{r(3, 2), r(3, 3)},
			{r(3, 2), r(4, 2)},
			{r(3, 4), r(2, 4)},
			{r(3, 4), r(3, 3)},
			{r(4, 1), r(3, 1)},
			{r(4, 2), r(4, 1)},
			{r(4, 2), r(4, 3)},
			{r(4, 4), r(3, 4)},
		},
		Entrances: []Room{r(1, 4), r(4, 4)},
		Exits:     []Room{r(1, 1), r(4, 3)},
		Hazards:   []Room{r(3, 2)},
	}
}

// RoomsFor returns the rooms configured for role.
func (l *Layout) RoomsFor(role Role) []Room {
	switch role {
	case RoleEntrance:
		return l.Entrances
	case RoleExit:
		return l.Exits
	case RoleHazard:
		return l.Hazards
	default:
		return nil
	}
}

// Contains reports whether r lies on the grid.
func (l *Layout) Contains(r Room) bool {
	return r.X >= 1 && r.X <= l.Width && r.Y >= 1 && r.Y <= l.Height
}

// Validate checks that the grid has a size, that every room lies on it and
// that no door or role room is listed twice.
func (l *Layout) Validate() error {
	if l.Width < 1 || l.Height < 1 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	seen := make(map[Door]bool, len(l.Doors))
	for _, d := range l.Doors {
		if !l.Contains(d.From) || !l.Contains(d.To) {
			return fmt.Errorf("%w: door %s leaves the %dx%d grid", ErrInvalidLayout, d, l.Width, l.Height)
		}
		if seen[d] {
			return fmt.Errorf("%w: door %s listed twice", ErrInvalidLayout, d)
		}
		seen[d] = true
	}
	for _, role := range Roles {
		rooms := make(map[Room]bool)
		for _, r := range l.RoomsFor(role) {
			if !l.Contains(r) {
				return fmt.Errorf("%w: %s room %s is off the grid", ErrInvalidLayout, role, r)
			}
			if rooms[r] {
				return fmt.Errorf("%w: %s room %s listed twice", ErrInvalidLayout, role, r)
			}
			rooms[r] = true
		}
	}
	return nil
}

// Acyclic reports whether no room can be reached again by walking through
// doors. Only acyclic layouts have finitely many paths.
func (l *Layout) Acyclic() bool {
	next := make(map[Room][]Room)
	for _, d := range l.Doors {
		next[d.From] = append(next[d.From], d.To)
	}
	const (
		unvisited = iota
		active
		finished
	)
	state := make(map[Room]int)
	var visit func(Room) bool
	visit = func(r Room) bool {
		switch state[r] {
		case active:
			return false
		case finished:
			return true
		}
		state[r] = active
		for _, n := range next[r] {
			if !visit(n) {
				return false
			}
		}
		state[r] = finished
		return true
	}
	for _, d := range l.Doors {
		if !visit(d.From) {
			return false
		}
	}
	return true
}
