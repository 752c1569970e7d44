package labyrinth

import (
	"errors"
	"fmt"
	"strconv"

	p "github.com/vektah/goparsify"
)

// ErrSyntax is returned when a room, door or route cannot be parsed.
var ErrSyntax = errors.New("syntax error")

var (
	// roomParser reads a single room: 4:4
	roomParser p.Parser
	// doorParser reads a door between two rooms: 1:2 -> 1:1
	doorParser p.Parser
	// routeParser reads rooms in walking order, separated by spaces, commas
	// or arrows: 4:4 3:4 2:4, 4:4,3:4 or 4:4 -> 3:4
	routeParser p.Parser
)

func init() {
	coordinate := p.Chars("0-9", 1, 9).Map(func(n *p.Result) {
		// At most nine digits, so the conversion cannot overflow.
		v, _ := strconv.Atoi(n.Token)
		n.Result = v
	})
	roomParser = p.Seq(coordinate, ":", coordinate).Map(func(n *p.Result) {
		n.Result = Room{X: n.Child[0].Result.(int), Y: n.Child[2].Result.(int)}
	})
	doorParser = p.Seq(roomParser, "->", roomParser).Map(func(n *p.Result) {
		n.Result = Door{From: n.Child[0].Result.(Room), To: n.Child[2].Result.(Room)}
	})
	// A separator must be followed by another room.
	next := p.Seq(p.Maybe(p.Any(",", "->")), roomParser)
	routeParser = p.Seq(roomParser, p.Some(next)).Map(func(n *p.Result) {
		route := make(Route, 0, 1+len(n.Child[1].Child))
		route = append(route, n.Child[0].Result.(Room))
		for _, c := range n.Child[1].Child {
			route = append(route, c.Child[1].Result.(Room))
		}
		n.Result = route
	})
}

// ParseRoom parses the x:y form of a room.
func ParseRoom(s string) (Room, error) {
	res, err := p.Run(roomParser, s)
	if err != nil {
		return Room{}, fmt.Errorf("%w: room %q: %v", ErrSyntax, s, err)
	}
	return res.(Room), nil
}

// ParseDoor parses the "x:y -> x:y" form of a door.
func ParseDoor(s string) (Door, error) {
	res, err := p.Run(doorParser, s)
	if err != nil {
		return Door{}, fmt.Errorf("%w: door %q: %v", ErrSyntax, s, err)
	}
	return res.(Door), nil
}

// ParseRoute parses a list of rooms in walking order. A route has at least
// one room and never ends in a separator.
func ParseRoute(s string) (Route, error) {
	res, err := p.Run(routeParser, s)
	if err != nil {
		return nil, fmt.Errorf("%w: route %q: %v", ErrSyntax, s, err)
	}
	return res.(Route), nil
}

// ParseRooms parses each string as a room.
func ParseRooms(ss []string) ([]Room, error) {
	rooms := make([]Room, len(ss))
	for i, s := range ss {
		r, err := ParseRoom(s)
		if err != nil {
			return nil, err
		}
		rooms[i] = r
	}
	return rooms, nil
}
