package labyrinth

import (
	"testing"

	mk "github.com/gitrdm/minotaur/pkg/minikanren"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference(t *testing.T) {
	l := Reference()
	require.NoError(t, l.Validate())

	assert.Len(t, l.Doors, 18)
	assert.Equal(t, []Room{room(1, 4), room(4, 4)}, l.RoomsFor(RoleEntrance))
	assert.Equal(t, []Room{room(1, 1), room(4, 3)}, l.RoomsFor(RoleExit))
	assert.Equal(t, []Room{room(3, 2)}, l.RoomsFor(RoleHazard))
	assert.Nil(t, l.RoomsFor(Role("treasure")))
	assert.True(t, l.Acyclic())
}

func TestRoomAndDoorStrings(t *testing.T) {
	assert.Equal(t, "4:3", room(4, 3).String())
	assert.Equal(t, "1:2 -> 1:1", Door{From: room(1, 2), To: room(1, 1)}.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(l *Layout)
	}{
		{"empty grid", func(l *Layout) { l.Width = 0 }},
		{"door off the grid", func(l *Layout) {
			l.Doors = append(l.Doors, Door{From: room(4, 4), To: room(5, 4)})
		}},
		{"duplicate door", func(l *Layout) { l.Doors = append(l.Doors, l.Doors[0]) }},
		{"entrance off the grid", func(l *Layout) { l.Entrances = append(l.Entrances, room(0, 1)) }},
		{"duplicate exit", func(l *Layout) { l.Exits = append(l.Exits, l.Exits[0]) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Reference()
			tt.modify(l)
			assert.ErrorIs(t, l.Validate(), ErrInvalidLayout)
		})
	}
}

func TestAcyclic(t *testing.T) {
	l := Reference()
	l.Doors = append(l.Doors, Door{From: room(1, 1), To: room(1, 4)})
	assert.False(t, l.Acyclic(), "1:4 reaches 1:1 which now leads back")

	loop := &Layout{Name: "loop", Width: 1, Height: 1, Doors: []Door{{room(1, 1), room(1, 1)}}}
	assert.False(t, loop.Acyclic())

	empty := &Layout{Name: "empty", Width: 2, Height: 2}
	assert.True(t, empty.Acyclic())
}

func TestRouteTerm(t *testing.T) {
	route := Route{room(4, 4), room(3, 4), room(3, 3)}
	assert.Equal(t, "4:4 -> 3:4 -> 3:3", route.String())
	assert.Equal(t, 3, route.Len())
	assert.Equal(t, "(3:3 3:4 4:4)", route.Term().String())

	decoded, err := RouteFromTerm(route.Term())
	require.NoError(t, err)
	assert.Equal(t, route, decoded)
	assert.True(t, route.Connected(Reference()))
	assert.False(t, Route{room(3, 3), room(3, 4)}.Connected(Reference()), "doors are one-way")
}

func TestRouteFromTermRejects(t *testing.T) {
	_, err := RouteFromTerm(RoomTerm(room(1, 1)))
	assert.Error(t, err)

	_, err = RouteFromTerm(mk.List(RoomTerm(room(1, 1)), mk.NewAtom("1:2")))
	assert.Error(t, err)
}
