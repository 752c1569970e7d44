package labyrinth

import (
	"context"
	"testing"
	"time"

	mk "github.com/gitrdm/minotaur/pkg/minikanren"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuery(t *testing.T, l *Layout, opts ...mk.Option) *Query {
	t.Helper()
	q, err := NewQuery(l, opts...)
	require.NoError(t, err)
	return q
}

func TestNewQueryValidates(t *testing.T) {
	l := Reference()
	l.Height = 3
	_, err := NewQuery(l)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestQueryDoorsAndRooms(t *testing.T) {
	ctx := context.Background()
	q := newQuery(t, Reference())

	doors, err := q.Doors(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, Reference().Doors, doors)

	for _, role := range Roles {
		rooms, err := q.Rooms(ctx, role)
		require.NoError(t, err)
		assert.ElementsMatch(t, Reference().RoomsFor(role), rooms, string(role))
	}
}

func TestQueryRoutes(t *testing.T) {
	ctx := context.Background()
	q := newQuery(t, Reference())

	all, err := q.Routes(ctx, room(4, 4), room(3, 2), -1, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Route{
		{room(4, 4), room(3, 4), room(2, 4), room(2, 3), room(2, 2), room(3, 2)},
		{room(4, 4), room(3, 4), room(2, 4), room(2, 3), room(1, 3), room(1, 2), room(2, 2), room(3, 2)},
	}, all)

	charged, err := q.Routes(ctx, room(4, 4), room(3, 2), 7, 0)
	require.NoError(t, err)
	require.Len(t, charged, 1)
	assert.Equal(t, 6, charged[0].Len())

	limited, err := q.Routes(ctx, room(4, 4), room(3, 3), -1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestQueryWinningRoutes(t *testing.T) {
	ctx := context.Background()
	q := newQuery(t, Reference())

	routes, err := q.WinningRoutes(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, routes, 4)

	l := Reference()
	for _, r := range routes {
		assert.True(t, r.Connected(l), r.String())
		assert.Contains(t, l.Entrances, r[0])
		assert.Contains(t, l.Exits, r[len(r)-1])
		assert.Contains(t, r, room(3, 2))
		assert.LessOrEqual(t, r.Len(), 10)
	}
}

func TestQueryCheckRoute(t *testing.T) {
	ctx := context.Background()
	q := newQuery(t, Reference())
	route, err := ParseRoute("1:4 1:3 1:2 2:2 3:2 4:2 4:3")
	require.NoError(t, err)

	ok, err := q.CheckRoute(ctx, route, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = q.CheckRoute(ctx, route, 6)
	require.NoError(t, err)
	assert.False(t, ok, "seven rooms need seven charges")

	ok, err = q.CheckRoute(ctx, Route{room(1, 4), room(1, 3), room(1, 2), room(1, 1)}, 10)
	require.NoError(t, err)
	assert.False(t, ok, "the minotaur is never met")
}

func cyclic() *Layout {
	return &Layout{
		Name:      "cyclic",
		Width:     2,
		Height:    1,
		Doors:     []Door{{room(1, 1), room(2, 1)}, {room(2, 1), room(1, 1)}},
		Entrances: []Room{room(1, 1)},
		Exits:     []Room{room(2, 1)},
		Hazards:   []Room{room(2, 1)},
	}
}

func TestQueryCyclicLayout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q := newQuery(t, cyclic())

	_, err := q.Routes(ctx, room(1, 1), room(2, 1), -1, 0)
	assert.ErrorIs(t, err, ErrUnbounded)

	// A limit keeps the enumeration of infinitely many paths finite.
	routes, err := q.Routes(ctx, room(1, 1), room(2, 1), -1, 3)
	require.NoError(t, err)
	require.Len(t, routes, 3)
	for _, r := range routes {
		assert.True(t, r.Connected(cyclic()), r.String())
	}

	// So does a battery level.
	charged, err := q.Routes(ctx, room(1, 1), room(2, 1), 6, 0)
	require.NoError(t, err)
	assert.Len(t, charged, 3)

	winning, err := q.WinningRoutes(ctx, 4, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Route{
		{room(1, 1), room(2, 1)},
		{room(1, 1), room(2, 1), room(1, 1), room(2, 1)},
	}, winning)

	ok, err := q.CheckRoute(ctx, Route{room(1, 1), room(2, 1)}, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = q.CheckRoute(ctx, Route{room(1, 1), room(2, 1), room(1, 1), room(2, 1)}, 3)
	require.NoError(t, err)
	assert.False(t, ok, "four rooms need four charges")
}

func TestQueryCyclicLimitAboveAnswers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q := newQuery(t, cyclic())

	// Only two winning walks fit in four charges.
	winning, err := q.WinningRoutes(ctx, 4, 3)
	require.NoError(t, err)
	assert.Len(t, winning, 2)
}

func TestQueryCyclicUnreachable(t *testing.T) {
	l := cyclic()
	l.Width = 3
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	q := newQuery(t, l, mk.WithMaxSteps(500))
	_, err := q.Routes(ctx, room(1, 1), room(3, 1), -1, 5)
	assert.ErrorIs(t, err, mk.ErrStepLimit)

	routes, err := newQuery(t, l).Routes(ctx, room(1, 1), room(3, 1), 8, 0)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestQueryCyclicDefaultStepBound(t *testing.T) {
	if testing.Short() {
		t.Skip("walks the default step bound")
	}
	l := cyclic()
	l.Width = 3
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	q := newQuery(t, l)
	_, err := q.Routes(ctx, room(1, 1), room(3, 1), -1, 1)
	assert.ErrorIs(t, err, mk.ErrStepLimit)
}

func TestQueryStepLimit(t *testing.T) {
	q := newQuery(t, Reference(), mk.WithMaxSteps(10))
	_, err := q.WinningRoutes(context.Background(), 10, 0)
	assert.ErrorIs(t, err, mk.ErrStepLimit)
}

func TestQueryCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	q := newQuery(t, Reference())
	_, err := q.WinningRoutes(ctx, 10, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
