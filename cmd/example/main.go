// Package main walks through the relations behind the labyrinth, from a
// single room up to the winning routes of the reference layout.
package main

import (
	"context"
	"fmt"

	"github.com/gitrdm/minotaur/pkg/labyrinth"
	mk "github.com/gitrdm/minotaur/pkg/minikanren"
)

func main() {
	fmt.Println("=== Minotaur Examples ===")
	fmt.Println()

	rel := labyrinth.NewRelations(labyrinth.Reference())

	roomsAsAtoms()
	doorsOutOf(rel)
	splitRoute()
	doorsInto(rel)
	fairInterleaving()
	labyrinthExample()
}

func roomTerm(x, y int) mk.Term {
	return labyrinth.RoomTerm(labyrinth.Room{X: x, Y: y})
}

// roomsAsAtoms binds a variable to one room, then to any of the rooms
// holding a role.
func roomsAsAtoms() {
	fmt.Println("1. Rooms:")

	results := mk.Run(1, func(q *mk.Var) mk.Goal {
		return mk.Eq(q, roomTerm(3, 2))
	})
	fmt.Printf("   the minotaur's room => %v\n", results)

	results = mk.Run(5, func(q *mk.Var) mk.Goal {
		return mk.Disj(
			mk.Eq(q, roomTerm(1, 4)),
			mk.Eq(q, roomTerm(4, 4)),
		)
	})
	fmt.Printf("   either entrance => %v\n", results)
	fmt.Println()
}

// doorsOutOf asks where the doors of one room lead.
func doorsOutOf(rel *labyrinth.Relations) {
	fmt.Println("2. Doors:")

	results := mk.Run(5, func(q *mk.Var) mk.Goal {
		return rel.Door(roomTerm(1, 2), q)
	})
	fmt.Printf("   1:2 opens onto => %v\n", results)

	results = mk.Run(5, func(q *mk.Var) mk.Goal {
		return rel.Door(roomTerm(1, 1), q)
	})
	fmt.Printf("   1:1 opens onto => %v\n", results)
	fmt.Println()
}

// splitRoute cuts a walk into two legs with Appendo run backwards.
func splitRoute() {
	fmt.Println("3. Routes as Lists:")

	walk := mk.List(roomTerm(1, 4), roomTerm(1, 3), roomTerm(1, 2), roomTerm(1, 1))
	results := mk.Run(10, func(q *mk.Var) mk.Goal {
		return mk.Fresh2("first", "second", func(first, second *mk.Var) mk.Goal {
			return mk.Conj(
				mk.Appendo(first, second, walk),
				mk.Eq(q, mk.List(first, second)),
			)
		})
	})
	fmt.Printf("   ways to split %v => %d\n", walk, len(results))
	for _, r := range results {
		fmt.Printf("     %v\n", r)
	}
	fmt.Println()
}

// doorsInto runs the door relation from its other end.
func doorsInto(rel *labyrinth.Relations) {
	fmt.Println("4. Doors Backwards:")

	results := mk.Run(5, func(q *mk.Var) mk.Goal {
		return rel.Door(q, roomTerm(2, 2))
	})
	fmt.Printf("   rooms opening onto 2:2 => %v\n", results)

	// Two doors in a row, with the room between them left to the search.
	results = mk.Run(10, func(q *mk.Var) mk.Goal {
		return mk.Fresh("middle", func(middle *mk.Var) mk.Goal {
			return mk.Conj(
				rel.Door(q, middle),
				rel.Door(middle, roomTerm(3, 2)),
			)
		})
	})
	fmt.Printf("   two doors short of 3:2 => %v\n", results)
	fmt.Println()
}

// fairInterleaving shows that an endless relation does not starve its
// neighbours in a disjunction.
func fairInterleaving() {
	fmt.Println("5. Fair Interleaving:")

	var forever func(x mk.Term, v int) mk.Goal
	forever = func(x mk.Term, v int) mk.Goal {
		return mk.Disj(
			mk.Eq(x, mk.NewAtom(v)),
			mk.Delay(func() mk.Goal { return forever(x, v) }),
		)
	}

	results := mk.Run(6, func(q *mk.Var) mk.Goal {
		return mk.Disj(forever(q, 5), forever(q, 6))
	})
	fmt.Printf("   fives or sixes => %v\n", results)

	// The number of elements of a list of unknown length
	results = mk.Run(4, func(q *mk.Var) mk.Goal {
		return mk.Fresh("n", func(n *mk.Var) mk.Goal {
			return mk.Lengtho(q, n)
		})
	})
	fmt.Printf("   lists by length => %v\n", results)
	fmt.Println()
}

// labyrinthExample runs the winning-route relation on the reference layout.
func labyrinthExample() {
	fmt.Println("6. The Labyrinth:")

	q, err := labyrinth.NewQuery(labyrinth.Reference())
	if err != nil {
		fmt.Printf("   %v\n", err)
		return
	}
	ctx := context.Background()

	for _, level := range []int{6, 7, 10} {
		routes, err := q.WinningRoutes(ctx, level, 0)
		if err != nil {
			fmt.Printf("   %v\n", err)
			return
		}
		fmt.Printf("   %d winning route(s) on %d charges\n", len(routes), level)
		for _, r := range routes {
			fmt.Printf("     %s\n", r)
		}
	}

	route, err := labyrinth.ParseRoute("4:4 -> 3:4 -> 3:3")
	if err != nil {
		fmt.Printf("   %v\n", err)
		return
	}
	ok, err := q.CheckRoute(ctx, route, 9)
	if err != nil {
		fmt.Printf("   %v\n", err)
		return
	}
	fmt.Printf("   %s wins on 9 charges? %v\n", route, ok)
	fmt.Println()
}
