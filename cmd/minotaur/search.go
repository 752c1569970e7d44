package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitrdm/minotaur/internal/parallel"
	"github.com/gitrdm/minotaur/pkg/labyrinth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newDoorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doors",
		Short: "List the doors of the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.query(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			doors, err := q.Doors(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmtr.Fprintf(w, "%d doors in %s\n", len(doors), a.layout.Name)
			for _, d := range doors {
				fmt.Fprintf(w, "  %s\n", d)
			}
			return nil
		},
	}
}

func newRolesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the entrances, exits and minotaur rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.query(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, role := range labyrinth.Roles {
				rooms, err := q.Rooms(cmd.Context(), role)
				if err != nil {
					return err
				}
				names := make([]string, len(rooms))
				for i, r := range rooms {
					names[i] = r.String()
				}
				fmt.Fprintf(w, "%s: %s\n", role, strings.Join(names, " "))
			}
			return nil
		},
	}
}

func newPathCmd(a *app) *cobra.Command {
	var level, limit int
	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "List the paths between two rooms",
		Example: `  minotaur path 4:4 3:2
  minotaur path 4:4 3:2 --level 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rooms, err := labyrinth.ParseRooms(args)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			q, err := a.query(reg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("level") {
				level = -1
			}
			routes, err := q.Routes(cmd.Context(), rooms[0], rooms[1], level, limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if level < 0 {
				fmtr.Fprintf(w, "%d paths from %s to %s\n", len(routes), rooms[0], rooms[1])
			} else {
				fmtr.Fprintf(w, "%d paths from %s to %s on %d charges\n", len(routes), rooms[0], rooms[1], level)
			}
			printRoutes(w, routes)
			return a.recordRun(cmd.Context(), "path "+rooms[0].String()+" "+rooms[1].String(), level, len(routes), reg)
		},
	}
	cmd.Flags().IntVar(&level, "level", 0, "keep only the paths a battery of this level can power")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many paths (required on cyclic layouts without --level)")
	return cmd
}

func newWinningCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "winning LEVEL",
		Short: "List the winning routes on a battery of LEVEL charges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(args[0])
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			q, err := a.query(reg)
			if err != nil {
				return err
			}
			routes, err := q.WinningRoutes(cmd.Context(), level, limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmtr.Fprintf(w, "%d winning routes on %d charges\n", len(routes), level)
			printRoutes(w, routes)
			return a.recordRun(cmd.Context(), "winning", level, len(routes), reg)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many routes")
	return cmd
}

func newSweepCmd(a *app) *cobra.Command {
	var minLevel, maxLevel, workers int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Count the winning routes for a range of battery levels",
		Long: `sweep runs one winning-route search per battery level. The searches are
independent and run concurrently on a pool of workers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minLevel < 0 || maxLevel < minLevel {
				return fmt.Errorf("invalid level range %d..%d", minLevel, maxLevel)
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Solver.Workers
			}
			pool := parallel.NewWorkerPool(workers)
			defer pool.Shutdown()
			a.log.WithField("workers", pool.Workers()).Debug("Sweep started")

			counts := make([]int, maxLevel-minLevel+1)
			regs := make([]*prometheus.Registry, len(counts))
			batch := pool.NewBatch(cmd.Context())
			for i := range counts {
				level := minLevel + i
				regs[i] = prometheus.NewRegistry()
				q, err := a.query(regs[i])
				if err != nil {
					return err
				}
				if err := batch.Go(func(ctx context.Context) error {
					routes, err := q.WinningRoutes(ctx, level, 0)
					if err != nil {
						return fmt.Errorf("level %d: %w", level, err)
					}
					counts[i] = len(routes)
					return nil
				}); err != nil {
					break
				}
			}
			if err := batch.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "level  winning")
			for i, n := range counts {
				fmtr.Fprintf(w, "%5d  %7d\n", minLevel+i, n)
				if err := a.recordRun(cmd.Context(), "winning", minLevel+i, n, regs[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&minLevel, "min", 0, "lowest battery level")
	cmd.Flags().IntVar(&maxLevel, "max", 13, "highest battery level")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent searches (default from solver.workers, 0 means one per CPU)")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check LEVEL ROOM...",
		Short: "Check whether a route is a winning route on a battery of LEVEL charges",
		Example: `  minotaur check 7 1:4 1:3 1:2 2:2 3:2 4:2 4:3
  minotaur check 7 "1:4 -> 1:3 -> 1:2 -> 2:2 -> 3:2 -> 4:2 -> 4:3"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(args[0])
			if err != nil {
				return err
			}
			route, err := labyrinth.ParseRoute(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			q, err := a.query(reg)
			if err != nil {
				return err
			}
			ok, err := q.CheckRoute(cmd.Context(), route, level)
			if err != nil {
				return err
			}

			verdict := "not a winning route"
			if ok {
				verdict = "a winning route"
			}
			fmtr.Fprintf(cmd.OutOrStdout(), "%s is %s on %d charges\n", route, verdict, level)
			solutions := 0
			if ok {
				solutions = 1
			}
			return a.recordRun(cmd.Context(), "check "+route.String(), level, solutions, reg)
		},
	}
}
