package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gitrdm/minotaur/internal/config"
	"github.com/gitrdm/minotaur/internal/store"
	"github.com/gitrdm/minotaur/pkg/labyrinth"
	mk "github.com/gitrdm/minotaur/pkg/minikanren"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// app carries what every command needs once the root command has resolved
// the configuration.
type app struct {
	configPath string
	dbPath     string
	layoutName string
	logLevel   string
	maxSteps   int64
	record     bool

	cfg    *config.Config
	layout *labyrinth.Layout
	log    *logrus.Logger
	store  *store.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "minotaur",
		Short: "Find the winning routes through a labyrinth",
		Long: `minotaur solves a labyrinth of one-way doors relationally. A winning
route walks from an entrance to an exit, meets the minotaur on the way and
is short enough for the battery.`,
		Version:       mk.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (YAML)")
	flags.StringVar(&a.dbPath, "db", "", "SQLite database for layouts and run history (default from store.path)")
	flags.StringVar(&a.layoutName, "layout", "", "use the stored layout with this name instead of the configured one")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (default from log.level)")
	flags.Int64Var(&a.maxSteps, "max-steps", 0, "bound every search to this many steps (default from solver.max_steps)")
	flags.BoolVar(&a.record, "record", false, "record queries in the run history")

	cmd.AddCommand(
		newDoorsCmd(a),
		newRolesCmd(a),
		newPathCmd(a),
		newWinningCmd(a),
		newSweepCmd(a),
		newCheckCmd(a),
		newSeedCmd(a),
		newLayoutsCmd(a),
		newExportCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the configuration and applies the flags that override it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Store.Path = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("max-steps") {
		cfg.Solver.MaxSteps = a.maxSteps
	}
	a.cfg = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(level)

	if a.layoutName != "" {
		s, err := a.openStore()
		if err != nil {
			return err
		}
		a.layout, err = s.LoadLayout(cmd.Context(), a.layoutName)
		return err
	}
	a.layout, err = cfg.Layout.Layout()
	return err
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// openStore opens the database on first use.
func (a *app) openStore() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	a.log.WithField("path", a.cfg.Store.Path).Debug("Store opened")
	a.store = s
	return s, nil
}

// query prepares a query over the layout whose searches count their work in
// reg.
func (a *app) query(reg *prometheus.Registry) (*labyrinth.Query, error) {
	return labyrinth.NewQuery(a.layout,
		mk.WithLogger(a.log.WithField("layout", a.layout.Name)),
		mk.WithMetrics(mk.NewMetrics(reg)),
		mk.WithMaxSteps(a.cfg.Solver.MaxSteps),
	)
}

// recordRun stores a run in the history when recording is on.
func (a *app) recordRun(ctx context.Context, query string, level, solutions int, reg *prometheus.Registry) error {
	steps := int64(counterValue(reg, "minotaur_search_steps_total"))
	entry := a.log.WithFields(logrus.Fields{
		"query":     query,
		"level":     level,
		"solutions": solutions,
		"steps":     steps,
	})
	entry.Debug("Query finished")
	if !a.record {
		return nil
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	run, err := s.RecordRun(ctx, store.Run{
		Layout:    a.layout.Name,
		Query:     query,
		Level:     level,
		Solutions: solutions,
		Steps:     steps,
	})
	if err != nil {
		return err
	}
	entry.WithField("run", run.ID).Info("Run recorded")
	return nil
}

// counterValue sums the counter called name across its label values.
func counterValue(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return 0
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

// fmtr groups digits in the counts it prints.
var fmtr = message.NewPrinter(language.English)

func printRoutes(w io.Writer, routes []labyrinth.Route) {
	for _, r := range routes {
		fmtr.Fprintf(w, "  %s (%d rooms)\n", r, r.Len())
	}
}

func parseLevel(s string) (int, error) {
	level, err := strconv.Atoi(s)
	if err != nil || level < 0 {
		return 0, fmt.Errorf("battery level %q: want a natural number", s)
	}
	return level, nil
}
