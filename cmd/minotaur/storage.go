package main

import (
	"fmt"

	"github.com/gitrdm/minotaur/internal/config"
	mk "github.com/gitrdm/minotaur/pkg/minikanren"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSeedCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the current layout in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			l := *a.layout
			if name != "" {
				l.Name = name
			}
			if err := s.SaveLayout(cmd.Context(), &l); err != nil {
				return err
			}
			fmtr.Fprintf(cmd.OutOrStdout(), "stored layout %s (%d doors) in %s\n", l.Name, len(l.Doors), a.cfg.Store.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "store under this name instead of the layout's own")
	return cmd
}

func newLayoutsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the stored layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			names, err := s.ListLayouts(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the current layout as a YAML configuration",
		Long: `export prints the layout in the form read from the layout section of a
configuration file, so a stored layout can be edited and loaded again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := struct {
				Layout config.LayoutSpec `yaml:"layout"`
			}{config.FromLayout(a.layout)}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode layout: %w", err)
			}
			return enc.Close()
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var all bool
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded queries, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			layout := a.layout.Name
			if all {
				layout = ""
			}
			runs, err := s.ListRuns(cmd.Context(), layout, limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range runs {
				level := "-"
				if r.Level >= 0 {
					level = fmt.Sprint(r.Level)
				}
				fmtr.Fprintf(w, "%s  %s  %-10s %-40s level %-3s %d solutions  %d steps\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.ID, r.Layout, r.Query, level, r.Solutions, r.Steps)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "show runs of every layout")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show, 0 for all")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := mk.GetVersionInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "minotaur %s (%s)\n", info.Version, info.GoVersion)
			return nil
		},
	}
}
