package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/geocap/internal/numeric"
	"github.com/mesh-intelligence/geocap/internal/shapefile"
	"github.com/mesh-intelligence/geocap/internal/sqlite"
)

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <file.shp>",
		Short: "Count the records in a shapefile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := shapefile.FileToSeries(args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"file": args[0], "records": series.Len()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), series.Len())
			return nil
		},
	}
}

// coordSummary describes the vertices of a series.
type coordSummary struct {
	Records  int             `json:"records"`
	Vertices int             `json:"vertices"`
	X        numeric.Summary `json:"x"`
	Y        numeric.Summary `json:"y"`
	// Central is the vertex closest to the vertex centroid.
	Central []float64 `json:"central"`
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.shp>",
		Short: "Summarize the vertex coordinates of a shapefile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := shapefile.FileToSeries(args[0])
			if err != nil {
				return err
			}
			s, err := a.summarize(series)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), s)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "records:  %d\nvertices: %d\n", s.Records, s.Vertices)
			fmt.Fprintf(out, "x: mean %.6g  std %.6g  min %.6g  max %.6g\n", s.X.Mean, s.X.StdDev, s.X.Min, s.X.Max)
			fmt.Fprintf(out, "y: mean %.6g  std %.6g  min %.6g  max %.6g\n", s.Y.Mean, s.Y.StdDev, s.Y.Min, s.Y.Max)
			fmt.Fprintf(out, "central vertex: (%.6g, %.6g)\n", s.Central[0], s.Central[1])
			return nil
		},
	}
}

func (a *app) summarize(series shapefile.Series) (*coordSummary, error) {
	var coords [][]float64
	for _, shape := range series.All() {
		coords = append(coords, shapefile.Coordinates(shape)...)
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("no vertices: %w", numeric.ErrEmptyInput)
	}

	xs := make([]float64, len(coords))
	ys := make([]float64, len(coords))
	for i, c := range coords {
		xs[i], ys[i] = c[0], c[1]
	}

	s := &coordSummary{Records: series.Len(), Vertices: len(coords)}
	var err error
	if s.X, err = a.env.Stats.Describe(xs); err != nil {
		return nil, err
	}
	if s.Y, err = a.env.Stats.Describe(ys); err != nil {
		return nil, err
	}

	tree, err := a.env.KDTree(coords)
	if err != nil {
		return nil, err
	}
	if s.Central, _, err = tree.Nearest([]float64{s.X.Mean, s.Y.Mean}); err != nil {
		return nil, err
	}
	return s, nil
}

func newImportCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file.shp>",
		Short: "Load a shapefile into the series store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			series, err := shapefile.FileToSeries(args[0])
			if err != nil {
				return err
			}
			return a.withStore("import", func(s *sqlite.Store) error {
				if err := s.Save(name, series); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d records as %s\n", series.Len(), name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "series name (default: file base name)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file.shp>",
		Short: "Write a stored series to a shapefile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("export", func(s *sqlite.Store) error {
				series, err := s.Load(args[0])
				if err != nil {
					return err
				}
				if err := shapefile.SeriesToFile(series, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", series.Len(), args[1])
				return nil
			})
		},
	}
}
