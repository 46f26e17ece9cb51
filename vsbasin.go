package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rtm0/vsbasin/internal/config"
	"github.com/rtm0/vsbasin/internal/export"
	"github.com/rtm0/vsbasin/internal/grid"
	"github.com/rtm0/vsbasin/internal/isovel"
	"github.com/rtm0/vsbasin/internal/logging"
	"github.com/rtm0/vsbasin/internal/section"
	"github.com/rtm0/vsbasin/internal/station"
	"github.com/rtm0/vsbasin/internal/vs"
)

const description = `vsbasin turns shear-wave velocity soundings into plot-ready tables.

Every station file starts with a "longitude latitude" line followed by
"depth velocity" lines (depth in km, positive down; velocity in km/s).
Stations are merged into one dataset and regularized onto the full
latitude/longitude/depth grid they span, with cells no station measured
marked as missing. From that grid vsbasin cuts north-south (constant
longitude), east-west (constant latitude) and diagonal (NE-SW, NW-SE)
cross-sections, and computes iso-velocity surfaces: the depth at which
each station reaches a velocity such as 1.0 or 2.5 km/s.`

var (
	configPath string
	outDir     string
	outFormat  string
	outPrefix  string
	logLevel   string
	nsLon      string
	ewLat      string
	diagonal   string
	velocities []float64

	cfg    *config.Config
	logger *slog.Logger
)

// newRootCmd builds the command tree. Flags bind to the package variables
// above, resetting them to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vsbasin",
		Short:         "Regularize and slice shear-wave velocity profiles",
		Long:          description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Output.Dir = outDir
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = outFormat
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Output.Prefix = outPrefix
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err = logging.New(cfg.Logging)
			return err
		},
	}

	gridCmd := &cobra.Command{
		Use:   "grid FILE...",
		Short: "Merge station files and write the regular grid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newExporter()
			if err != nil {
				return err
			}
			rs, err := station.Load(args)
			if err != nil {
				return err
			}
			g := grid.Regularize(rs)
			logger.Info("grid summary", grid.Summary(g)...)
			_, err = e.Frame("grid", g)
			return err
		},
	}

	sliceCmd := &cobra.Command{
		Use:   "slice (--ns LON | --ew LAT | --diagonal nesw|nwse) FILE...",
		Short: "Write a cross-section of the regular grid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newExporter()
			if err != nil {
				return err
			}
			rs, err := station.Load(args)
			if err != nil {
				return err
			}
			g := grid.Regularize(rs)
			name, f, err := cutSection(rs, g)
			if err != nil {
				return err
			}
			_, err = e.Frame(name, f)
			return err
		},
	}

	isovelCmd := &cobra.Command{
		Use:   "isovel [--velocity V]... FILE...",
		Short: "Write iso-velocity depth surfaces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newExporter()
			if err != nil {
				return err
			}
			targets := velocities
			if len(targets) == 0 {
				targets = cfg.IsoVelocity.Targets
			}
			surfaces, err := isovel.Surfaces(args, targets)
			if err != nil {
				return err
			}
			for _, v := range targets {
				if _, err := e.Points("z"+strconv.FormatFloat(v, 'f', -1, 64), surfaces[v]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	docCmd := &cobra.Command{
		Use:   "doc",
		Short: "Describe what vsbasin does",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), description)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&outDir, "out", ".", "directory for written files")
	pf.StringVar(&outFormat, "format", "csv", fmt.Sprintf("output format, one of %v", export.Formats()))
	pf.StringVar(&outPrefix, "prefix", "basin", "prefix of written file names")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	sliceCmd.Flags().StringVar(&nsLon, "ns", "", "longitude of a north-south section")
	sliceCmd.Flags().StringVar(&ewLat, "ew", "", "latitude of an east-west section")
	sliceCmd.Flags().StringVar(&diagonal, "diagonal", "", "diagonal section: nesw or nwse")
	sliceCmd.MarkFlagsMutuallyExclusive("ns", "ew", "diagonal")

	isovelCmd.Flags().Float64SliceVar(&velocities, "velocity", nil, "target velocity in km/s (repeatable)")

	rootCmd.AddCommand(gridCmd, sliceCmd, isovelCmd, docCmd)
	return rootCmd
}

// cutSection applies the section selected on the command line to g.
func cutSection(rs vs.RecordSet, g vs.Frame) (string, vs.Frame, error) {
	switch {
	case nsLon != "":
		lon, err := section.ParseCoordinate(nsLon)
		if err != nil {
			return "", vs.Frame{}, err
		}
		f, err := section.NorthSouth(g, lon)
		return "ns_" + nsLon, f, err
	case ewLat != "":
		lat, err := section.ParseCoordinate(ewLat)
		if err != nil {
			return "", vs.Frame{}, err
		}
		f, err := section.EastWest(g, lat)
		return "ew_" + ewLat, f, err
	case diagonal == "nesw":
		f, err := section.NortheastSouthwestSection(rs, g)
		return diagonal, f, err
	case diagonal == "nwse":
		f, err := section.NorthwestSoutheastSection(rs, g)
		return diagonal, f, err
	case diagonal != "":
		return "", vs.Frame{}, vs.InvalidKind("slice", "unknown diagonal %q, want nesw or nwse", diagonal)
	}
	return "", vs.Frame{}, fmt.Errorf("one of --ns, --ew or --diagonal nesw|nwse is required")
}

func newExporter() (*export.Exporter, error) {
	return export.NewExporter(logger, cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.Format)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		}
		logger.Error("vsbasin failed", "err", err)
		os.Exit(1)
	}
}
