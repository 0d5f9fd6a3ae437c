// ephem synth — generate synthetic trajectories: circular two-body orbits
// and SGP4-propagated TLEs.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/export"
	"github.com/kepler-works/ephem/internal/orbit"
	"github.com/kepler-works/ephem/internal/plot"
	"github.com/kepler-works/ephem/internal/trajstat"
	"github.com/kepler-works/ephem/pkg/errs"
	"github.com/kepler-works/ephem/pkg/pprint"
)

func NewSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate synthetic trajectories",
		Long:  "Generate sample tables without a kernel: circular two-body orbits, or SGP4 propagation of a TLE.",
	}

	cmd.AddCommand(
		newSynthKeplerCmd(),
		newSynthTLECmd(),
	)
	return cmd
}

func newSynthKeplerCmd() *cobra.Command {
	var (
		mu       float64
		radius   float64
		samples  int
		epoch    string
		outPath  string
		format   string
		showPlot bool
	)

	cmd := &cobra.Command{
		Use:   "kepler",
		Short: "Sample one revolution of a circular two-body orbit",
		Example: `  ephem synth kepler
  ephem synth kepler --radius 42164 --samples 360
  ephem synth kepler --mu 42828.37 --radius 9400 -o phobosish.txt
  ephem synth kepler --plot`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			startET, err := parseEpoch(epoch)
			if err != nil {
				return err
			}

			smp, err := orbit.Synthesize(mu, radius, samples, startET)
			if err != nil {
				return err
			}
			audit(rt, "synth.kepler", "", "synthetic", "success")

			return emitSynthetic(rt, smp, outPath, format, showPlot, fmt.Sprintf(
				"circular orbit — r=%.1f km, T=%s", radius, fmtSpan(orbit.Period(mu, radius))))
		},
	}

	cmd.Flags().Float64Var(&mu, "mu", orbit.EarthMu, "Gravitational parameter, km³/s²")
	cmd.Flags().Float64Var(&radius, "radius", 7000, "Orbit radius, km")
	cmd.Flags().IntVarP(&samples, "samples", "s", 100, "Sample count over one period")
	cmd.Flags().StringVar(&epoch, "epoch", "2025-01-01T00:00:00", "Start epoch (UTC or ET seconds)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: csv | table | json")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "Render the orbit instead of printing samples")
	return cmd
}

func newSynthTLECmd() *cobra.Command {
	var (
		tleFile  string
		from     string
		to       string
		samples  int
		outPath  string
		format   string
		showPlot bool
	)

	cmd := &cobra.Command{
		Use:   "tle",
		Short: "Propagate a two-line element set with SGP4",
		Example: `  ephem synth tle --file iss.tle --from 2025-01-01 --to 2025-01-02
  ephem synth tle --file iss.tle --from 2025-01-01 --to 2025-01-01T02:00:00 -s 240 --plot`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			raw, err := os.ReadFile(tleFile)
			if err != nil {
				return errs.Wrap(err, errs.ErrOrbitTLE, "cli.synth_tle").WithResource(tleFile)
			}
			tle, err := orbit.ParseTLE(string(raw))
			if err != nil {
				return err
			}

			start, err := ephtime.ParseUTC(from)
			if err != nil {
				return err
			}
			end, err := ephtime.ParseUTC(to)
			if err != nil {
				return err
			}

			smp, err := orbit.FromTLE(tle, start, end, samples)
			if err != nil {
				return err
			}
			audit(rt, "synth.tle", "", tle.Name, "success")

			label := tle.Name
			if label == "" {
				label = "TLE"
			}
			return emitSynthetic(rt, smp, outPath, format, showPlot,
				fmt.Sprintf("%s — SGP4, %d samples", label, len(smp)))
		},
	}

	cmd.Flags().StringVar(&tleFile, "file", "", "Path to a TLE file (2 or 3 lines)")
	cmd.Flags().StringVar(&from, "from", "", "Window start, UTC")
	cmd.Flags().StringVar(&to, "to", "", "Window end, UTC")
	cmd.Flags().IntVarP(&samples, "samples", "s", 100, "Sample count")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: csv | table | json")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "Render the track instead of printing samples")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// emitSynthetic routes generated samples to stdout, a file, or a plot.
func emitSynthetic(rt *Runtime, samples []v1.Sample, outPath, format string, showPlot bool, caption string) error {
	traj := v1.Trajectory{Samples: samples}

	if showPlot {
		canvas, kmPerCell := plot.Trajectory(samples, plot.PlaneXY, 64, 24)
		pprint.Panel(caption, canvas.String())
		pprint.Info("1 cell ≈ %.0f km", kmPerCell)
		printSummary(trajstat.Summarize(samples))
		return nil
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errs.Wrap(err, errs.ErrExportWrite, "cli.synth").WithResource(outPath)
		}
		n, werr := export.Write(f, v1.ExportFormat(format), traj)
		cerr := f.Close()
		if werr != nil {
			return werr
		}
		if cerr != nil {
			return errs.Wrap(cerr, errs.ErrExportWrite, "cli.synth").WithResource(outPath)
		}
		pprint.Success("Wrote %d samples to %s (%d bytes)", len(samples), outPath, n)
		return nil
	}

	// Stdout: bare sample lines, pipeline-friendly.
	if _, err := export.Write(os.Stdout, v1.ExportFormat(format), traj); err != nil {
		return err
	}
	if format == string(v1.FormatTable) {
		fmt.Println()
	}
	return nil
}
