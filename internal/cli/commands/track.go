// ephem track — sample a body's trajectory over a time window and plot it.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/export"
	"github.com/kepler-works/ephem/internal/plot"
	"github.com/kepler-works/ephem/internal/trajstat"
	"github.com/kepler-works/ephem/pkg/pprint"
)

func NewTrackCmd() *cobra.Command {
	var (
		q       queryFlags
		from    string
		to      string
		samples int
		plane   string
		width   int
		height  int
		noPlot  bool
		asTable bool
	)

	cmd := &cobra.Command{
		Use:   "track <target>",
		Short: "Sample a body's trajectory over a window and plot it",
		Args:  cobra.ExactArgs(1),
		Example: `  ephem track MARS --from 2025-01-01 --to 2025-01-02
  ephem track MOON --from 2025-01-01 --to 2025-02-01 --samples 1000
  ephem track VENUS --from 2025-01-01 --to 2025-06-01 --frame IAU_EARTH --correction none`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			target := args[0]
			q.defaulted(rt)
			if samples <= 0 {
				samples = rt.Config.Query.Samples
			}
			if samples <= 0 {
				samples = 500
			}

			fromET, err := parseEpoch(from)
			if err != nil {
				return err
			}
			toET, err := parseEpoch(to)
			if err != nil {
				return err
			}
			corr, err := ephemeris.ParseCorrection(q.correction)
			if err != nil {
				return err
			}

			k, spec, err := openKernel(rt)
			if err != nil {
				return err
			}
			defer k.Close()

			if !rt.Flags.JSONOutput {
				pprint.Header("Tracking " + target)
				pprint.KV("Kernel    ", fmt.Sprintf("%s (%s)", spec.Name, k.Meta().Name))
				pprint.KV("Observer  ", q.observer)
				pprint.KV("Frame     ", q.frame)
				pprint.KV("Correction", q.correction)
				pprint.KV("Window    ", fmt.Sprintf("%s .. %s", ephtime.FormatUTC(fromET), ephtime.FormatUTC(toET)))
				pprint.KV("Samples   ", fmt.Sprintf("%d", samples))
			}

			req := v1.TrajectoryRequest{
				Target:     target,
				Observer:   q.observer,
				Frame:      q.frame,
				From:       fromET,
				To:         toET,
				Samples:    samples,
				Correction: corr,
			}
			traj, cached, err := queryWindow(rt, k, spec.Name, req)
			if err != nil {
				return err
			}

			audit(rt, "track", spec.Name, target, "success")

			if rt.Flags.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(traj)
			}
			if cached {
				pprint.Info("(cached result)")
			}

			switch {
			case asTable:
				fmt.Println()
				if err := export.WriteTable(os.Stdout, traj.Samples); err != nil {
					return err
				}
				fmt.Println()
			case !noPlot:
				pl, err := parsePlane(plane)
				if err != nil {
					return err
				}
				canvas, kmPerCell := plot.Trajectory(traj.Samples, pl, width, height)
				fmt.Println()
				pprint.Panel(
					fmt.Sprintf("%s — %s plane", target, pl),
					canvas.String(),
				)
				pprint.Info("1 cell ≈ %.0f km", kmPerCell)
			}

			printSummary(trajstat.Summarize(traj.Samples))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (UTC or ET seconds)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (UTC or ET seconds)")
	cmd.Flags().IntVarP(&samples, "samples", "s", 0, "Sample count (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.observer, "observer", "", "Observer body (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.frame, "frame", "", "Output frame (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.correction, "correction", "", "Aberration correction: none | lt | lt+s")
	cmd.Flags().StringVar(&plane, "plane", "xy", "Plot plane: xy | xz | yz")
	cmd.Flags().IntVar(&width, "width", 64, "Plot width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "Plot height in cells")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip the trajectory plot")
	cmd.Flags().BoolVar(&asTable, "table", false, "Print the sample table instead of the plot")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// parsePlane maps a --plane flag value onto a plot plane.
func parsePlane(s string) (plot.Plane, error) {
	switch s {
	case "", "xy", "XY":
		return plot.PlaneXY, nil
	case "xz", "XZ":
		return plot.PlaneXZ, nil
	case "yz", "YZ":
		return plot.PlaneYZ, nil
	default:
		return plot.PlaneXY, fmt.Errorf("unknown plane %q (use xy, xz, or yz)", s)
	}
}

// printSummary renders the trajectory statistics footer.
func printSummary(s trajstat.Summary) {
	fmt.Println()
	pprint.KV("Range km  ", fmt.Sprintf("min %.4e  mean %.4e  max %.4e", s.MinRange, s.MeanRange, s.MaxRange))
	pprint.KV("Speed km/s", fmt.Sprintf("min %.3f  max %.3f", s.MinSpeed, s.MaxSpeed))
	pprint.KV("Arc       ", fmt.Sprintf("%.4e km over %s", s.ArcLength, fmtSpan(s.Span)))
	if s.Period > 0 {
		pprint.KV("Period    ", fmt.Sprintf("~%s (circular estimate)", fmtSpan(s.Period)))
	}
}

// fmtSpan renders a span of seconds in the largest sensible unit.
func fmtSpan(sec float64) string {
	switch {
	case sec >= 2*365.25*86400:
		return fmt.Sprintf("%.1f years", sec/(365.25*86400))
	case sec >= 2*86400:
		return fmt.Sprintf("%.1f days", sec/86400)
	case sec >= 2*3600:
		return fmt.Sprintf("%.1f hours", sec/3600)
	default:
		return fmt.Sprintf("%.0f s", sec)
	}
}
