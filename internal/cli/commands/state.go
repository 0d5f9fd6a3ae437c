// ephem state — print a body's state vector at a single epoch.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/frames"
	"github.com/kepler-works/ephem/pkg/pprint"
)

func NewStateCmd() *cobra.Command {
	var (
		q  queryFlags
		at string
	)

	cmd := &cobra.Command{
		Use:   "state <target>",
		Short: "Print a body's position and velocity at one epoch",
		Args:  cobra.ExactArgs(1),
		Example: `  ephem state MARS --at 2025-01-01T12:00:00
  ephem state MOON --at 2025-03-20 --observer SUN
  ephem state JUPITER --at 788961669.18 --correction none`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			target := args[0]
			q.defaulted(rt)

			et, err := parseEpoch(at)
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

			sv, err := k.State(et, target, q.observer, corr)
			if err != nil {
				audit(rt, "state", spec.Name, target, "failure")
				return err
			}
			if sv.Position, sv.Velocity, err = frames.RotateState(
				frames.J2000, q.frame, et, sv.Position, sv.Velocity); err != nil {
				return err
			}

			audit(rt, "state", spec.Name, target, "success")

			if rt.Flags.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(sv)
			}

			lon, lat := frames.LonLatDegrees(sv.Position)

			pprint.Header(fmt.Sprintf("%s from %s", target, q.observer))
			pprint.KV("Epoch     ", fmt.Sprintf("%s (ET %.3f)", ephtime.FormatUTC(et), et))
			pprint.KV("Frame     ", q.frame)
			pprint.KV("Correction", q.correction)
			fmt.Println()
			pprint.KV("Position  ", fmt.Sprintf("[%16.3f %16.3f %16.3f] km",
				sv.Position.X, sv.Position.Y, sv.Position.Z))
			pprint.KV("Velocity  ", fmt.Sprintf("[%16.6f %16.6f %16.6f] km/s",
				sv.Velocity.X, sv.Velocity.Y, sv.Velocity.Z))
			pprint.KV("Range     ", fmt.Sprintf("%.3f km", sv.Position.Norm()))
			pprint.KV("Speed     ", fmt.Sprintf("%.6f km/s", sv.Velocity.Norm()))
			pprint.KV("Lon/Lat   ", fmt.Sprintf("%.4f° / %.4f°", lon, lat))
			if sv.LightTime > 0 {
				pprint.KV("Light time", fmt.Sprintf("%.3f s", sv.LightTime))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Epoch (UTC or ET seconds)")
	cmd.Flags().StringVar(&q.observer, "observer", "", "Observer body (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.frame, "frame", "", "Output frame (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.correction, "correction", "", "Aberration correction: none | lt | lt+s")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}
