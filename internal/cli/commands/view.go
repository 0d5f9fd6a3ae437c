// ephem view — launch the interactive trajectory viewer.
package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/tui"
)

func NewViewCmd() *cobra.Command {
	var (
		q       queryFlags
		from    string
		to      string
		samples int
	)

	cmd := &cobra.Command{
		Use:   "view <target>",
		Short: "Launch the interactive trajectory viewer",
		Example: `  ephem view MARS
  ephem view MOON --from 2025-01-01 --to 2025-02-01
  ephem view VENUS --samples 1000 --frame IAU_EARTH`,
		Args:         cobra.ExactArgs(1),
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

			// Fail on a bad body name before entering the alternate screen.
			if _, err := ephemeris.ResolveBody(target); err != nil {
				return err
			}

			// Default to a 30-day arc starting now.
			fromET := ephtime.ET(time.Now().UTC())
			if from != "" {
				var err error
				if fromET, err = parseEpoch(from); err != nil {
					return err
				}
			}
			toET := fromET + 30*86400
			if to != "" {
				var err error
				if toET, err = parseEpoch(to); err != nil {
					return err
				}
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

			audit(rt, "view", spec.Name, target, "success")

			app := tui.New(tui.Config{
				Kernel:      spec,
				Eph:         k,
				State:       rt.State,
				Log:         rt.Log,
				EphemConfig: rt.Config,
				Request: v1.TrajectoryRequest{
					Target:     target,
					Observer:   q.observer,
					Frame:      q.frame,
					From:       fromET,
					To:         toET,
					Samples:    samples,
					Correction: corr,
				},
			})

			p := tea.NewProgram(app,
				tea.WithAltScreen(),       // use alternate screen buffer
				tea.WithMouseCellMotion(), // enable mouse support
			)

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (UTC or ET seconds, default now)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (default start + 30 days)")
	cmd.Flags().IntVarP(&samples, "samples", "s", 0, "Sample count (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.observer, "observer", "", "Observer body (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.frame, "frame", "", "Output frame (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.correction, "correction", "", "Aberration correction: none | lt | lt+s")

	return cmd
}
