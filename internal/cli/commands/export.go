// ephem export — write a sampled trajectory to CSV, fixed-point table, or JSON.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/export"
	"github.com/kepler-works/ephem/pkg/errs"
	"github.com/kepler-works/ephem/pkg/pprint"
)

func NewExportCmd() *cobra.Command {
	var (
		q        queryFlags
		from     string
		to       string
		samples  int
		format   string
		outPath  string
		listPast bool
	)

	cmd := &cobra.Command{
		Use:   "export [target]",
		Short: "Write a sampled trajectory to a file",
		Args:  cobra.MaximumNArgs(1),
		Example: `  ephem export MARS --from 2025-01-01 --to 2025-01-02
  ephem export MOON --from 2025-01-01 --to 2025-02-01 --format table -o moon.txt
  ephem export VENUS --from 2025-01-01 --to 2025-03-01 --format json
  ephem export --list`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			if listPast {
				return printExportHistory(rt)
			}
			if len(args) != 1 {
				return fmt.Errorf("target body required (or use --list)")
			}
			target := args[0]
			q.defaulted(rt)
			if samples <= 0 {
				samples = rt.Config.Query.Samples
			}
			if samples <= 0 {
				samples = 500
			}
			if format == "" {
				format = rt.Config.Export.Format
			}
			if format == "" {
				format = string(v1.FormatCSV)
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

			pprint.Header("Export — " + target)
			pprint.KV("Kernel    ", spec.Name)
			pprint.KV("Window    ", fmt.Sprintf("%s .. %s", ephtime.FormatUTC(fromET), ephtime.FormatUTC(toET)))
			pprint.KV("Samples   ", fmt.Sprintf("%d", samples))
			pprint.KV("Format    ", format)
			fmt.Println()

			req := v1.TrajectoryRequest{
				Target:     target,
				Observer:   q.observer,
				Frame:      q.frame,
				From:       fromET,
				To:         toET,
				Samples:    samples,
				Correction: corr,
			}
			sp := pprint.NewSpinner("Sampling trajectory")
			sp.Start()
			traj, _, err := queryWindow(rt, k, spec.Name, req)
			if err != nil {
				sp.Stop(false)
				audit(rt, "export", spec.Name, target, "failure")
				return err
			}
			sp.Stop(true)

			now := time.Now().UTC()
			if outPath == "" {
				dir := rt.Config.Export.Dir
				if dir == "" {
					dir = "."
				}
				outPath = filepath.Join(dir, export.Filename(target, v1.ExportFormat(format), now))
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
				return errs.Wrap(err, errs.ErrExportWrite, "cli.export")
			}

			f, err := os.Create(outPath)
			if err != nil {
				return errs.Wrap(err, errs.ErrExportWrite, "cli.export").WithResource(outPath)
			}
			n, werr := export.Write(f, v1.ExportFormat(format), traj)
			cerr := f.Close()
			if werr != nil {
				return werr
			}
			if cerr != nil {
				return errs.Wrap(cerr, errs.ErrExportWrite, "cli.export").WithResource(outPath)
			}

			rec := v1.ExportRecord{
				ID:        now.Format("20060102T150405.000") + "-" + target,
				Path:      outPath,
				Format:    v1.ExportFormat(format),
				Target:    target,
				Observer:  q.observer,
				Samples:   len(traj.Samples),
				Bytes:     n,
				CreatedAt: now,
			}
			if err := rt.State.PutExport(rec); err != nil {
				rt.Log.Warn("export history write failed", "err", err)
			}
			audit(rt, "export", spec.Name, target, "success")

			pprint.Success("Wrote %d samples to %s (%d bytes)", len(traj.Samples), outPath, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (UTC or ET seconds)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (UTC or ET seconds)")
	cmd.Flags().IntVarP(&samples, "samples", "s", 0, "Sample count (default from ephem.yaml)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: csv | table | json")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: derived name in export dir)")
	cmd.Flags().StringVar(&q.observer, "observer", "", "Observer body (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.frame, "frame", "", "Output frame (default from ephem.yaml)")
	cmd.Flags().StringVar(&q.correction, "correction", "", "Aberration correction: none | lt | lt+s")
	cmd.Flags().BoolVar(&listPast, "list", false, "List past exports instead of writing one")
	return cmd
}

// printExportHistory renders the exports bucket as a table.
func printExportHistory(rt *Runtime) error {
	recs, err := rt.State.ListExports("")
	if err != nil {
		return err
	}
	if rt.Flags.JSONOutput {
		return json.NewEncoder(os.Stdout).Encode(recs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CREATED\tTARGET\tFORMAT\tSAMPLES\tBYTES\tPATH")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Target, r.Format, r.Samples, r.Bytes, r.Path)
	}
	return w.Flush()
}
