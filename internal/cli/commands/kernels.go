// ephem kernels — manage the ephemeris kernel registry.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/registry"
	"github.com/kepler-works/ephem/internal/verify"
	"github.com/kepler-works/ephem/pkg/pprint"
)

func NewKernelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernels",
		Short: "Manage the ephemeris kernel registry",
		Long:  "Add, remove, list, inspect, and test DE kernels in the ephem registry.",
	}

	cmd.AddCommand(
		newKernelsAddCmd(),
		newKernelsRmCmd(),
		newKernelsLsCmd(),
		newKernelsInfoCmd(),
		newKernelsTestCmd(),
		newKernelsDefaultCmd(),
	)
	return cmd
}

func newKernelsAddCmd() *cobra.Command {
	var makeDefault bool

	cmd := &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a DE kernel file",
		Args:  cobra.ExactArgs(2),
		Example: `  ephem kernels add de430 ~/kernels/de430.bin
  ephem kernels add de440 /data/de440.bin --default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			name, path := args[0], args[1]

			reg := registry.New(rt.State)
			spec := v1.KernelSpec{Name: name, Path: path, Default: makeDefault}
			if err := reg.Add(spec); err != nil {
				return err
			}

			fmt.Printf("✓ Kernel %q registered (%s)\n", name, path)
			fmt.Printf("  Run 'ephem kernels test %s' to verify it\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&makeDefault, "default", false, "Make this the default kernel")
	return cmd
}

func newKernelsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a kernel from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			reg := registry.New(rt.State)
			if err := reg.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Kernel %q removed\n", args[0])
			return nil
		},
	}
}

func newKernelsLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all registered kernels",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			reg := registry.New(rt.State)
			recs, err := reg.List()
			if err != nil {
				return err
			}

			if rt.Flags.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(recs)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tEPHEMERIS\tSTATUS\tCOVERAGE\tCHECKED\tDEFAULT")
			for _, rec := range recs {
				ephName, coverage := "?", "?"
				if rec.Meta != nil {
					ephName = rec.Meta.Name
					coverage = fmt.Sprintf("%s .. %s",
						jdYear(rec.Meta.StartJD), jdYear(rec.Meta.EndJD))
				}
				checked := "never"
				if !rec.LastChecked.IsZero() {
					checked = fmtDuration(time.Since(rec.LastChecked)) + " ago"
				}
				def := ""
				if rec.Spec.Default {
					def = "✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					rec.Spec.Name, ephName,
					statusIcon(rec.Status)+string(rec.Status),
					coverage, checked, def,
				)
			}
			return w.Flush()
		},
	}
}

func newKernelsInfoCmd() *cobra.Command {
	var constants int

	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show header metadata and constants for a kernel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			reg := registry.New(rt.State)
			rec, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			if rt.Flags.JSONOutput {
				data, _ := json.MarshalIndent(rec, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			k, err := ephemeris.Open(rec.Spec.Path, rt.Log)
			if err != nil {
				return err
			}
			defer k.Close()
			meta := k.Meta()

			pprint.Header("Kernel — " + rec.Spec.Name)
			pprint.KV("Ephemeris ", meta.Name)
			pprint.KV("Path      ", rec.Spec.Path)
			pprint.KV("Coverage  ", fmt.Sprintf("JD %.1f .. %.1f", meta.StartJD, meta.EndJD))
			pprint.KV("          ", fmt.Sprintf("%s .. %s UTC",
				ephtime.FormatUTC(ephtime.FromJD(meta.StartJD)),
				ephtime.FormatUTC(ephtime.FromJD(meta.EndJD))))
			pprint.KV("Step      ", fmt.Sprintf("%.1f days", meta.StepDays))
			pprint.KV("AU        ", fmt.Sprintf("%.3f km", meta.AUKm))
			pprint.KV("EM ratio  ", fmt.Sprintf("%.9f", meta.EarthMoonRatio))
			pprint.KV("Constants ", fmt.Sprintf("%d", meta.Constants))
			pprint.KV("Bodies    ", fmt.Sprintf("%d", len(k.Bodies())))

			if constants > 0 {
				cs, err := k.Constants(constants)
				if err != nil {
					return err
				}
				table := pprint.NewTable("CONSTANT", "VALUE")
				for _, c := range cs {
					table.AddRow(c.Name, fmt.Sprintf("%g", c.Value))
				}
				table.Render()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&constants, "constants", 0, "Also print the first N header constants")
	return cmd
}

func newKernelsTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Run the integrity check suite against a kernel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			reg := registry.New(rt.State)
			rec, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("◉ Testing kernel %q (%s)...\n", rec.Spec.Name, rec.Spec.Path)

			checker := verify.NewChecker(rt.Log)
			results, meta := checker.Run(cmd.Context(), rec.Spec)
			for _, r := range results {
				if r.Passed {
					pprint.Success("%-8s %s (%s)", r.Name, r.Detail, r.Elapsed.Round(time.Millisecond))
				} else {
					pprint.Error("%-8s %s", r.Name, r.Detail)
				}
			}

			status := verify.Status(results)
			if status == v1.KernelOK {
				if err := reg.MarkOK(rec.Spec.Name, meta); err != nil {
					return err
				}
				fmt.Println()
				pprint.Success("Kernel %q is healthy ◉", rec.Spec.Name)
				return nil
			}

			failed, _ := verify.Failed(results)
			if err := reg.MarkBroken(rec.Spec.Name, status, failed.Detail); err != nil {
				return err
			}
			return fmt.Errorf("kernel %q failed the %s check: %s", rec.Spec.Name, failed.Name, failed.Detail)
		},
	}
}

func newKernelsDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <name>",
		Short: "Make a registered kernel the default for queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			reg := registry.New(rt.State)
			if err := reg.SetDefault(args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Kernel %q is now the default\n", args[0])
			return nil
		},
	}
}

func statusIcon(s v1.KernelStatus) string {
	switch s {
	case v1.KernelOK:
		return "● "
	case v1.KernelUnknown:
		return "◐ "
	default:
		return "○ "
	}
}

// jdYear renders a Julian date as a calendar year for compact tables.
func jdYear(jd float64) string {
	return ephtime.UTC(ephtime.FromJD(jd)).Format("2006")
}

func fmtDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
