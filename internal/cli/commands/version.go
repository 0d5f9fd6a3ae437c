// ephem version — build and toolkit provenance.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/kepler-works/ephem/pkg/pprint"
)

// Build-time variables injected via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ephemerisModule is the dependency whose version is reported as the
// ephemeris engine: kernel math provenance matters when comparing
// query results across builds.
const ephemerisModule = "github.com/mshafiee/jpleph"

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Print ephem version information",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := struct {
				Version   string `json:"version"`
				Commit    string `json:"commit"`
				BuildDate string `json:"build_date"`
				Ephemeris string `json:"ephemeris_engine,omitempty"`
				GoVersion string `json:"go_version"`
				Platform  string `json:"platform"`
			}{
				Version:   Version,
				Commit:    Commit,
				BuildDate: BuildDate,
				Ephemeris: ephemerisVersion(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			// Runs without the Runtime bundle (skipped in PersistentPreRunE),
			// so the flag is read straight off the root command.
			jsonFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
			if jsonFlag {
				return json.NewEncoder(os.Stdout).Encode(info)
			}

			pprint.PrintBanner(Version, BuildDate)

			pprint.KV("Version  ", info.Version)
			pprint.KV("Commit   ", info.Commit)
			pprint.KV("Built    ", info.BuildDate)
			if info.Ephemeris != "" {
				pprint.KV("Ephemeris", ephemerisModule+" "+info.Ephemeris)
			}
			pprint.KV("Go       ", info.GoVersion)
			pprint.KV("Platform ", info.Platform)
			fmt.Println()
			return nil
		},
	}
}

// ephemerisVersion reports the linked jpleph module version, or "" for
// builds without module info.
func ephemerisVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range bi.Deps {
		if dep.Path == ephemerisModule {
			return dep.Version
		}
	}
	return ""
}
