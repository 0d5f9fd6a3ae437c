// ephem init — scaffold a new ephem.yaml in the target directory.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kepler-works/ephem/internal/core/config"
	"github.com/kepler-works/ephem/pkg/pprint"
)

func NewInitCmd() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new ephem.yaml in the current (or specified) directory",
		Example: `  ephem init
  ephem init --path ./mars-study`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				targetPath = "."
			}
			outFile := filepath.Join(targetPath, "ephem.yaml")
			if _, err := os.Stat(outFile); err == nil {
				return fmt.Errorf("ephem.yaml already exists at %s — delete it first to reinitialise", outFile)
			}

			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("create dir %q: %w", targetPath, err)
			}

			if err := os.WriteFile(outFile, []byte(config.DefaultConfigTemplate), 0644); err != nil {
				return fmt.Errorf("write ephem.yaml: %w", err)
			}

			pprint.Success("Created %s", outFile)
			pprint.Info("Point it at your binary DE kernels, then run: ephem kernels add")
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", ".", "Target directory for ephem.yaml")
	return cmd
}
