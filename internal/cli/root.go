// Package cli defines the root Cobra command and global flag/context setup.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kepler-works/ephem/internal/cli/commands"
	"github.com/kepler-works/ephem/internal/core/config"
	"github.com/kepler-works/ephem/internal/core/logger"
	"github.com/kepler-works/ephem/internal/core/state"
	"github.com/kepler-works/ephem/pkg/pprint"
)

// globalFlags holds values bound to persistent global flags.
var globalFlags struct {
	configFile string
	kernel     string
	debug      bool
	jsonOutput bool
}

// rootCmd is the base command for ephem.
var rootCmd = &cobra.Command{
	Use:           "ephem",
	Short:         "ephem — Planetary Ephemerides from the Terminal",
	Long:          ``, // banner comes from the help func
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare `ephem` — help func already prints banner
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}
		return initRuntime(cmd)
	},
}

// Execute runs the CLI. Called by main().
func Execute() {
	// Show banner before every help screen
	origHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		pprint.PrintBanner(commands.Version, commands.BuildDate)
		origHelp(cmd, args)
	})

	if err := rootCmd.Execute(); err != nil {
		pprint.Error("%s", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.configFile, "config", "c", "", "Path to ephem.yaml (defaults to auto-discovery)")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.kernel, "kernel", "k", "", "Kernel name to query (overrides config default)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.debug, "debug", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.jsonOutput, "json", false, "Output in machine-readable JSON")

	// Register all subcommands
	rootCmd.AddCommand(
		commands.NewInitCmd(),
		commands.NewKernelsCmd(),
		commands.NewTrackCmd(),
		commands.NewStateCmd(),
		commands.NewExportCmd(),
		commands.NewSynthCmd(),
		commands.NewViewCmd(),
		commands.NewVersionCmd(),
	)
}

// initRuntime loads config, logger, and state before each command runs.
func initRuntime(cmd *cobra.Command) error {
	// Load config
	cfg, err := config.Load(globalFlags.configFile)
	if err != nil && globalFlags.configFile != "" {
		return fmt.Errorf("config: %w", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Initialise logger. Creating the logs dir also creates ephem home.
	ephemHome := config.EphemHome()
	logFile := filepath.Join(ephemHome, "logs", "ephem.log")
	if err := os.MkdirAll(filepath.Dir(logFile), 0750); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	log, err := logger.Init(cfg.Log.Level, cfg.Log.Format, logFile, ephemHome, globalFlags.debug)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}

	// Open state DB
	dbPath := filepath.Join(ephemHome, "state.db")
	db, err := state.Open(dbPath)
	if err != nil {
		return fmt.Errorf("state db: %w", err)
	}

	// Store in command context
	cmd.SetContext(commands.NewContext(cmd.Context(), &commands.Runtime{
		Config: cfg,
		Log:    log,
		State:  db,
		Flags: commands.GlobalFlags{
			Kernel:     globalFlags.kernel,
			Debug:      globalFlags.debug,
			JSONOutput: globalFlags.jsonOutput,
		},
	}))

	return nil
}
