// Package cli implements the geocap command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/geocap/internal/capability"
	"github.com/mesh-intelligence/geocap/internal/numeric"
	"github.com/mesh-intelligence/geocap/internal/paths"
	"github.com/mesh-intelligence/geocap/pkg/geocap"
	"github.com/mesh-intelligence/geocap/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	quiet     bool
}

// app is the state resolved once by the root command before any subcommand
// runs.
type app struct {
	flags    rootFlags
	config   types.Config
	registry *capability.Registry
	env      *numeric.Environment
	logger   *log.Logger
}

// NewRootCmd creates the top-level "geocap" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "geocap",
		Short:   "Capability probing and shapefile series tools",
		Long:    "geocap reports which numeric and tabular capabilities are linked in,\nand moves geometry series between shapefiles and a local SQLite store.",
		Version: geocap.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.geocap-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.flags.quiet, "quiet", "q", false, "suppress diagnostics")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCapsCmd(a))
	root.AddCommand(newProbeCmd(a))
	root.AddCommand(newCountCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newDumpCmd(a))
	root.AddCommand(newRestoreCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code. A missing mandatory
// capability halts with a system error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrMandatoryMissing):
		return exitSysError
	default:
		return exitUserError
	}
}

// setup loads configuration, builds the capability registry, and resolves
// the numeric environment.
func (a *app) setup(out io.Writer) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	a.config = types.Config{
		ConfigDir: configDir,
		DataDir:   dataDir,
		Disabled:  v.GetStringSlice(cfgKeyDisabled),
		Verbose:   v.GetBool(cfgKeyVerbose) && !a.flags.quiet,
	}
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.logger = log.NewWithOptions(out, log.Options{Prefix: "geocap"})
	if a.flags.quiet {
		a.logger.SetLevel(log.FatalLevel)
	}

	a.registry = numeric.DefaultRegistry(a.config)
	a.env, err = numeric.Init(a.registry, a.logger)
	return err
}

// requireOptions returns the decorator options matching the CLI settings.
func (a *app) requireOptions(name string) []capability.Option {
	return []capability.Option{
		capability.WithVerbose(a.config.Verbose),
		capability.WithLogger(a.logger),
		capability.WithName(name),
	}
}
