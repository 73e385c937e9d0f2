// Package cli implements the stockroom command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Exit codes.
const (
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks bad command-line arguments.
var errUsage = errors.New("usage")

// app holds global flag values and the configuration loaded for a single
// invocation.
type app struct {
	configDir string
	logDir    string
	verbose   bool

	cfg types.Config
}

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: types.DefaultConfig()}

	root := &cobra.Command{
		Use:   "stockroom",
		Short: "Keep an inventory of belts, cakes and cups in a flat text file",
		Long: "Stockroom loads, edits and saves product files, and runs scenario\n" +
			"files of ADD, REM and SAVE directives against them.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadSettings,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.logDir, "log-dir", "", "log directory (default: $(CWD)/logs)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level and echo logs to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newStatsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "stockroom:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to exitUserError for bad input and exitSysError for
// everything else.
func exitCode(err error) int {
	if errors.Is(err, errUsage) || types.KindOf(err) != "Error" {
		return exitUserError
	}
	return exitSysError
}

// loadSettings resolves the config directory and reads config.yaml. The
// version command needs neither.
func (a *app) loadSettings(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// openLogger opens the daily log file under the resolved log directory.
func (a *app) openLogger(cmd *cobra.Command) (*zap.Logger, func() error, error) {
	dir, err := paths.ResolveLogDir(a.logDir, a.cfg.LogDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log dir: %w", err)
	}
	opts := logging.Options{Dir: dir, Level: a.cfg.LogLevel}
	if a.verbose {
		opts.Level = "debug"
		opts.Echo = cmd.ErrOrStderr()
	}
	return logging.New(opts)
}

// loggedRunE adapts fn to a cobra RunE that owns a logger for the duration
// of the command.
func (a *app) loggedRunE(fn func(cmd *cobra.Command, args []string, logger *zap.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger, closeLog, err := a.openLogger(cmd)
		if err != nil {
			return err
		}
		defer multierr.AppendInvoke(&err, multierr.Invoke(closeLog))

		logger = logger.With(zap.String("cmd", cmd.Name()))
		return fn(cmd, args, logger)
	}
}

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}
