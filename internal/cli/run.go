package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/codec"
	"github.com/mesh-intelligence/stockroom/internal/command"
	"github.com/mesh-intelligence/stockroom/internal/manager"
)

// scenarioFlags are shared by run and watch.
type scenarioFlags struct {
	input           string
	output          string
	continueOnError bool
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "product file loaded before the scenario runs")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "product file written after the scenario finishes")
	cmd.Flags().BoolVar(&f.continueOnError, "continue-on-error", false, "log failing lines and keep going (overrides on_error)")
}

func newRunCmd(a *app) *cobra.Command {
	var f scenarioFlags
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a scenario file of ADD, REM and SAVE directives",
		Args:  exactArgs(1),
		RunE: a.loggedRunE(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			sum, err := a.runScenario(args[0], f, logger)
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return err
		}),
	}
	f.register(cmd)
	return cmd
}

// runScenario loads the optional input, runs the scenario on a fresh
// Manager and writes the optional output. The output is skipped when the
// run aborted.
func (a *app) runScenario(scenario string, f scenarioFlags, logger *zap.Logger) (command.Summary, error) {
	if _, err := os.Stat(scenario); err != nil {
		return command.Summary{}, fmt.Errorf("scenario: %w", err)
	}

	m := manager.New()
	if f.input != "" {
		products, err := codec.Load(f.input)
		if err != nil {
			return command.Summary{}, err
		}
		m.Replace(products)
	}

	var opts []command.Option
	continueOnError := f.continueOnError || a.cfg.ContinueOnError()
	if continueOnError {
		opts = append(opts, command.WithContinueOnError())
	}

	sum, runErr := command.NewProcessor(m, logger, opts...).ProcessFile(scenario)
	if runErr != nil && !continueOnError {
		return sum, runErr
	}
	if f.output != "" {
		if err := codec.Save(f.output, m.Products()); err != nil {
			return sum, err
		}
		logger.Info("output saved", zap.String("path", f.output), zap.Int("products", m.Len()))
	}
	return sum, runErr
}
