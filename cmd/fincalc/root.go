package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/finance-calculators/internal/calculators"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/output"
	"github.com/iwvelando/finance-calculators/internal/registry"
	"github.com/iwvelando/finance-calculators/internal/service"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by every command once flags are parsed.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string

	stdin  io.Reader
	clock  datetime.Clock
	conf   *config.Configuration
	logger *zap.Logger
	reg    *registry.Registry
	svc    *service.Service
	out    *output.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, clock: datetime.SystemClock}

	root := &cobra.Command{
		Use:   "fincalc",
		Short: "Financial calculators for bonds, valuations, forex, funds, rentals, salaries and loans",
		Long: `fincalc evaluates a catalog of financial calculators.

Every calculator validates its inputs (errors block the calculation,
warnings are advisory) before producing its outputs. Inputs are read from
YAML or JSON files; "-" reads standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.OutOrStdout())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to configuration file (default ./fincalc.yaml when present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVarP(&a.outputFormat, "output-format", "o", "", "output format override: pretty, json, yaml, csv")

	root.AddCommand(
		a.listCmd(),
		a.describeCmd(),
		a.runCmd(),
		a.validateCmd(),
		a.checkCmd(),
		a.examplesCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger, registry and service.
func (a *app) setup(stdout io.Writer) error {
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.conf = conf

	logger, err := conf.Logging.NewLogger(a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	format := conf.Output.Format
	if a.outputFormat != "" {
		format = a.outputFormat
	}
	if a.out, err = output.New(stdout, format); err != nil {
		return err
	}

	a.reg = registry.New(logger)
	if err := calculators.RegisterAll(a.reg, conf.Calculators, a.clock); err != nil {
		return fmt.Errorf("failed to register calculators: %w", err)
	}
	a.svc = service.New(a.reg, logger,
		service.WithClock(a.clock),
		service.WithBatchLimits(conf.Server.MaxBatchSize, 0),
	)

	logger.Debug("configuration loaded",
		zap.String("op", "main.setup"),
		zap.String("config", a.configPath),
		zap.String("output_format", format),
		zap.Int("calculators", a.reg.Len()),
	)
	return nil
}

// descriptor returns the catalog entry of id.
func (a *app) descriptor(id string) (registry.Descriptor, error) {
	calc, err := a.reg.Get(id)
	if err != nil {
		return registry.Descriptor{}, err
	}
	return calc.Descriptor(), nil
}
