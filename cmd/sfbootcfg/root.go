package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/honeybbq/sfbootconfig/backend/sfboot"
	"github.com/honeybbq/sfbootconfig/internal/config"
	"github.com/honeybbq/sfbootconfig/internal/format"
	"github.com/honeybbq/sfbootconfig/internal/logging"
	"github.com/honeybbq/sfbootconfig/pkg/runner"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
	"github.com/honeybbq/sfbootconfig/pkg/targetlock"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries the state shared by all commands of one invocation.
type app struct {
	// flags
	configPath string
	binary     string
	timeout    time.Duration
	logLevel   string
	output     string

	cfg    *config.Config
	logger *zap.Logger
	runner runner.Runner
	locks  *targetlock.Locker
	out    format.Output

	newRunner func(cfg *config.Config, logger *zap.Logger) runner.Runner
	stdin     io.Reader
}

func newApp() *app {
	return &app{
		locks:     targetlock.New(),
		newRunner: execRunner,
		stdin:     os.Stdin,
	}
}

func execRunner(cfg *config.Config, logger *zap.Logger) runner.Runner {
	return runner.NewExecRunner(
		runner.WithBinary(cfg.Sfboot.Binary),
		runner.WithShell(cfg.Sfboot.Shell),
		runner.WithTimeout(cfg.TimeoutDuration()),
		runner.WithLogger(logger),
	)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sfbootcfg",
		Short: "Read and change NIC boot firmware settings through sfboot",
		Long: `sfbootcfg runs the sfboot utility, decodes its report into typed
attributes and pushes attribute changes back, always returning what
sfboot reports afterwards.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.Version = version

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath(), "config file")
	flags.StringVar(&a.binary, "sfboot", "", "sfboot binary (overrides config)")
	flags.DurationVar(&a.timeout, "timeout", 0, "timeout of one sfboot run (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	flags.StringVarP(&a.output, "output", "o", "", "table, json or yaml (overrides config)")

	root.AddCommand(
		newShowCmd(a),
		newSetCmd(a),
		newApplyCmd(a),
		newParseCmd(a),
		newAttributesCmd(a),
		newTaskCmd(a),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the logger and runner.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("sfboot") {
		cfg.Sfboot.Binary = a.binary
	}
	if flags.Changed("timeout") {
		cfg.Sfboot.Timeout = a.timeout.String()
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("output") {
		cfg.Output.Format = a.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := format.ParseOutput(cfg.Output.Format)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}

	a.cfg, a.logger, a.out = cfg, logger, out
	a.runner = a.newRunner(cfg, logger)
	return nil
}

// backend builds the orchestrator. Without a shell nothing strips the quotes,
// so flag=value tokens are rendered bare.
func (a *app) backend(opts sfbootconfig.ParseOptions) *sfboot.Backend {
	return sfboot.New(a.runner,
		sfboot.WithLogger(a.logger),
		sfboot.WithParseOptions(opts),
		sfboot.WithRenderOptions(sfbootconfig.RenderOptions{Unquoted: a.cfg != nil && a.cfg.Sfboot.Shell == ""}),
	)
}

func (a *app) printer(cmd *cobra.Command) *format.Printer {
	return format.NewPrinter(cmd.OutOrStdout(), a.out)
}
