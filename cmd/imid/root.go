package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"imid/internal/app"
	"imid/internal/config"
	"imid/internal/infrastructure"
)

type options struct {
	configPath string
	input      string
	outDir     string
	addr       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "imid",
		Short: config.AppName + " - " + config.AppLongName,
		Long: "Reads a social-media monitoring export (CSV or XLSX), computes sentiment, trend, platform,\n" +
			"media type and location views, and writes interactive charts plus an analysis recap.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default: $"+config.ConfigFileEnv+" or ./imid.yaml)")
	addAnalyzeFlags(rootCmd, opts)

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func addAnalyzeFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input CSV or XLSX file (prompted for when omitted)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default \""+config.DefaultOutputDir+"\")")
}

// session bundles what every command needs once configuration is loaded
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
}

func setup(cmd *cobra.Command, opts *options) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tel, err := infrastructure.NewTelemetry(cfg.Telemetry, cmd.ErrOrStderr(), logger)
	if err != nil {
		infrastructure.CloseLogFile()
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	return &session{cfg: cfg, logger: logger, telemetry: tel}, nil
}

// close flushes telemetry even when ctx was cancelled by an interrupt
func (rt *session) close(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := rt.telemetry.Shutdown(ctx); err != nil {
		rt.logger.ErrorContext(ctx, "Error shutting down telemetry", slog.String("error", err.Error()))
	}
	infrastructure.CloseLogFile()
}

func (rt *session) pipeline(console *app.Console) *app.Pipeline {
	return app.NewPipeline(rt.cfg, rt.logger,
		app.WithTelemetry(rt.telemetry),
		app.WithLoadedHook(console.Loaded))
}
