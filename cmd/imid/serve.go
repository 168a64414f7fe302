package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imid/internal/app"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Analyze an export, then serve the charts and insights over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	addAnalyzeFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, \":8080\")")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runServe(cmd *cobra.Command, opts *options) error {
	rt, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer rt.close(cmd.Context())

	if opts.addr != "" {
		rt.cfg.Server.Addr = opts.addr
	}

	console := app.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	console.Welcome()

	report, err := console.Analyze(cmd.Context(), rt.pipeline(console), opts.input)
	if err != nil {
		// nothing to serve; the console already explained why
		return nil
	}

	application, err := app.NewApplication(rt.cfg, rt.logger, rt.telemetry, report)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nDashboard available at http://%s\n", displayAddr(rt.cfg.Server.Addr))
	return application.Run(cmd.Context())
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
