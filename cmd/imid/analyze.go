package main

import (
	"github.com/spf13/cobra"

	"imid/internal/app"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an export and write charts and the recap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	addAnalyzeFlags(cmd, opts)
	return cmd
}

// runAnalyze reports processing failures on the console only; they do not change the
// exit status.
func runAnalyze(cmd *cobra.Command, opts *options) error {
	rt, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer rt.close(cmd.Context())

	console := app.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	console.Welcome()

	input := opts.input
	if input == "" {
		if input, err = console.PromptInputPath(); err != nil {
			return err
		}
	}

	_, _ = console.Analyze(cmd.Context(), rt.pipeline(console), input)
	return nil
}
