package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imid/internal/config"
	"imid/pkg/contracts"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", config.AppName, config.AppLongName)
			fmt.Fprintf(cmd.OutOrStdout(), " - version: %s\n", contracts.GetFullVersionString())
			fmt.Fprintf(cmd.OutOrStdout(), " - data format: %s\n", contracts.DataFormatVersion)
			return nil
		},
	}
}
