package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conformal/coinvoice-plugins/coinvoice"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coinvoice %s (commit %s, api %s)\n", version, commit, coinvoice.Version)
		},
	}
}
