package cli

import (
	"github.com/spf13/cobra"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

func newQueryCmd(root *rootOptions) *cobra.Command {
	var (
		format  string
		sandbox bool
	)

	cmd := &cobra.Command{
		Use:   "query <invoice-id>",
		Short: "Show the current state of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			q := &model.QueryRequest{ID: args[0]}
			if sandbox || cfg.Environment.IsSandbox() {
				q.TestInvoice = "yes"
			}
			reply, err := cfg.NewClient().QueryInvoice(cmd.Context(), q)
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), format, reply); err != nil {
				return err
			}
			if format == "" {
				printExpiry(cmd.OutOrStdout(), reply)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Go template for the reply")
	cmd.Flags().BoolVar(&sandbox, "sandbox", false, "query a test invoice")
	return cmd
}
