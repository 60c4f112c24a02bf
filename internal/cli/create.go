package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conformal/coinvoice-plugins/coinvoice/checkout"
	"github.com/conformal/coinvoice-plugins/coinvoice/qr"
)

func newCreateCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		qrPath string
		qrSize int
	)

	cmd := &cobra.Command{
		Use:   "create <order.yaml>",
		Short: "Create an invoice for an order",
		Long:  "Turn the order described in a YAML file into a Coinvoice invoice and print the reply.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			order, err := loadOrder(args[0])
			if err != nil {
				return err
			}

			reply, err := checkout.Submit(cmd.Context(), cfg.NewClient(), order, cfg.CheckoutOptions())
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), format, reply); err != nil {
				return err
			}
			if format == "" {
				printExpiry(cmd.OutOrStdout(), reply)
			}

			if cfg.Checkout.ReturnURL != "" {
				url, err := checkout.PaymentURL(cfg.PaymentHost(), reply, cfg.Checkout.ReturnURL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "payment:    %s\n", url)
			}

			if qrPath != "" {
				data, err := qr.PaymentPNG(reply, qrSize)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrPath, data, 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "qr code:    %s\n", qrPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Go template for the reply")
	cmd.Flags().StringVar(&qrPath, "qr", "", "write the payment QR code PNG to this file")
	cmd.Flags().IntVar(&qrSize, "qr-size", 300, "QR code edge in pixels")
	return cmd
}
