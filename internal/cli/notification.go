package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/conformal/coinvoice-plugins/coinvoice/checkout"
	"github.com/conformal/coinvoice-plugins/coinvoice/model"
	"github.com/conformal/coinvoice-plugins/coinvoice/notify"
)

var orderStates = []notify.OrderState{
	notify.Pending, notify.OnHold, notify.AwaitingConfirmation, notify.Paid, notify.Failed, notify.Canceled,
}

func parseState(s string) (notify.OrderState, error) {
	for _, st := range orderStates {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errors.Errorf("unknown order state %q", s)
}

func newNotificationCmd() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "notification [file]",
		Short: "Decode a notification body and show what it does to an order",
		Long:  "Decode a notification body from file, or stdin when file is - or missing, and print the order transition it causes.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseState(state)
			if err != nil {
				return err
			}

			var body []byte
			if len(args) == 0 || args[0] == "-" {
				body, err = io.ReadAll(cmd.InOrStdin())
			} else {
				body, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			n, err := model.UnmarshalNotification(body)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "invoice:  %s\nstatus:   %s\n", n.ID, n.Status)
			if id, key, err := checkout.DecodeToken(n.InternalInvoiceID); err == nil {
				fmt.Fprintf(out, "order:    %s (key %s)\n", id, key)
			}

			d, err := notify.Apply(current, n.Status)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "order:    %s -> %s\n", d.From, d.To)
			if d.Comment != "" {
				fmt.Fprintf(out, "comment:  %s\n", d.Comment)
			}
			if d.To.Terminal() {
				fmt.Fprintln(out, "final:    order will not change any more")
			}
			if d.Alert {
				fmt.Fprintln(out, "alert:    operator action required")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", string(notify.Pending), "current order state")
	return cmd
}
