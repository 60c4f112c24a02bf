package notify

import (
	"github.com/go-faster/errors"

	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

// ErrUnhandledStatus is returned by Apply for a status it does not know.
var ErrUnhandledStatus = errors.New("unhandled invoice status")

// OrderState is the merchant side state of an order paid through an invoice.
type OrderState string

const (
	Pending              OrderState = "pending"
	OnHold               OrderState = "on-hold"
	AwaitingConfirmation OrderState = "awaiting-confirmation"
	Paid                 OrderState = "paid"
	Failed               OrderState = "failed"
	Canceled             OrderState = "canceled"
)

// rank orders the progress states; an order never moves to a lower rank.
func (s OrderState) rank() int {
	switch s {
	case Pending:
		return 0
	case OnHold:
		return 1
	case AwaitingConfirmation:
		return 2
	case Paid:
		return 3
	}
	return -1
}

// Terminal reports whether no notification can move the order any further.
func (s OrderState) Terminal() bool {
	return s == Paid || s == Failed || s == Canceled
}

func (s OrderState) failed() bool {
	return s == Failed || s == Canceled
}

// Decision is the outcome of applying one notification to an order.
type Decision struct {
	From    OrderState
	To      OrderState
	Status  model.Status
	Changed bool
	Comment string

	// Alert is set when an operator has to look at the order.
	Alert bool
}

// Apply decides what a notification with status does to an order in state
// current. Applying the same status twice gives the same state as applying it
// once, and progress is never undone.
func Apply(current OrderState, status model.Status) (Decision, error) {
	d := Decision{From: current, To: current, Status: status}

	switch status {
	case model.StatusNew:
		d.Comment = "invoice created"

	case model.StatusPartiallyPaid:
		if current.rank() >= 0 && current.rank() < OnHold.rank() {
			d.To = OnHold
			d.Alert = true
			d.Comment = "Partial paid order, administrator action required"
		}

	case model.StatusPaid:
		switch {
		case current.failed():
			d.Alert = true
			d.Comment = "payment received for a " + string(current) + " order"
		case current.rank() < AwaitingConfirmation.rank():
			d.To = AwaitingConfirmation
			d.Comment = "Awaiting blockchain confirmation"
		}

	case model.StatusConfirmed:
		switch {
		case current.failed():
			d.Alert = true
			d.Comment = "confirmed payment for a " + string(current) + " order"
		case current != Paid:
			d.To = Paid
			d.Comment = "payment confirmed"
		}

	case model.StatusComplete:
		d.Comment = "merchant paid out"

	case model.StatusInvalid:
		d.To, d.Alert, d.Comment = fail(current, Failed, "Order marked invalid by Coinvoice, administrator action required.")

	case model.StatusCancelled:
		d.To, d.Alert, d.Comment = fail(current, Canceled, "Order canceled by Coinvoice, administrator action may be required.")

	default:
		return d, errors.Wrapf(ErrUnhandledStatus, "%q", string(status))
	}

	d.Changed = d.To != d.From
	return d, nil
}

// fail moves an open order to the failure state to. A repeat on an already
// failed order is a no-op; a paid order keeps its state but is flagged.
func fail(current, to OrderState, comment string) (OrderState, bool, string) {
	switch {
	case current.failed():
		return current, false, ""
	case current == Paid:
		return current, true, "invoice turned " + string(to) + " after the order was paid"
	}
	return to, true, comment
}
