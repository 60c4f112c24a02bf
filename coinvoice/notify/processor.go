package notify

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/conformal/coinvoice-plugins/coinvoice/checkout"
	"github.com/conformal/coinvoice-plugins/coinvoice/model"
	"github.com/conformal/coinvoice-plugins/coinvoice/mutex"
)

var logger = logrus.WithField("component", "coinvoice.notify")

// Alerter tells an operator about an order that needs attention.
type Alerter interface {
	Alert(ctx context.Context, order *Order, d Decision) error
}

// AlerterFunc adapts a plain function to Alerter.
type AlerterFunc func(ctx context.Context, order *Order, d Decision) error

func (f AlerterFunc) Alert(ctx context.Context, order *Order, d Decision) error {
	return f(ctx, order, d)
}

// LogAlerter reports alerts as warning log entries.
type LogAlerter struct{}

func (LogAlerter) Alert(_ context.Context, order *Order, d Decision) error {
	logger.WithFields(logrus.Fields{
		"order":  order.ID,
		"status": d.Status.String(),
		"from":   d.From,
		"to":     d.To,
	}).Warn(d.Comment)
	return nil
}

// Processor applies invoice notifications to stored orders. Notifications for
// the same order are handled one at a time.
type Processor struct {
	store   OrderStore
	alerter Alerter
	locks   mutex.KeyedRWMutex[string]
}

// NewProcessor returns a processor over store. A nil alerter means LogAlerter.
func NewProcessor(store OrderStore, alerter Alerter) *Processor {
	if alerter == nil {
		alerter = LogAlerter{}
	}
	return &Processor{store: store, alerter: alerter}
}

// Process finds the order named by the notification's rendezvous token and
// moves it forward. The alert, when one is due, is raised before the order is
// saved so that a failed save is retried with the alert repeated rather than
// lost.
func (p *Processor) Process(ctx context.Context, n *model.InvoiceNotification) (Decision, error) {
	id, key, err := checkout.DecodeToken(n.InternalInvoiceID)
	if err != nil {
		return Decision{Status: n.Status}, errors.Wrapf(err, "invoice %s", n.ID)
	}

	p.locks.Lock(id)
	defer p.locks.Unlock(id)

	order, err := p.find(ctx, id, key)
	if err != nil {
		return Decision{Status: n.Status}, err
	}

	log := logger.WithFields(logrus.Fields{"order": order.ID, "invoice": n.ID, "status": n.Status.String()})

	d, err := Apply(order.State, n.Status)
	if err != nil {
		log.WithError(err).Warn("NOT HANDLED")
		return d, err
	}

	if d.Alert {
		if err := p.alerter.Alert(ctx, order, d); err != nil {
			return d, errors.Wrapf(err, "alert for order %s", order.ID)
		}
	}
	if !d.Changed {
		log.Debugf("order stays %s", order.State)
		return d, nil
	}

	order.State = d.To
	if d.Comment != "" {
		order.Notes = append(order.Notes, d.Comment)
	}
	if err := p.store.Save(ctx, order); err != nil {
		return d, errors.Wrapf(err, "save order %s", order.ID)
	}
	log.Infof("order %s -> %s", d.From, d.To)
	if n.Status.Terminal() {
		log.Debug("invoice reached a final status")
	}
	return d, nil
}

// find looks the order up by id, falling back to a non-empty key, and checks
// that the key matches.
func (p *Processor) find(ctx context.Context, id, key string) (*Order, error) {
	order, err := p.store.Get(ctx, id)
	if errors.Is(err, ErrOrderNotFound) && key != "" {
		order, err = p.store.FindByKey(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if order.Key != key {
		return nil, errors.Wrapf(ErrKeyMismatch, "order %s", order.ID)
	}
	return order, nil
}
