package notify

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/conformal/coinvoice-plugins/coinvoice/checkout"
	"github.com/conformal/coinvoice-plugins/coinvoice/model"
)

// MaxBodyBytes caps the size of a notification body.
const MaxBodyBytes = int64(65536)

// ErrUnauthorized is returned by a Verifier that rejects a request.
var ErrUnauthorized = errors.New("webhook request not authorized")

// Verifier authenticates an inbound notification request. The service signs
// nothing, so a handler without a Verifier accepts any caller.
type Verifier interface {
	Verify(r *http.Request) error
}

// SharedSecret accepts requests whose token query parameter equals the
// secret. Put the secret into the notification URL handed to the service.
type SharedSecret string

// TokenParam is the query parameter checked by SharedSecret.
const TokenParam = "token"

func (s SharedSecret) Verify(r *http.Request) error {
	got := r.URL.Query().Get(TokenParam)
	if s == "" || subtle.ConstantTimeCompare([]byte(got), []byte(s)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// WebhookHandler serves the notification URL.
type WebhookHandler struct {
	processor *Processor
	verifier  Verifier
}

type HandlerOption func(*WebhookHandler)

func WithVerifier(v Verifier) HandlerOption {
	return func(h *WebhookHandler) { h.verifier = v }
}

func NewWebhookHandler(p *Processor, opts ...HandlerOption) *WebhookHandler {
	h := &WebhookHandler{processor: p}
	for _, o := range opts {
		o(h)
	}
	if h.verifier == nil {
		logger.Warn("webhook has no verifier, notifications from any caller will be accepted")
	}
	return h
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.WithFields(logrus.Fields{
		"request_id": uuid.New().String(),
		"remote":     r.RemoteAddr,
	})

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.verifier != nil {
		if err := h.verifier.Verify(r); err != nil {
			log.WithError(err).Warn("rejected notification")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("notification body too large")
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.WithError(err).Error("error reading request body")
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}
	log.Debugf("POST body: %s", body)

	n, err := model.UnmarshalNotification(body)
	if err != nil {
		log.WithError(err).Warn("cannot decode notification")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.processor.Process(r.Context(), n)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnhandledStatus):
		// Acknowledged so the service stops redelivering; Process logged it.
	case errors.Is(err, checkout.ErrInvalidToken):
		log.WithError(err).Warn("bad rendezvous token")
		http.Error(w, "invalid internalInvoiceId", http.StatusBadRequest)
		return
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrKeyMismatch):
		log.WithError(err).Warn("unknown order")
		http.Error(w, "unknown order", http.StatusNotFound)
		return
	default:
		log.WithError(err).Error("cannot process notification")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.WithFields(logrus.Fields{"invoice": n.ID, "changed": d.Changed}).Debug("notification processed")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}
