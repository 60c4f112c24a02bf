package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conformal/coinvoice-plugins/coinvoice/config"
	"github.com/conformal/coinvoice-plugins/coinvoice/notify"
)

var logger = logrus.WithField("component", "coinvoice.cli")

func newServeCmd(root *rootOptions) *cobra.Command {
	var orders []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive payment notifications",
		Long:  "Serve the notification URL and track the listed orders in memory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			mux, err := webhookMux(cfg, orders)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              cfg.Webhook.Listen,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Infof("listening on %s%s", cfg.Webhook.Listen, cfg.Webhook.Path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&orders, "order", nil, "order to track as id:key, repeatable")
	return cmd
}

// webhookMux wires the notification handler for cfg over an in-memory store
// seeded with orders given as id:key.
func webhookMux(cfg config.Config, orders []string) (*http.ServeMux, error) {
	store := notify.NewMemoryStore()
	for _, o := range orders {
		id, key, ok := strings.Cut(o, ":")
		if !ok || id == "" || key == "" {
			return nil, errors.Errorf("order %q: want id:key", o)
		}
		store.Put(notify.Order{ID: id, Key: key})
	}

	var opts []notify.HandlerOption
	if cfg.Webhook.Secret != "" {
		opts = append(opts, notify.WithVerifier(notify.SharedSecret(cfg.Webhook.Secret)))
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Webhook.Path, notify.NewWebhookHandler(notify.NewProcessor(store, nil), opts...))
	return mux, nil
}
