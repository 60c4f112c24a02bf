package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conformal/coinvoice-plugins/coinvoice/config"
	"github.com/conformal/coinvoice-plugins/coinvoice/util"
)

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.configPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "coinvoice",
		Short:         "Bitcoin invoicing through the Coinvoice service",
		Long:          "Create and query Coinvoice invoices and handle their payment notifications.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if opts.debug || util.DebugEnabled() {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.FileName+")")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "debug logging, same as COINVOICE_DEBUG=true")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCreateCmd(opts))
	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newNotificationCmd())
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		logrus.Error(err)
	}
	return err
}
