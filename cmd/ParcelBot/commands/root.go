package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/logger"
)

var (
	logLevel string
	log      *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "ParcelBot",
		Short:        "Telegram bot for sending parcels",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("log-level") {
				if env := os.Getenv("LOG_LEVEL"); env != "" {
					logLevel = env
				}
			}
			l, err := logger.New(logLevel)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(serveCmd(), migrateCmd(), quoteCmd())
	return root.Execute()
}
