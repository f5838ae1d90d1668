package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/finhr/backoffice/internal/adapters/api"
	"github.com/finhr/backoffice/internal/core/controllers"
	"github.com/finhr/backoffice/internal/platform/config"
)

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	client *api.Client
	bridge *controllers.AsyncNotificationBridge
	logger *slog.Logger
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	a := &app{logger: logger}

	root := &cobra.Command{
		Use:   "backofficectl",
		Short: "Query and manage back-office records from the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.client = api.NewClient(cfg, logger)
			a.bridge = controllers.NewAsyncNotificationBridge(
				controllers.NewSignalBus(),
				consoleToasts{},
				nil,
				logger,
				controllers.WithBridgeDurations(cfg.NotifyDedupeWindow, cfg.ErrorClearDelay, cfg.SuccessRedirectDelay),
			)
			return nil
		},
	}

	root.AddCommand(listCommand(a))
	root.AddCommand(actionCommand(a))
	root.AddCommand(trialBalanceCommand(a))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
