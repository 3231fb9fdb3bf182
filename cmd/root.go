package cmd

import (
	"fmt"
	"os"

	"dummy-ticket/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

func Execute() {
	rootCmd := &cobra.Command{
		Use:           "dummy-ticket",
		Short:         "Dummy ticket booking API, notification worker and migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to the .env config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config and builds the logger every subcommand shares.
func bootstrap(component string) (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name+"-"+component, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production defaults.\n", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger.With(zap.String("component", component)), nil
}
