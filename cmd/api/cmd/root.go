// Package cmd holds the cobra commands of the api binary.
package cmd

import (
	"github.com/deppfellow/assignment-api/internal/config"
	"github.com/deppfellow/assignment-api/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Assignment API server",
	Long: `api serves the assignment CRUD API over HTTP, backed by PostgreSQL.

Commands:

  Start the server (default):
    api serve [--migrate]

  Apply database migrations and exit:
    api migrate

Configuration is read from ASSIGNMENTS_* environment variables and an
optional .env file in the working directory, e.g.:
    ASSIGNMENTS_PRIMARY.ENV=local
    ASSIGNMENTS_SERVER.PORT=8080
    ASSIGNMENTS_DATABASE.HOST=localhost`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply database migrations before serving")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap loads configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
