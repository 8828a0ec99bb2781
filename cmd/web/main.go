package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/demand-atlas/pkg/server"
	"github.com/de-tools/demand-atlas/pkg/store/duckdb"
	demandstore "github.com/de-tools/demand-atlas/pkg/store/duckdb/demand"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var dbPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Demand Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "demand-atlas.db",
		"Path to the DuckDB database holding pre-aggregated demand")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := demandstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create demand store: %w", err)
	}

	stats, err := store.GetStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read demand store stats: %w", err)
	}
	logger.Info().
		Int64("records", stats.RecordsCount).
		Msgf("Demand store at `%s` opened.", dbPath)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			DemandStore: store,
			Logger:      logger,
		},
	})

	return api.Start()
}
