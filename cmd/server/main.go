package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"komarabo/internal/config"
	"komarabo/internal/repository/sqlite"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "komarabo",
	Short:         "Backend for the community issue board and the wakuwaku product lab",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.{yaml,json,toml})")
	rootCmd.AddCommand(serveCmd, migrateCmd, adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the process logger shared by every subcommand.
func setup() (config.Config, *logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	return cfg, logger, nil
}

// openDatabase opens the sqlite file and brings its schema up to date.
func openDatabase(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*sql.DB, error) {
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := sqlite.Migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
