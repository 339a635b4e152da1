package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"komarabo/internal/repository/sqlite"
	"komarabo/internal/service"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		db, err := openDatabase(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		logger.Infof("database %s is up to date", cfg.Database.Path)
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin flag of existing users",
}

var adminGrantCmd = &cobra.Command{
	Use:   "grant <user_hash>",
	Short: "Give a user access to the admin dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], true)
	},
}

var adminRevokeCmd = &cobra.Command{
	Use:   "revoke <user_hash>",
	Short: "Remove a user's admin access",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], false)
	},
}

func init() {
	adminCmd.AddCommand(adminGrantCmd, adminRevokeCmd)
}

func setAdmin(cmd *cobra.Command, userHash string, isAdmin bool) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	db, err := openDatabase(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	users := service.NewUserService(sqlite.NewUserRepository(db))
	if err := users.SetAdmin(cmd.Context(), userHash, isAdmin); err != nil {
		return fmt.Errorf("set admin for %s: %w", userHash, err)
	}
	logger.WithField("user_hash", userHash).Infof("is_admin=%t", isAdmin)
	return nil
}
