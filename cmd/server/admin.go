package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/constellation/social-api/internal/core/service"
	"github.com/constellation/social-api/internal/infrastructure/auth"
	mongodb "github.com/constellation/social-api/internal/infrastructure/db/mongo"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes the API relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, log, err := setup(ctx)
		if err != nil {
			return err
		}
		db, closeMongo, err := connectMongo(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeMongo()

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
		return nil
	},
}

var grantSuperAdminCmd = &cobra.Command{
	Use:   "grant-superadmin",
	Short: "Promote an existing account to superadmin",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := cmd.Flags().GetString("email")
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		cfg, log, err := setup(ctx)
		if err != nil {
			return err
		}
		db, closeMongo, err := connectMongo(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeMongo()

		// One-shot command: no tokens are issued or revoked, no metrics are served.
		accounts := service.NewAccountService(
			mongodb.NewUserRepository(db),
			auth.NewBcryptHasher(cfg.BcryptCost),
			nil,
			nil,
			log,
		)
		user, err := accounts.GrantSuperAdmin(ctx, email)
		if err != nil {
			return fmt.Errorf("grant superadmin to %s: %w", email, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", user.Name, user.ID, user.Role)
		return nil
	},
}

func init() {
	grantSuperAdminCmd.Flags().String("email", "", "email of the account to promote")
	_ = grantSuperAdminCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(ensureIndexesCmd, grantSuperAdminCmd)
}
