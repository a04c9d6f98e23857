package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/constellation/social-api/internal/infrastructure/config"
	mongodb "github.com/constellation/social-api/internal/infrastructure/db/mongo"
	"github.com/constellation/social-api/pkg/logger"
)

const serviceName = "social-api"

var envFiles []string

var rootCmd = &cobra.Command{
	Use:          "social-api",
	Short:        "Social network backend with role-based moderation",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFiles...); err != nil {
			return fmt.Errorf("load env files: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env)")
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	log, err := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	return cfg, log, nil
}

// connectMongo opens the database and returns a release func that disconnects it.
func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, func(), error) {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		AppName:     serviceName,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	return db, release, nil
}
