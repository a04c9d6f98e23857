package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/constellation/social-api/internal/api"
	"github.com/constellation/social-api/internal/api/handler"
	"github.com/constellation/social-api/internal/core/service"
	"github.com/constellation/social-api/internal/infrastructure/auth"
	mongodb "github.com/constellation/social-api/internal/infrastructure/db/mongo"
	redisdb "github.com/constellation/social-api/internal/infrastructure/db/redis"
	"github.com/constellation/social-api/internal/infrastructure/metrics"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	db, closeMongo, err := connectMongo(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("mongo connection failed")
		return err
	}
	defer closeMongo()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Error().Err(err).Msg("index creation failed")
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		return err
	}
	defer rdb.Close()

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	groups := mongodb.NewGroupRepository(db)
	posts := mongodb.NewPostRepository(db)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(redisdb.NewSessionStore(rdb), cfg.JWTSecret, cfg.TokenTTL)

	m := metrics.New(prometheus.DefaultRegisterer)

	router := api.NewRouter(api.Dependencies{
		Accounts: service.NewAccountService(users, hasher, tokens, m, log),
		Sessions: service.NewSessionService(users, hasher, tokens, m, log),
		Posts:    service.NewPostService(posts, m, log),
		Groups:   service.NewGroupService(groups, users, m, log),
		Readiness: map[string]handler.Pinger{
			"mongo": handler.MongoPinger(db),
			"redis": handler.RedisPinger(rdb),
		},
		Log: log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
