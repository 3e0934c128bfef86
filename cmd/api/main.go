// Command api serves the user management HTTP API.
//
//	@title						User Management API
//	@version					1.0
//	@description				Registration, login, email verification and role-gated user administration.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/99minutos/user-management/internal/api"
	"github.com/99minutos/user-management/internal/api/middleware"
	"github.com/99minutos/user-management/internal/core/auth"
	"github.com/99minutos/user-management/internal/core/service"
	"github.com/99minutos/user-management/internal/infrastructure/db/mongo"
	"github.com/99minutos/user-management/internal/infrastructure/db/redis"
	"github.com/99minutos/user-management/internal/infrastructure/http/handlers"
	"github.com/99minutos/user-management/internal/infrastructure/mail"
	"github.com/99minutos/user-management/internal/infrastructure/queue"
	"github.com/99minutos/user-management/internal/pkg/config"
	"github.com/99minutos/user-management/pkg/logger"
)

const connectBudget = 30 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-management",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.HTTP.AllowedOrigins).
		Int("max_login_attempts", cfg.Login.MaxAttempts).
		Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := connectWithRetry(ctx, log, "mongo", func() (*mongodriver.Client, *mongodriver.Database, error) {
		return mongo.Connect(ctx, mongo.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, _, err := connectWithRetry(ctx, log, "redis", func() (*goredis.Client, struct{}, error) {
		c, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		return c, struct{}{}, err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() { _ = rdb.Close() }()

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}

	tokens, err := auth.NewTokens(auth.TokenConfig{
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.JWT.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token configuration")
	}

	renderer := mail.NewVerificationRenderer(cfg.ServerBaseURL)
	sender := mail.NewLogSender(cfg.Mail.From, logger.Component("mail"))
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, renderer.Render, sender, logger.Component("email_queue"))
	dispatcher.Start(ctx)

	guard := redis.NewLoginGuard(rdb, cfg.Login.Window)
	authSvc := service.NewAuthService(users, guard, dispatcher, tokens, cfg.Login.MaxAttempts, logger.Component("auth"))
	userSvc := service.NewUserService(users, guard, dispatcher, logger.Component("users"))

	loginLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.Login.RatePerSecond), cfg.Login.Burst)
	loginLimiter.Start(ctx)

	e := api.NewRouter(api.Deps{
		Log:          log,
		AuthService:  authSvc,
		UserService:  userSvc,
		Resolver:     tokens,
		LoginLimiter: loginLimiter,
		Health: []handlers.Dependency{
			handlers.MongoDependency(db),
			handlers.RedisDependency(rdb),
		},
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Development:    cfg.IsDevelopment(),
		Registerer:     prometheus.DefaultRegisterer,
	})

	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

// connectWithRetry retries connect with exponential backoff until it
// succeeds, the budget runs out or ctx is cancelled.
func connectWithRetry[A, B any](ctx context.Context, log zerolog.Logger, name string, connect func() (A, B, error)) (A, B, error) {
	type pair struct {
		a A
		b B
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectBudget

	p, err := backoff.RetryNotifyWithData(
		func() (pair, error) {
			a, b, err := connect()
			return pair{a, b}, err
		},
		backoff.WithContext(policy, ctx),
		func(err error, wait time.Duration) {
			log.Warn().Err(err).Str("dependency", name).Dur("retry_in", wait).Msg("connect failed")
		},
	)
	return p.a, p.b, err
}
