package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"ticket_hotels/internal/adapters/auth"
	server "ticket_hotels/internal/adapters/http_server"
	"ticket_hotels/internal/adapters/observability"
	redisad "ticket_hotels/internal/adapters/redis"
	"ticket_hotels/internal/app"
	"ticket_hotels/internal/domain"
	"ticket_hotels/internal/shared"
	mysqlrepo "ticket_hotels/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	log.Info().Msg("database connection ok")
	if cfg.AutoMigrate {
		if err := mysqlrepo.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrate failed")
		}
	}

	// deps
	repo := mysqlrepo.New(db)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			// serve uncached rather than refuse to start
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, cache disabled")
		} else {
			cache = rc
		}
	}

	q := app.NewQueryService(repo, repo, cache,
		app.AccessPolicy{RequireHotel: cfg.Policy.RequireHotelIncluded},
		app.Options{
			EnforceList:   cfg.Policy.EnforceList,
			EnforceDetail: cfg.Policy.EnforceDetail,
			CacheTTL:      cfg.CacheTTL,
		})
	verifier := auth.NewVerifier(auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL), repo)

	// http
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	srv := server.New(cfg.RequestTimeout, limiter)
	if cfg.MetricsAddr == "" {
		srv.Mount("/metrics", observability.MetricsHandler(reg))
	}
	srv.MountHandlers(&server.Handlers{Q: q, Auth: verifier, Status: cfg.Status})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
