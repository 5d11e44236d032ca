package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ticket_hotels/internal/adapters/auth"
	"ticket_hotels/internal/adapters/observability"
	redisad "ticket_hotels/internal/adapters/redis"
	"ticket_hotels/internal/app"
	"ticket_hotels/internal/domain"
	"ticket_hotels/internal/shared"
	mysqlrepo "ticket_hotels/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("hotels", cfg.Seed.Hotels).
		Int("rooms", cfg.Seed.Rooms).
		Int("workers", cfg.Seed.Workers).
		Msg("seeder starting")

	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := mysqlrepo.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	log.Info().Msg("schema ok")

	repo := mysqlrepo.New(db)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}
	seed := app.NewSeedService(repo, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL), cache)

	capacities := make([]int, cfg.Seed.Rooms)
	for i := range capacities {
		capacities[i] = 1 + i%4
	}

	workers := cfg.Seed.Workers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i := 1; i <= cfg.Seed.Hotels; i++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer sem.Release(int64(1))

			name := fmt.Sprintf("Hotel %d", n)
			image := fmt.Sprintf("https://picsum.photos/seed/hotel-%d/640/480", n)
			h, rooms, err := seed.SeedHotel(ctx, name, image, capacities)
			if err != nil {
				log.Warn().Int("n", n).Err(err).Msg("seed hotel failed")
				return
			}
			log.Info().Int64("id", h.ID).Int("rooms", len(rooms)).Msg("seed hotel ok")
		}(i)
	}
	wg.Wait()

	token, err := seed.GrantAccess(ctx, domain.AccessGrant{
		Email:         cfg.Seed.Email,
		Status:        domain.TicketPaid,
		IncludesHotel: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("grant access failed")
	}
	log.Info().Str("email", cfg.Seed.Email).Msg("seeding completed")
	fmt.Println(token)
}
