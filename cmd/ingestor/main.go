package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/flapabay/flapabay-engine/internal/adapters/feed"
	"github.com/flapabay/flapabay-engine/internal/adapters/observability"
	redisad "github.com/flapabay/flapabay-engine/internal/adapters/redis"
	"github.com/flapabay/flapabay-engine/internal/app"
	"github.com/flapabay/flapabay-engine/internal/shared"
	mysqlrepo "github.com/flapabay/flapabay-engine/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.FeedBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := feed.New(cfg.FeedBase, cfg.FeedKey, cfg.FeedRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize feed client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	imp := app.NewImportService(client, repo, cache)

	ids, err := client.ListListingIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list feed listings")
	}
	log.Info().Int("count", len(ids)).Msg("feed listings discovered")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(listingID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := imp.ImportListing(ctx, listingID); err != nil {
				log.Warn().Int64("id", listingID).Err(err).Msg("import failed")
				return
			}
			log.Info().Int64("id", listingID).Msg("import ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("import completed")
}
