package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"drivent/internal/adapters/catalog"
	"drivent/internal/adapters/observability"
	redisad "drivent/internal/adapters/redis"
	"drivent/internal/app"
	"drivent/internal/shared"
	mysqlrepo "drivent/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", cfg.Workers).
		Int("hotels", len(cfg.HotelIDs)).
		Msg("importer starting")

	if len(cfg.HotelIDs) == 0 {
		log.Fatal().Msg("IMPORT_HOTEL_IDS is empty")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := catalog.New(cfg.CatalogBase, cfg.CatalogKey, cfg.ImportRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	imp := app.NewImportService(client, repo, cache)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range cfg.HotelIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := imp.ImportHotel(ctx, hotelID); err != nil {
				log.Warn().Int64("id", hotelID).Err(err).Msg("import failed")
				return
			}
			log.Info().Int64("id", hotelID).Msg("import ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("import completed")
}
