package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"bookshelf/internal/adapters/observability"
	"bookshelf/internal/app"
	"bookshelf/internal/shared"
	mysqlrepo "bookshelf/internal/storage/mysql"
)

// Seeds the stock catalog and demo users. Idempotent: seed rows carry fixed
// IDs, so re-running refreshes them in place.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	books := app.SeedBooks()
	users := app.SeedUsers()
	log.Info().
		Int("books", len(books)).
		Int("users", len(users)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	run := func(label, id string, save func(context.Context) error) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := save(ctx); err != nil {
				log.Warn().Str(label, id).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str(label, id).Msg("seed ok")
		}()
	}

	for _, b := range books {
		b := b
		run("book", b.Title, func(ctx context.Context) error { return repo.SaveBook(ctx, b) })
	}
	for _, u := range users {
		u := u
		run("user", u.Email, func(ctx context.Context) error { return repo.SaveUser(ctx, u) })
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
