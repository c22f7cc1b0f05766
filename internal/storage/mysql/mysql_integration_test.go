//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"bookshelf/internal/domain"
	mysqlrepo "bookshelf/internal/storage/mysql"
)

// ---------- small helpers ----------
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=bookshelf",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "bookshelf")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertAndQuery(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	b := domain.Book{
		ID:          "11111111-1111-1111-1111-111111111111",
		Title:       "Dune",
		Author:      "Frank Herbert",
		Price:       pfloat(12.99),
		PublishDate: time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC),
		Publisher:   "Chilton Books",
		Description: "Desert planet epic.",
	}
	if err := repo.SaveBook(ctx, b); err != nil {
		t.Fatalf("SaveBook: %v", err)
	}

	u := domain.User{
		ID:        "22222222-2222-2222-2222-222222222222",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if err := repo.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	// Round-trip.
	got, err := repo.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if got.Title != "Dune" || got.Price == nil || *got.Price != 12.99 {
		t.Fatalf("unexpected book: %+v", got)
	}
	if !got.PublishDate.Equal(b.PublishDate) {
		t.Fatalf("publish date: got %v want %v", got.PublishDate, b.PublishDate)
	}
	if got.RatingCount != 0 || len(got.Reviews) != 0 {
		t.Fatalf("fresh book has review state: %+v", got)
	}

	// Existence checks; title is matched case-insensitively.
	if ok, err := repo.ExistsBook(ctx, b.ID); err != nil || !ok {
		t.Fatalf("ExistsBook: %v %v", ok, err)
	}
	for _, title := range []string{"Dune", "dune", "DUNE"} {
		if ok, err := repo.ExistsBookByTitle(ctx, title); err != nil || !ok {
			t.Fatalf("ExistsBookByTitle(%q): %v %v", title, ok, err)
		}
	}
	if ok, _ := repo.ExistsBookByTitle(ctx, "Emma"); ok {
		t.Fatal("ExistsBookByTitle matched a missing title")
	}

	// Author substring search, case-insensitive.
	found, err := repo.FindBooksByAuthor(ctx, "herb")
	if err != nil || len(found) != 1 || found[0].ID != b.ID {
		t.Fatalf("FindBooksByAuthor: %+v %v", found, err)
	}

	// Upsert with review state round-trips the JSON columns.
	b.AverageRating = 4.5
	b.RatingCount = 1
	b.Reviews = []domain.ReviewEntry{{UserID: u.ID, Rating: 4.5, Comment: "Great book!"}}
	if err := repo.SaveBook(ctx, b); err != nil {
		t.Fatalf("SaveBook (update): %v", err)
	}
	got, err = repo.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBook after update: %v", err)
	}
	if got.AverageRating != 4.5 || got.RatingCount != 1 || len(got.Reviews) != 1 {
		t.Fatalf("review state lost: %+v", got)
	}
	if got.Reviews[0].UserID != u.ID || got.Reviews[0].Comment != "Great book!" {
		t.Fatalf("review entry: %+v", got.Reviews[0])
	}

	u.ReviewedBooks = []domain.ReviewedBookEntry{{BookID: b.ID, Rating: 4.5, Comment: "Great book!"}}
	if err := repo.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser (update): %v", err)
	}
	gotU, err := repo.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if len(gotU.ReviewedBooks) != 1 || gotU.ReviewedBooks[0].BookID != b.ID {
		t.Fatalf("reviewed books lost: %+v", gotU)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("ListUsers: %+v %v", users, err)
	}

	// Delete and not-found mapping.
	if err := repo.DeleteBook(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	if _, err := repo.GetBook(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetUser(ctx, "33333333-3333-3333-3333-333333333333"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user, got %v", err)
	}
}
