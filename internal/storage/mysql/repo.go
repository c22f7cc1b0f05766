package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"bookshelf/internal/adapters/observability"
	"bookshelf/internal/domain"
)

// Repo implements the catalog's record-store ports on MySQL. The owned
// collections (reviews, reviewed_books) live in JSON columns on their parent
// row, so every Save is one atomic single-record write.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// observe times one store operation; use as `defer observe("op")()`.
func observe(op string) func() {
	start := time.Now()
	return func() { observability.ObserveStore(op, time.Since(start)) }
}

// ---- books ----

func (r *Repo) GetBook(ctx context.Context, id string) (domain.Book, error) {
	defer observe("get_book")()
	b, err := scanBook(r.db.QueryRowContext(ctx, getBookSQL, id))
	if err == sql.ErrNoRows {
		return domain.Book{}, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return b, err
}

func (r *Repo) ExistsBook(ctx context.Context, id string) (bool, error) {
	defer observe("exists_book")()
	var ok bool
	err := r.db.QueryRowContext(ctx, existsBookSQL, id).Scan(&ok)
	return ok, err
}

func (r *Repo) ExistsBookByTitle(ctx context.Context, title string) (bool, error) {
	defer observe("exists_book_by_title")()
	var ok bool
	err := r.db.QueryRowContext(ctx, existsBookByTitleSQL, title).Scan(&ok)
	return ok, err
}

func (r *Repo) FindBooksByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	defer observe("find_books_by_author")()
	rows, err := r.db.QueryContext(ctx, findBooksByAuthorSQL, author)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *Repo) ListBooks(ctx context.Context) ([]domain.Book, error) {
	defer observe("list_books")()
	rows, err := r.db.QueryContext(ctx, listBooksSQL)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *Repo) SaveBook(ctx context.Context, b domain.Book) error {
	defer observe("save_book")()
	reviews, err := json.Marshal(emptyIfNilReviews(b.Reviews))
	if err != nil {
		return err
	}
	var price any
	if b.Price != nil {
		price = *b.Price
	}
	var pubDate any
	if !b.PublishDate.IsZero() {
		pubDate = b.PublishDate
	}
	_, err = r.db.ExecContext(ctx, upsertBookSQL,
		b.ID,
		b.Title,
		b.Author,
		price,
		pubDate,
		b.Publisher,
		b.Description,
		b.AverageRating,
		b.RatingCount,
		string(reviews),
	)
	return err
}

func (r *Repo) DeleteBook(ctx context.Context, id string) error {
	defer observe("delete_book")()
	_, err := r.db.ExecContext(ctx, deleteBookSQL, id)
	return err
}

// ---- users ----

func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	defer observe("get_user")()
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, err
}

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	defer observe("list_users")()
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) SaveUser(ctx context.Context, u domain.User) error {
	defer observe("save_user")()
	reviewed, err := json.Marshal(emptyIfNilReviewed(u.ReviewedBooks))
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertUserSQL,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		string(reviewed),
	)
	return err
}

// ---- scanning ----

type rowScanner interface{ Scan(dst ...any) error }

func scanBook(row rowScanner) (domain.Book, error) {
	var (
		b           domain.Book
		price       sql.NullFloat64
		pubDate     sql.NullTime
		publisher   sql.NullString
		description sql.NullString
		reviewsJSON []byte
	)
	if err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&price,
		&pubDate,
		&publisher,
		&description,
		&b.AverageRating,
		&b.RatingCount,
		&reviewsJSON,
	); err != nil {
		return domain.Book{}, err
	}
	if price.Valid {
		p := price.Float64
		b.Price = &p
	}
	if pubDate.Valid {
		b.PublishDate = pubDate.Time
	}
	b.Publisher = publisher.String
	b.Description = description.String
	if len(reviewsJSON) > 0 {
		if err := json.Unmarshal(reviewsJSON, &b.Reviews); err != nil {
			return domain.Book{}, fmt.Errorf("book %s: decode reviews: %w", b.ID, err)
		}
	}
	return b, nil
}

func collectBooks(rows *sql.Rows) ([]domain.Book, error) {
	defer rows.Close()
	var out []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u            domain.User
		reviewedJSON []byte
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &reviewedJSON); err != nil {
		return domain.User{}, err
	}
	if len(reviewedJSON) > 0 {
		if err := json.Unmarshal(reviewedJSON, &u.ReviewedBooks); err != nil {
			return domain.User{}, fmt.Errorf("user %s: decode reviewed books: %w", u.ID, err)
		}
	}
	return u, nil
}

// JSON columns are NOT NULL; nil slices are written as [].
func emptyIfNilReviews(rs []domain.ReviewEntry) []domain.ReviewEntry {
	if rs == nil {
		return []domain.ReviewEntry{}
	}
	return rs
}

func emptyIfNilReviewed(rs []domain.ReviewedBookEntry) []domain.ReviewedBookEntry {
	if rs == nil {
		return []domain.ReviewedBookEntry{}
	}
	return rs
}
