package domain

import "context"

// BookRepository is the record-store surface the catalog needs for books.
// Implementations provide atomic single-record reads and writes; nothing
// here spans records.
type BookRepository interface {
	GetBook(ctx context.Context, id string) (Book, error) // ErrNotFound when absent
	ExistsBook(ctx context.Context, id string) (bool, error)
	ExistsBookByTitle(ctx context.Context, title string) (bool, error) // case-insensitive exact match
	FindBooksByAuthor(ctx context.Context, author string) ([]Book, error)
	ListBooks(ctx context.Context) ([]Book, error)
	SaveBook(ctx context.Context, b Book) error // upsert
	DeleteBook(ctx context.Context, id string) error
}

type UserRepository interface {
	GetUser(ctx context.Context, id string) (User, error) // ErrNotFound when absent
	ListUsers(ctx context.Context) ([]User, error)
	SaveUser(ctx context.Context, u User) error // upsert
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
