package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookshelf/internal/domain"
)

// CatalogService orchestrates the record store around the rating engine and
// enforces the existence/validation rules for every mutating operation.
// Dependencies come in through the constructor; there are no package globals.
type CatalogService struct {
	books    domain.BookRepository
	users    domain.UserRepository
	cache    domain.Cache // optional; nil disables caching
	cacheTTL time.Duration
}

func NewCatalogService(books domain.BookRepository, users domain.UserRepository, cache domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{books: books, users: users, cache: cache, cacheTTL: ttl}
}

const (
	booksKey = "books:all"
	usersKey = "users:all"
)

func bookKey(id string) string { return "book:" + id }

// ListBooks returns every book, in store order.
func (s *CatalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, booksKey, &out); ok {
			return out, nil
		}
	}
	out, err := s.books.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, booksKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// ListBooksByAuthor returns books whose author contains the given string,
// case-insensitively. Uncached: the key space is one entry per query string,
// which cannot be invalidated on writes.
func (s *CatalogService) ListBooksByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	return s.books.FindBooksByAuthor(ctx, author)
}

func (s *CatalogService) GetBook(ctx context.Context, id string) (domain.Book, error) {
	var b domain.Book
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, bookKey(id), &b); ok {
			return b, nil
		}
	}
	b, err := s.books.GetBook(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, bookKey(id), b, int(s.cacheTTL.Seconds()))
	}
	return b, nil
}

// AddBook stores a new book. Titles are unique across the catalog,
// case-insensitively; a missing ID is assigned here.
func (s *CatalogService) AddBook(ctx context.Context, b domain.Book) (domain.Book, error) {
	exists, err := s.books.ExistsBookByTitle(ctx, b.Title)
	if err != nil {
		return domain.Book{}, err
	}
	if exists {
		return domain.Book{}, fmt.Errorf("book with title %q: %w", b.Title, domain.ErrAlreadyExists)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := s.books.SaveBook(ctx, b); err != nil {
		return domain.Book{}, err
	}
	s.invalidateBook(ctx, b.ID)
	return b, nil
}

// UpdateBookPrice validates first, then resolves: an invalid price is
// reported even when the book does not exist.
func (s *CatalogService) UpdateBookPrice(ctx context.Context, id string, price *float64) error {
	if price == nil || *price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", domain.ErrInvalidArgument)
	}
	b, err := s.books.GetBook(ctx, id)
	if err != nil {
		return err
	}
	b.Price = price
	if err := s.books.SaveBook(ctx, b); err != nil {
		return err
	}
	s.invalidateBook(ctx, id)
	return nil
}

// DeleteBook removes a book. Users keep any reviewed-book entry pointing at
// it; stale back-references are accepted rather than reconciled.
func (s *CatalogService) DeleteBook(ctx context.Context, id string) error {
	exists, err := s.books.ExistsBook(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	if err := s.books.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.invalidateBook(ctx, id)
	return nil
}

// RateBook resolves both entities, runs the rating engine, and persists the
// book followed by the user. The two saves are separate single-record writes:
// a crash in between leaves the book's review list ahead of the user's
// reviewed-book list. Accepted single-writer limitation; upgrading to one
// store transaction would close the gap.
func (s *CatalogService) RateBook(ctx context.Context, bookID, userID string, rating float64, comment string) error {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	b, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return err
	}
	if err := domain.SubmitRating(&b, &u, rating, comment); err != nil {
		return err
	}
	if err := s.books.SaveBook(ctx, b); err != nil {
		return err
	}
	if err := s.users.SaveUser(ctx, u); err != nil {
		return err
	}
	s.invalidateBook(ctx, bookID)
	s.invalidate(ctx, usersKey)
	return nil
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, usersKey, &out); ok {
			return out, nil
		}
	}
	out, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, usersKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *CatalogService) invalidateBook(ctx context.Context, id string) {
	s.invalidate(ctx, bookKey(id))
	s.invalidate(ctx, booksKey)
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, key)
	}
}
