package app

import (
	"time"

	"bookshelf/internal/domain"
)

// Stock data loaded by cmd/seeder. IDs are fixed so re-running the seeder
// refreshes rows instead of duplicating them.

func SeedBooks() []domain.Book {
	return []domain.Book{
		{
			ID:          "6b1f0aa2-6f0e-4f5c-9a01-6d2b8f1c0001",
			Title:       "The Pragmatic Programmer",
			Author:      "Andrew Hunt & David Thomas",
			Price:       price(45.99),
			PublishDate: date(1999, time.October, 30),
			Publisher:   "Addison-Wesley",
			Description: "A guide to becoming a better programmer with practical advice.",
		},
		{
			ID:          "6b1f0aa2-6f0e-4f5c-9a01-6d2b8f1c0002",
			Title:       "Clean Code",
			Author:      "Robert C. Martin",
			Price:       price(39.99),
			PublishDate: date(2008, time.August, 1),
			Publisher:   "Prentice Hall",
			Description: "A handbook of agile software craftsmanship.",
		},
		{
			ID:          "6b1f0aa2-6f0e-4f5c-9a01-6d2b8f1c0003",
			Title:       "Effective Java",
			Author:      "Joshua Bloch",
			Price:       price(49.50),
			PublishDate: date(2018, time.January, 6),
			Publisher:   "Addison-Wesley",
			Description: "Best practices for Java programming.",
		},
		{
			ID:          "6b1f0aa2-6f0e-4f5c-9a01-6d2b8f1c0004",
			Title:       "Design Patterns",
			Author:      "Erich Gamma, Richard Helm, Ralph Johnson, John Vlissides",
			Price:       price(59.95),
			PublishDate: date(1994, time.October, 31),
			Publisher:   "Addison-Wesley",
			Description: "Elements of reusable object-oriented software.",
		},
		{
			ID:          "6b1f0aa2-6f0e-4f5c-9a01-6d2b8f1c0005",
			Title:       "Java Concurrency in Practice",
			Author:      "Brian Goetz",
			Price:       price(42.75),
			PublishDate: date(2006, time.May, 19),
			Publisher:   "Addison-Wesley",
			Description: "Comprehensive guide to writing robust concurrent programs in Java.",
		},
	}
}

func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:        "9c4d2e10-2b61-4d7a-8f30-aa5e3c9d0001",
			Email:     "ada.lovelace@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
		},
		{
			ID:        "9c4d2e10-2b61-4d7a-8f30-aa5e3c9d0002",
			Email:     "grace.hopper@example.com",
			FirstName: "Grace",
			LastName:  "Hopper",
		},
		{
			ID:        "9c4d2e10-2b61-4d7a-8f30-aa5e3c9d0003",
			Email:     "dennis.ritchie@example.com",
			FirstName: "Dennis",
			LastName:  "Ritchie",
		},
	}
}

func price(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
