package domain

import "time"

// Book is the aggregate for everything rating-related: it owns its review
// entries, and AverageRating/RatingCount are maintained incrementally so
// listing endpoints never have to walk the reviews.
type Book struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	Price         *float64      `json:"price"` // nil = price not set
	PublishDate   time.Time     `json:"publishDate"`
	Publisher     string        `json:"publisher"`
	Description   string        `json:"description"`
	AverageRating float64       `json:"averageRating"`
	RatingCount   int           `json:"ratingCount"`
	Reviews       []ReviewEntry `json:"reviews"`
}

// ReviewEntry is the authoritative copy of one user's review of a book.
// There is at most one entry per user; re-rating updates it in place.
type ReviewEntry struct {
	UserID  string  `json:"userId"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}
