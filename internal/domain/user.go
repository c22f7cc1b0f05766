package domain

type User struct {
	ID            string              `json:"id"`
	Email         string              `json:"email"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	ReviewedBooks []ReviewedBookEntry `json:"reviewedBooks"`
}

// ReviewedBookEntry is a denormalized back-reference to a book the user
// reviewed. The book's ReviewEntry stays authoritative; this one exists for
// lookup convenience and is never removed, not even when the book is deleted.
type ReviewedBookEntry struct {
	BookID  string  `json:"bookId"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}
