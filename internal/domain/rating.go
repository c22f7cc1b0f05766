package domain

import (
	"fmt"
	"math"
)

// SubmitRating applies one rating submission to a book/user pair in memory.
// No I/O: the caller resolves both entities beforehand and persists them
// afterwards.
//
// First submission by a user appends a ReviewEntry and folds the rating into
// the running average. A repeat submission swaps the user's old contribution
// for the new one and leaves the count alone.
//
// The user-side ReviewedBookEntry is only created when the first submission
// carries a non-empty comment; a later re-rating never creates one. That
// asymmetry is carried over from the original service deliberately — see
// DESIGN.md before "fixing" it.
func SubmitRating(book *Book, user *User, rating float64, comment string) error {
	if math.IsNaN(rating) || rating < 0 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidArgument)
	}

	for i := range book.Reviews {
		if book.Reviews[i].UserID != user.ID {
			continue
		}
		// Existing review: count is unchanged, so count >= 1 here and the
		// division is safe.
		old := book.Reviews[i].Rating
		count := float64(book.RatingCount)
		book.AverageRating = (book.AverageRating*count - old + rating) / count
		book.Reviews[i].Rating = rating
		book.Reviews[i].Comment = comment

		for j := range user.ReviewedBooks {
			if user.ReviewedBooks[j].BookID == book.ID {
				user.ReviewedBooks[j].Rating = rating
				user.ReviewedBooks[j].Comment = comment
				break
			}
		}
		return nil
	}

	count := float64(book.RatingCount)
	book.AverageRating = (book.AverageRating*count + rating) / (count + 1)
	book.RatingCount++
	book.Reviews = append(book.Reviews, ReviewEntry{UserID: user.ID, Rating: rating, Comment: comment})

	if comment != "" {
		user.ReviewedBooks = append(user.ReviewedBooks, ReviewedBookEntry{
			BookID:  book.ID,
			Rating:  rating,
			Comment: comment,
		})
	}
	return nil
}
