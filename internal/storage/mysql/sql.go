package mysql

const upsertBookSQL = `
INSERT INTO books
  (id, title, author, price, publish_date, publisher, description, average_rating, rating_count, reviews)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title          = VALUES(title),
  author         = VALUES(author),
  price          = VALUES(price),
  publish_date   = VALUES(publish_date),
  publisher      = VALUES(publisher),
  description    = VALUES(description),
  average_rating = VALUES(average_rating),
  rating_count   = VALUES(rating_count),
  reviews        = VALUES(reviews),
  updated_at     = CURRENT_TIMESTAMP
`

const upsertUserSQL = `
INSERT INTO users
  (id, email, first_name, last_name, reviewed_books)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  email          = VALUES(email),
  first_name     = VALUES(first_name),
  last_name      = VALUES(last_name),
  reviewed_books = VALUES(reviewed_books),
  updated_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectBookColumns = `
SELECT id, title, author, price, publish_date, publisher, description,
       average_rating, rating_count, reviews
FROM books
`

const getBookSQL = selectBookColumns + `WHERE id = ?`

const listBooksSQL = selectBookColumns + `ORDER BY created_at, id`

// Case-insensitive substring match on author.
const findBooksByAuthorSQL = selectBookColumns + `
WHERE LOWER(author) LIKE LOWER(CONCAT('%', ?, '%'))
ORDER BY created_at, id
`

const existsBookSQL = `SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)`

// Case-insensitive exact title match, for the catalog's unique-title rule.
const existsBookByTitleSQL = `SELECT EXISTS(SELECT 1 FROM books WHERE LOWER(title) = LOWER(?))`

const deleteBookSQL = `DELETE FROM books WHERE id = ?`

const getUserSQL = `
SELECT id, email, first_name, last_name, reviewed_books
FROM users
WHERE id = ?
`

const listUsersSQL = `
SELECT id, email, first_name, last_name, reviewed_books
FROM users
ORDER BY created_at, id
`
