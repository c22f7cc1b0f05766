package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bookshelf/internal/app"
	"bookshelf/internal/domain"
)

type Handlers struct{ C *app.CatalogService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type reviewRequest struct {
	UserID  string  `json:"userId"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/v1/books", h.listBooks)
	s.mux.Post("/api/v1/books", h.addBook)
	s.mux.Get("/api/v1/books/{id}", h.getBook)
	s.mux.Put("/api/v1/books/{id}", h.updateBookPrice)
	s.mux.Delete("/api/v1/books/{id}", h.deleteBook)
	s.mux.Post("/api/v1/books/{id}/review", h.rateBook)
	s.mux.Get("/api/v1/users", h.listUsers)
}

// statusFor maps catalog error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		// Internal failures are logged, not leaked.
		log.Error().Err(err).Msg("request failed")
		detail = ""
	}
	writeProblem(w, status, http.StatusText(status), detail)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON emits v with a weak ETag and honors If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listBooks(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")

	var (
		books []domain.Book
		err   error
	)
	if author != "" {
		books, err = h.C.ListBooksByAuthor(r.Context(), author)
	} else {
		books, err = h.C.ListBooks(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	writeJSON(w, r, books)
}

func (h *Handlers) getBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.C.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, b)
}

func (h *Handlers) addBook(w http.ResponseWriter, r *http.Request) {
	var b domain.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid book body")
		return
	}
	created, err := h.C.AddBook(r.Context(), b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, created)
}

// updateBookPrice reads the body as a raw JSON number; `null` decodes to an
// absent price, which the service rejects.
func (h *Handlers) updateBookPrice(w http.ResponseWriter, r *http.Request) {
	var price *float64
	if err := json.NewDecoder(r.Body).Decode(&price); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "body must be a JSON price number")
		return
	}
	if err := h.C.UpdateBookPrice(r.Context(), chi.URLParam(r, "id"), price); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.C.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) rateBook(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid review body")
		return
	}
	if err := h.C.RateBook(r.Context(), chi.URLParam(r, "id"), req.UserID, req.Rating, req.Comment); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.C.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, r, users)
}
