package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/services"
)

func TestBooksController_Create(t *testing.T) {
	t.Run("creates a book with authors and stores", func(t *testing.T) {
		router := newTestRouter(t)
		author := createAuthor(t, router, "Jane", "Austen")
		store := createStore(t, router, "Riverside Books")

		book := createBook(t, router, gin.H{
			"isbn":      "9780141439587",
			"title":     "Emma",
			"authorIds": []uuid.UUID{author.ID, author.ID},
			"storeIds":  []uuid.UUID{store.ID, uuid.New()},
		})

		assert.Equal(t, "Emma", book.Title)
		require.Len(t, book.Authors, 1)
		assert.Equal(t, author.ID, book.Authors[0].ID)
		require.Len(t, book.Stores, 1)
		assert.Equal(t, store.ID, book.Stores[0].ID)
	})

	t.Run("returns conflict for duplicate isbn", func(t *testing.T) {
		router := newTestRouter(t)
		createBook(t, router, gin.H{"isbn": "111", "title": "First"})

		w := doJSON(t, router, http.MethodPost, "/api/books", gin.H{"isbn": "111", "title": "Second"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Book with the same ISBN already exists.", decode[ErrorResponse](t, w).Error)
	})

	t.Run("rejects a body without title", func(t *testing.T) {
		router := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/books", gin.H{"isbn": "111"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed author ids", func(t *testing.T) {
		router := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/books", `{"isbn":"1","title":"T","authorIds":["nope"]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Update(t *testing.T) {
	t.Run("omitted authorIds keep links and empty authorIds clear them", func(t *testing.T) {
		router := newTestRouter(t)
		author := createAuthor(t, router, "Jane", "Austen")
		book := createBook(t, router, gin.H{"isbn": "1", "title": "Emma", "authorIds": []uuid.UUID{author.ID}})

		w := doJSON(t, router, http.MethodPut, "/api/books/"+book.ID.String(), gin.H{"title": "Emma (Penguin)"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode[services.BookDetails](t, w)
		assert.Equal(t, "Emma (Penguin)", updated.Title)
		assert.Len(t, updated.Authors, 1)

		w = doJSON(t, router, http.MethodPut, "/api/books/"+book.ID.String(), `{"title":"Emma","authorIds":[]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, decode[services.BookDetails](t, w).Authors)
	})

	t.Run("returns 404 for unknown book", func(t *testing.T) {
		router := newTestRouter(t)

		w := doJSON(t, router, http.MethodPut, "/api/books/"+uuid.NewString(), gin.H{"title": "Ghost"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBooksController_Delete(t *testing.T) {
	router := newTestRouter(t)
	book := createBook(t, router, gin.H{"isbn": "1", "title": "Emma"})

	w := doJSON(t, router, http.MethodDelete, "/api/books/"+book.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/books/"+book.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/books/"+book.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksController_GetBooks(t *testing.T) {
	router := newTestRouter(t)
	austen := createAuthor(t, router, "Jane", "Austen")
	for i := 0; i < 25; i++ {
		createBook(t, router, gin.H{"isbn": fmt.Sprintf("isbn-%02d", i), "title": fmt.Sprintf("Book %02d", i)})
	}
	createBook(t, router, gin.H{"isbn": "emma", "title": "Emma", "authorIds": []uuid.UUID{austen.ID}})

	t.Run("pages with defaults", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/books", nil)

		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.Paged[services.BookListItem]](t, w)
		assert.Equal(t, int64(26), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
		assert.Len(t, page.Items, 20)
	})

	t.Run("returns the requested window", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/books?page=3&pageSize=10&sortBy=isbn", nil)

		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.Paged[services.BookListItem]](t, w)
		assert.Equal(t, int64(26), page.Total)
		require.Len(t, page.Items, 6)
		assert.Equal(t, "isbn-19", page.Items[0].Isbn)
	})

	t.Run("filters by author name", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/books?authorName=jane%20aus", nil)

		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.Paged[services.BookListItem]](t, w)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Emma", page.Items[0].Title)
		require.Len(t, page.Items[0].Authors, 1)
		assert.Equal(t, austen.ID, page.Items[0].Authors[0].ID)
	})

	t.Run("sorts descending by title", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/books?desc=true&pageSize=1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		page := decode[services.Paged[services.BookListItem]](t, w)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Emma", page.Items[0].Title)
	})

	t.Run("rejects malformed query", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/books?page=abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_AuthorLinks(t *testing.T) {
	router := newTestRouter(t)
	author := createAuthor(t, router, "Jane", "Austen")
	book := createBook(t, router, gin.H{"isbn": "1", "title": "Emma"})
	assign := gin.H{"bookId": book.ID, "authorId": author.ID}

	t.Run("assign is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := doJSON(t, router, http.MethodPost, "/api/books/assign-author", assign)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Len(t, decode[services.BookDetails](t, w).Authors, 1)
		}
	})

	t.Run("assign with unknown author is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/books/assign-author", gin.H{"bookId": book.ID, "authorId": uuid.New()})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Author not found.", decode[ErrorResponse](t, w).Error)
	})

	t.Run("assign without ids is 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/books/assign-author", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove unlinks then reports not linked", func(t *testing.T) {
		path := "/api/books/" + book.ID.String() + "/authors/" + author.ID.String()

		w := doJSON(t, router, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, decode[services.BookDetails](t, w).Authors)

		w = doJSON(t, router, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decode[ErrorResponse](t, w)
		assert.Equal(t, "Author is not assigned to this book.", body.Error)
		assert.Equal(t, string(services.KindNotLinked), body.Code)
	})

	t.Run("remove from unknown book is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/books/"+uuid.NewString()+"/authors/"+author.ID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found.", decode[ErrorResponse](t, w).Error)
	})
}
